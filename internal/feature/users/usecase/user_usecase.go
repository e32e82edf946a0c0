// Package usecase はusersフィーチャーのビジネスロジックを提供します。
package usecase

import (
	"context"
	"errors"
	"time"

	"capitalpulse_backend/internal/feature/users/domain"
	"capitalpulse_backend/internal/feature/users/domain/entity"

	"github.com/google/uuid"
)

// UserRepository はユーザー永続化のインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type UserRepository interface {
	// FindBySubject はサブジェクトIDでユーザーを検索します。
	// 見つからない場合は domain.ErrUserNotFound を返します。
	FindBySubject(ctx context.Context, subjectID string) (*entity.User, error)
	// FindByID は内部IDでユーザーを検索します。
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Create は新しいユーザーを保存します。
	Create(ctx context.Context, u *entity.User) error
	// Update はユーザーの属性を保存します。
	Update(ctx context.Context, u *entity.User) error
	// Delete はユーザーを削除します。
	Delete(ctx context.Context, id uuid.UUID) error
}

// UpdateProfileInput はプロフィール更新の入力です。
// nilのフィールドは変更されません。
type UpdateProfileInput struct {
	Email    *string
	Username *string
	FullName *string
}

// UserUsecase はユーザー操作のユースケースです。
type UserUsecase struct {
	repo UserRepository
}

// NewUserUsecase は新しい UserUsecase を作成します。
func NewUserUsecase(repo UserRepository) *UserUsecase {
	return &UserUsecase{repo: repo}
}

// ResolveSubject はトークンのサブジェクトを内部ユーザーに解決します。
// 未登録のサブジェクトに対してはユーザーレコードを遅延作成します。
func (u *UserUsecase) ResolveSubject(ctx context.Context, subjectID string) (*entity.User, error) {
	user, err := u.repo.FindBySubject(ctx, subjectID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created := &entity.User{
		ID:        uuid.New(),
		SubjectID: subjectID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.repo.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID は内部IDでユーザーを返します。
func (u *UserUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return u.repo.FindByID(ctx, id)
}

// UpdateProfile はユーザーのプロフィールを部分更新します。
func (u *UserUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, in UpdateProfileInput) (*entity.User, error) {
	user, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	user.UpdatedAt = time.Now().UTC()

	if err := u.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete はユーザーを削除します。
func (u *UserUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := u.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}
