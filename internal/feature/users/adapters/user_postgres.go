// Package adapters はusersフィーチャーの永続化実装を提供します。
package adapters

import (
	"context"
	"errors"

	"capitalpulse_backend/internal/feature/users/domain"
	"capitalpulse_backend/internal/feature/users/domain/entity"
	"capitalpulse_backend/internal/feature/users/usecase"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// userPostgres はGORMを使用したUserRepositoryの実装です。
type userPostgres struct {
	db *gorm.DB
}

// NewUserPostgres は新しいリポジトリを作成します。
func NewUserPostgres(db *gorm.DB) usecase.UserRepository {
	return &userPostgres{db: db}
}

var _ usecase.UserRepository = (*userPostgres)(nil)

func (r *userPostgres) FindBySubject(ctx context.Context, subjectID string) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userPostgres) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userPostgres) Update(ctx context.Context, u *entity.User) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"email":      u.Email,
			"username":   u.Username,
			"full_name":  u.FullName,
			"updated_at": u.UpdatedAt,
		}).Error
}

func (r *userPostgres) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
