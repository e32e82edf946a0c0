// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"capitalpulse_backend/internal/feature/users/domain"
	"capitalpulse_backend/internal/feature/users/domain/entity"
	"capitalpulse_backend/internal/feature/users/transport/http/dto"
	"capitalpulse_backend/internal/feature/users/transport/middleware"
	"capitalpulse_backend/internal/feature/users/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserUsecase はユーザー操作のインターフェースです。
type UserUsecase interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in usecase.UpdateProfileInput) (*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserHandler はユーザー関連のHTTPリクエストを処理します。
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler は新しい UserHandler を作成します。
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Me は認証ユーザー自身のプロフィールを返します。
//
// GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	user, err := h.uc.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe は認証ユーザー自身のプロフィールを部分更新します。
//
// PUT /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.uc.UpdateProfile(c.Request.Context(), userID, usecase.UpdateProfileInput{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteMe は認証ユーザー自身のアカウントを削除します。
//
// DELETE /api/users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	if err := h.uc.Delete(c.Request.Context(), userID); err != nil {
		respondUserError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondUserError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Username:  u.Username,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
