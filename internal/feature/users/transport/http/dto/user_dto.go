// Package dto はusersフィーチャーのリクエスト/レスポンスDTOを定義します。
package dto

import "time"

// UpdateUserRequest はプロフィール更新のリクエストボディです。
// 省略されたフィールドは変更されません。
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Username *string `json:"username" binding:"omitempty,max=50"`
	FullName *string `json:"fullName" binding:"omitempty,max=100"`
}

// UserResponse はユーザー情報のレスポンスです。
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
