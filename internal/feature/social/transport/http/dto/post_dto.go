// Package dto はsocialフィーチャーのリクエスト/レスポンスDTOを定義します。
package dto

import "time"

// CreatePostRequest は投稿作成のリクエストボディです。
type CreatePostRequest struct {
	Ticker string `json:"ticker" binding:"required,max=20"`
	Title  string `json:"title" binding:"required,max=200"`
	Body   string `json:"body" binding:"required"`
}

// UpdatePostRequest は投稿更新のリクエストボディです。
type UpdatePostRequest struct {
	Title string `json:"title" binding:"required,max=200"`
	Body  string `json:"body" binding:"required"`
}

// AddCommentRequest はコメント追加のリクエストボディです。
type AddCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// CommentResponse はコメント1件のレスポンスです。
type CommentResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostResponse は投稿1件のレスポンスです。
// 一覧ではCommentsは省略されます。
type PostResponse struct {
	ID        string            `json:"id"`
	Ticker    string            `json:"ticker"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	AuthorID  string            `json:"authorId"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Comments  []CommentResponse `json:"comments,omitempty"`
}
