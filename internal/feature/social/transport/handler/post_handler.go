// Package handler はsocialフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"capitalpulse_backend/internal/feature/social/domain"
	"capitalpulse_backend/internal/feature/social/domain/entity"
	"capitalpulse_backend/internal/feature/social/transport/http/dto"
	"capitalpulse_backend/internal/feature/users/transport/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SocialUsecase は投稿・コメント操作のインターフェースです。
type SocialUsecase interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, ticker, title, body string) (*entity.Post, error)
	ListPosts(ctx context.Context, ticker string) ([]entity.Post, error)
	GetPost(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	UpdatePost(ctx context.Context, id, authorID uuid.UUID, title, body string) (*entity.Post, error)
	DeletePost(ctx context.Context, id, authorID uuid.UUID) error
	AddComment(ctx context.Context, postID, authorID uuid.UUID, body string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, id, authorID uuid.UUID) error
}

// PostHandler は投稿関連のHTTPリクエストを処理します。
type PostHandler struct {
	uc SocialUsecase
}

// NewPostHandler は新しい PostHandler を作成します。
func NewPostHandler(uc SocialUsecase) *PostHandler {
	return &PostHandler{uc: uc}
}

// List は投稿一覧を返します。tickerクエリで絞り込めます。
//
// GET /api/posts?ticker=NVDA
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.uc.ListPosts(c.Request.Context(), c.Query("ticker"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load posts"})
		return
	}

	out := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toPostResponse(&posts[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get はコメント込みで投稿を1件返します。
//
// GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	p, err := h.uc.GetPost(c.Request.Context(), id)
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(p))
}

// Create は新しい投稿を作成します。
//
// POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticker, title and body are required"})
		return
	}

	p, err := h.uc.CreatePost(c.Request.Context(), userID, req.Ticker, req.Title, req.Body)
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPostResponse(p))
}

// Update は投稿者本人による投稿の更新です。
//
// PUT /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and body are required"})
		return
	}

	p, err := h.uc.UpdatePost(c.Request.Context(), id, userID, req.Title, req.Body)
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPostResponse(p))
}

// Delete は投稿者本人による投稿の削除です。
//
// DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.uc.DeletePost(c.Request.Context(), id, userID); err != nil {
		respondSocialError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddComment は投稿にコメントを追加します。
//
// POST /api/posts/:id/comments
func (h *PostHandler) AddComment(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body is required"})
		return
	}

	comment, err := h.uc.AddComment(c.Request.Context(), postID, userID, req.Body)
	if err != nil {
		respondSocialError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// DeleteComment はコメント投稿者本人によるコメントの削除です。
//
// DELETE /api/comments/:id
func (h *PostHandler) DeleteComment(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	if err := h.uc.DeleteComment(c.Request.Context(), id, userID); err != nil {
		respondSocialError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondSocialError はドメインエラーをHTTPステータスに対応付けます。
func respondSocialError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrPostNotFound), errors.Is(err, domain.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func toCommentResponse(c *entity.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.ID.String(),
		AuthorID:  c.AuthorID.String(),
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

func toPostResponse(p *entity.Post) dto.PostResponse {
	var comments []dto.CommentResponse
	for i := range p.Comments {
		comments = append(comments, toCommentResponse(&p.Comments[i]))
	}
	return dto.PostResponse{
		ID:        p.ID.String(),
		Ticker:    p.Ticker,
		Title:     p.Title,
		Body:      p.Body,
		AuthorID:  p.AuthorID.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Comments:  comments,
	}
}
