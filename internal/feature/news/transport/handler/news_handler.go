// Package handler はnewsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strings"

	"capitalpulse_backend/internal/feature/news/domain/entity"
	"capitalpulse_backend/internal/feature/news/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// NewsUsecase はニュース取得ユースケースのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type NewsUsecase interface {
	GetNewsBySymbol(ctx context.Context, symbol string) ([]entity.NewsArticle, error)
	GetNewsBySymbols(ctx context.Context, symbols []string) ([]entity.NewsArticle, error)
}

// NewsHandler はニュース関連のHTTPリクエストを処理します。
type NewsHandler struct {
	uc NewsUsecase
}

// NewNewsHandler は新しい NewsHandler を作成します。
func NewNewsHandler(uc NewsUsecase) *NewsHandler {
	return &NewsHandler{uc: uc}
}

// GetBySymbol は単一シンボルの記事一覧を返します。
//
// エンドポイント例:
// GET /api/news/NVDA
func (h *NewsHandler) GetBySymbol(c *gin.Context) {
	symbol := c.Param("symbol")

	articles, err := h.uc.GetNewsBySymbol(c.Request.Context(), symbol)
	if err != nil {
		// ストア障害のみここに到達する（上流障害はユースケース内で吸収される）
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load news"})
		return
	}

	c.JSON(http.StatusOK, toResponse(articles))
}

// GetBySymbols はカンマ区切りの複数シンボルの記事一覧を返します。
//
// エンドポイント例:
// GET /api/news?symbols=NVDA,AAPL
func (h *NewsHandler) GetBySymbols(c *gin.Context) {
	raw := c.Query("symbols")
	if strings.TrimSpace(raw) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbols query parameter is required"})
		return
	}

	articles, err := h.uc.GetNewsBySymbols(c.Request.Context(), strings.Split(raw, ","))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load news"})
		return
	}

	c.JSON(http.StatusOK, toResponse(articles))
}

// toResponse はドメインエンティティをレスポンスDTOに変換します。
func toResponse(articles []entity.NewsArticle) []dto.NewsArticleResponse {
	out := make([]dto.NewsArticleResponse, 0, len(articles))
	for _, a := range articles {
		ents := make([]dto.NewsEntityResponse, 0, len(a.Entities))
		for _, e := range a.Entities {
			ents = append(ents, dto.NewsEntityResponse{
				Symbol:   e.Symbol,
				Name:     e.Name,
				Country:  e.Country,
				Industry: e.Industry,
			})
		}
		out = append(out, dto.NewsArticleResponse{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Language:    a.Language,
			PublishedAt: a.PublishedAt,
			Entities:    ents,
		})
	}
	return out
}
