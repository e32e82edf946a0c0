// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"capitalpulse_backend/internal/feature/users/transport/middleware"
	"capitalpulse_backend/internal/feature/watchlist/domain"
	"capitalpulse_backend/internal/feature/watchlist/domain/entity"
	"capitalpulse_backend/internal/feature/watchlist/transport/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WatchlistUsecase はウォッチリスト操作のインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]entity.Watchlist, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*entity.Watchlist, error)
	Create(ctx context.Context, userID uuid.UUID, name string) (*entity.Watchlist, error)
	Rename(ctx context.Context, id, userID uuid.UUID, name string) (*entity.Watchlist, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	AddTicker(ctx context.Context, id, userID uuid.UUID, symbol, stockName string) (*entity.Watchlist, error)
	RemoveTicker(ctx context.Context, id, userID uuid.UUID, symbol string) (*entity.Watchlist, error)
	TopTickers(ctx context.Context, userID uuid.UUID, n int) ([]entity.TickerCount, error)
}

// WatchlistHandler はウォッチリスト関連のHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List は認証ユーザーの全ウォッチリストを返します。
//
// GET /api/watchlists
func (h *WatchlistHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	lists, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load watchlists"})
		return
	}

	out := make([]dto.WatchlistResponse, 0, len(lists))
	for i := range lists {
		out = append(out, toWatchlistResponse(&lists[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get はウォッチリストを1件返します。
//
// GET /api/watchlists/:id
func (h *WatchlistHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid watchlist id"})
		return
	}

	w, err := h.uc.Get(c.Request.Context(), id, userID)
	if err != nil {
		respondWatchlistError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWatchlistResponse(w))
}

// Create はウォッチリストを新規作成します。
//
// POST /api/watchlists
func (h *WatchlistHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req dto.CreateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	w, err := h.uc.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondWatchlistError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toWatchlistResponse(w))
}

// Rename はウォッチリストの名前を変更します。
//
// PUT /api/watchlists/:id
func (h *WatchlistHandler) Rename(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid watchlist id"})
		return
	}

	var req dto.UpdateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	w, err := h.uc.Rename(c.Request.Context(), id, userID, req.Name)
	if err != nil {
		respondWatchlistError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWatchlistResponse(w))
}

// Delete はウォッチリストを削除します。
//
// DELETE /api/watchlists/:id
func (h *WatchlistHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid watchlist id"})
		return
	}

	if err := h.uc.Delete(c.Request.Context(), id, userID); err != nil {
		respondWatchlistError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddTicker はウォッチリストに銘柄を追加します。
//
// POST /api/watchlists/:id/tickers
func (h *WatchlistHandler) AddTicker(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid watchlist id"})
		return
	}

	var req dto.AddTickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tickerId is required"})
		return
	}

	w, err := h.uc.AddTicker(c.Request.Context(), id, userID, req.TickerID, req.StockName)
	if err != nil {
		respondWatchlistError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWatchlistResponse(w))
}

// RemoveTicker はウォッチリストから銘柄を外します。
//
// DELETE /api/watchlists/:id/tickers/:symbol
func (h *WatchlistHandler) RemoveTicker(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid watchlist id"})
		return
	}

	w, err := h.uc.RemoveTicker(c.Request.Context(), id, userID, c.Param("symbol"))
	if err != nil {
		respondWatchlistError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWatchlistResponse(w))
}

// TopTickers は認証ユーザーの全ウォッチリスト横断の人気銘柄ランキングを返します。
//
// GET /api/tickers/top?n=3
func (h *WatchlistHandler) TopTickers(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	n := 0
	if raw := c.Query("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "n must be an integer"})
			return
		}
		n = parsed
	}

	counts, err := h.uc.TopTickers(c.Request.Context(), userID, n)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load top tickers"})
		return
	}

	out := make([]dto.TopTickerResponse, 0, len(counts))
	for _, tc := range counts {
		out = append(out, dto.TopTickerResponse{Symbol: tc.Symbol, StockName: tc.StockName, Count: tc.Count})
	}
	c.JSON(http.StatusOK, out)
}

// respondWatchlistError はドメインエラーをHTTPステータスに対応付けます。
func respondWatchlistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrWatchlistNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateName), errors.Is(err, domain.ErrDuplicateTicker):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrTickerNotInWatchlist):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// toWatchlistResponse はドメインエンティティをレスポンスDTOに変換します。
func toWatchlistResponse(w *entity.Watchlist) dto.WatchlistResponse {
	tickers := make([]dto.TickerResponse, 0, len(w.Tickers))
	for _, wt := range w.Tickers {
		tickers = append(tickers, dto.TickerResponse{
			ID:        wt.TickerSymbol,
			StockName: wt.Ticker.StockName,
		})
	}
	return dto.WatchlistResponse{
		ID:        w.ID.String(),
		Name:      w.Name,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
		Tickers:   tickers,
	}
}
