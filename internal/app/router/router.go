// Package router はHTTPルーティングを定義します。
package router

import (
	newshandler "capitalpulse_backend/internal/feature/news/transport/handler"
	posthandler "capitalpulse_backend/internal/feature/social/transport/handler"
	usershandler "capitalpulse_backend/internal/feature/users/transport/handler"
	"capitalpulse_backend/internal/feature/users/transport/middleware"
	watchlisthandler "capitalpulse_backend/internal/feature/watchlist/transport/handler"
	"capitalpulse_backend/internal/platform/config"
	"capitalpulse_backend/internal/platform/http/handler"
	jwtmw "capitalpulse_backend/internal/platform/jwt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers はルーターに登録するハンドラー群です。
type Handlers struct {
	News      *newshandler.NewsHandler
	Watchlist *watchlisthandler.WatchlistHandler
	Users     *usershandler.UserHandler
	Posts     *posthandler.PostHandler
	Identity  middleware.SubjectResolver
}

// NewRouter はルーターを組み立てます。
func NewRouter(cfg *config.CORSConfig, h Handlers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)

	// 認証必須のルート
	// JWT検証後、サブジェクトを内部ユーザーに解決する
	api := r.Group("/api")
	api.Use(jwtmw.AuthRequired())
	api.Use(middleware.Identity(h.Identity))
	{
		api.GET("/news", h.News.GetBySymbols)
		api.GET("/news/:symbol", h.News.GetBySymbol)

		api.GET("/watchlists", h.Watchlist.List)
		api.POST("/watchlists", h.Watchlist.Create)
		api.GET("/watchlists/:id", h.Watchlist.Get)
		api.PUT("/watchlists/:id", h.Watchlist.Rename)
		api.DELETE("/watchlists/:id", h.Watchlist.Delete)
		api.POST("/watchlists/:id/tickers", h.Watchlist.AddTicker)
		api.DELETE("/watchlists/:id/tickers/:symbol", h.Watchlist.RemoveTicker)

		// /watchlists/:id と衝突するため tickers 配下に置く
		api.GET("/tickers/top", h.Watchlist.TopTickers)

		api.GET("/users/me", h.Users.Me)
		api.PUT("/users/me", h.Users.UpdateMe)
		api.DELETE("/users/me", h.Users.DeleteMe)

		api.GET("/posts", h.Posts.List)
		api.POST("/posts", h.Posts.Create)
		api.GET("/posts/:id", h.Posts.Get)
		api.PUT("/posts/:id", h.Posts.Update)
		api.DELETE("/posts/:id", h.Posts.Delete)
		api.POST("/posts/:id/comments", h.Posts.AddComment)
		api.DELETE("/comments/:id", h.Posts.DeleteComment)
	}

	return r
}
