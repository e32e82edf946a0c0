package main

import (
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"capitalpulse_backend/internal/app/di"
	"capitalpulse_backend/internal/app/router"
	newshandler "capitalpulse_backend/internal/feature/news/transport/handler"
	newsusecase "capitalpulse_backend/internal/feature/news/usecase"
	socialadapters "capitalpulse_backend/internal/feature/social/adapters"
	posthandler "capitalpulse_backend/internal/feature/social/transport/handler"
	socialusecase "capitalpulse_backend/internal/feature/social/usecase"
	usersadapters "capitalpulse_backend/internal/feature/users/adapters"
	usershandler "capitalpulse_backend/internal/feature/users/transport/handler"
	usersusecase "capitalpulse_backend/internal/feature/users/usecase"
	watchlistadapters "capitalpulse_backend/internal/feature/watchlist/adapters"
	watchlisthandler "capitalpulse_backend/internal/feature/watchlist/transport/handler"
	watchlistusecase "capitalpulse_backend/internal/feature/watchlist/usecase"
	"capitalpulse_backend/internal/platform/config"
	infradb "capitalpulse_backend/internal/platform/db"
	"capitalpulse_backend/internal/platform/logger"
	infraredis "capitalpulse_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// 設定が壊れている場合は起動しない
		panic(err)
	}

	log := logger.New(cfg.Logging.Level)

	// db
	db, err := infradb.OpenDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(&cfg.Redis); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, running without cache")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close redis client")
			}
		}()
	}

	// Repository
	articleRepo := di.NewArticleRepository(rdb, db)
	watchlistRepo := watchlistadapters.NewWatchlistPostgres(db)
	userRepo := usersadapters.NewUserPostgres(db)
	postRepo := socialadapters.NewPostPostgres(db)

	// Usecase
	newsUC := newsusecase.NewNewsUsecase(articleRepo, di.NewNewsProvider(&cfg.Marketaux), log)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistRepo)
	userUC := usersusecase.NewUserUsecase(userRepo)
	socialUC := socialusecase.NewSocialUsecase(postRepo)

	// Handler
	h := router.Handlers{
		News:      newshandler.NewNewsHandler(newsUC),
		Watchlist: watchlisthandler.NewWatchlistHandler(watchlistUC),
		Users:     usershandler.NewUserHandler(userUC),
		Posts:     posthandler.NewPostHandler(socialUC),
		Identity:  userUC,
	}

	// ルータ生成
	r := router.NewRouter(&cfg.CORS, h)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv("JWT_SECRET") == "" {
		log.Warn().Msg("JWT_SECRET is not set, set a strong secret in production")
	}

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
