// Package db はPostgreSQLへのGORM接続を管理します。
package db

import (
	"fmt"
	"os"
	"time"

	newsentity "capitalpulse_backend/internal/feature/news/domain/entity"
	socialentity "capitalpulse_backend/internal/feature/social/domain/entity"
	usersentity "capitalpulse_backend/internal/feature/users/domain/entity"
	watchlistentity "capitalpulse_backend/internal/feature/watchlist/domain/entity"
	"capitalpulse_backend/internal/platform/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenDB はPostgreSQLへ接続し、接続できるまで最大60秒リトライします。
// RUN_MIGRATIONS=true の場合は全エンティティのマイグレーションを実行します。
func OpenDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after 60s: %w", err)
		}
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := db.AutoMigrate(
			&usersentity.User{},
			&watchlistentity.Ticker{},
			&watchlistentity.Watchlist{},
			&watchlistentity.WatchlistTicker{},
			&newsentity.NewsArticle{},
			&newsentity.NewsArticleEntity{},
			&socialentity.Post{},
			&socialentity.Comment{},
		); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	return db, nil
}
