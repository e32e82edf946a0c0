// Package redis はRedisクライアントの生成を提供します。
package redis

import (
	"context"

	"capitalpulse_backend/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient は設定からRedisクライアントを生成し、疎通確認を行います。
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
