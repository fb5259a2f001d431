package client

import (
	"marketplace-settlement/internal/config"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Redis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
