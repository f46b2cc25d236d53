package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/go-staff-backend/config"
	"github.com/GoSim-25-26J-441/go-staff-backend/internal/events"
)

// NewPublisher connects to Redis when cfg.Addr is set and returns a publisher
// with its close func. Without an address events are discarded.
func NewPublisher(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (events.Publisher, func() error, error) {
	if cfg.Addr == "" {
		logger.Info("redis not configured, change events disabled")
		return events.Nop{}, func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("publishing change events to redis", zap.String("addr", cfg.Addr))
	return events.NewRedisPublisher(client), client.Close, nil
}
