package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"reserve-portal/internal/infra/msg"
	"reserve-portal/internal/pkg/config"
	"reserve-portal/internal/pkg/correlation"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewPublisher,
		NewRedisClient,
		NewDedupe,
		correlation.NewRegistry,
	),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config, log *slog.Logger) *msg.Publisher {
	publisher := msg.NewPublisher(log, cfg.Kafka.Brokers, cfg.Saga.PublishTimeout)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher
}

func NewRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		},
		OnStop: func(_ context.Context) error {
			return rdb.Close()
		},
	})

	return rdb
}

func NewDedupe(rdb *redis.Client, cfg config.Config) *msg.Dedupe {
	return msg.NewDedupe(rdb, cfg.Redis.DedupTTL)
}
