package components

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"reserve-portal/internal/domain/reservation"
	"reserve-portal/internal/event"
	"reserve-portal/internal/infra/msg"
	"reserve-portal/internal/pkg/clock"
	"reserve-portal/internal/pkg/config"
	"reserve-portal/internal/pkg/correlation"
	"reserve-portal/internal/worker"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		clock.NewRealClock,
		NewCoordinator,
		NewResolver,
		NewSweeper,
	),
	fx.Invoke(
		StartCoordinatorConsumer,
		StartResolverConsumer,
		StartSweeper,
	),
)

func NewCoordinator(
	items worker.ItemInventory,
	validator *reservation.CapacityValidator,
	publisher *msg.Publisher,
	log *slog.Logger,
) *worker.Coordinator {
	return worker.NewCoordinator(items, validator, publisher, log)
}

func NewResolver(
	reservations worker.ReservationStateStore,
	registry *correlation.Registry,
	log *slog.Logger,
) *worker.Resolver {
	return worker.NewResolver(reservations, registry, log)
}

func NewSweeper(
	store worker.StaleReservationStore,
	clk clock.Clock,
	log *slog.Logger,
	cfg config.Config,
) *worker.Sweeper {
	return worker.NewSweeper(store, clk, log, cfg.Saga.SweepInterval, cfg.Saga.RequestTimeout)
}

func StartCoordinatorConsumer(lc fx.Lifecycle, cfg config.Config, log *slog.Logger, dedupe *msg.Dedupe, coordinator *worker.Coordinator) {
	consumer := msg.NewConsumer(log, cfg.Kafka.Brokers, topicOr(cfg.Kafka.RequestedTopic, event.TopicReservationRequested), cfg.Kafka.ConsumerGroup, dedupe)
	runConsumer(lc, log, "coordinator", consumer, coordinator.HandleRequested)
}

func StartResolverConsumer(lc fx.Lifecycle, cfg config.Config, log *slog.Logger, dedupe *msg.Dedupe, resolver *worker.Resolver) {
	consumer := msg.NewConsumer(log, cfg.Kafka.Brokers, topicOr(cfg.Kafka.OutcomeTopic, event.TopicReservationOutcome), cfg.Kafka.ConsumerGroup, dedupe)
	runConsumer(lc, log, "resolver", consumer, resolver.HandleOutcome)
}

func StartSweeper(lc fx.Lifecycle, log *slog.Logger, sweeper *worker.Sweeper) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := sweeper.Run(ctx); err != nil {
					log.Error("sweeper stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}

func runConsumer(lc fx.Lifecycle, log *slog.Logger, name string, consumer *msg.Consumer, handle msg.Handler) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := consumer.Run(ctx, handle); err != nil {
					log.Error("consumer stopped", "consumer", name, "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}

func topicOr(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}
