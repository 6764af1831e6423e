package components

import (
	"log/slog"
	"time"

	"go.uber.org/fx"

	"reserve-portal/internal/domain/reservation"
	"reserve-portal/internal/infra/msg"
	"reserve-portal/internal/pkg/config"
	"reserve-portal/internal/pkg/correlation"
	"reserve-portal/internal/usecase/commands"
	"reserve-portal/internal/usecase/queries"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewItemQueries,
		NewReservationCommands,
		commands.NewInventoryUseCase,
	),
)

func NewReservationCommands(
	reservations commands.ReservationRepository,
	items commands.ItemReader,
	validator *reservation.CapacityValidator,
	publisher *msg.Publisher,
	registry *correlation.Registry,
	views queries.ReservationQueries,
	log *slog.Logger,
	cfg config.Config,
) commands.ReservationCommands {
	timeout := cfg.Saga.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return commands.NewReservationUseCase(
		reservations, items, validator, publisher, registry, views, log, timeout,
	)
}
