package components

import (
	"go.uber.org/fx"

	"reserve-portal/internal/domain/reservation"
	"reserve-portal/internal/infra/readstore"
	"reserve-portal/internal/infra/repository"
	"reserve-portal/internal/usecase/commands"
	"reserve-portal/internal/usecase/queries"
	"reserve-portal/internal/worker"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
			fx.As(new(reservation.OverlapSource)),
			fx.As(new(worker.ReservationStateStore)),
			fx.As(new(worker.StaleReservationStore)),
		),
		fx.Annotate(
			repository.NewItemRepository,
			fx.As(new(commands.ItemInventoryRepository)),
			fx.As(new(commands.ItemReader)),
			fx.As(new(worker.ItemInventory)),
		),
		reservation.NewCapacityValidator,
		// Read-side repositories for queries
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
		fx.Annotate(
			readstore.NewItemReadStore,
			fx.As(new(queries.ItemViewRepo)),
		),
	),
)
