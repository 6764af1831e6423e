package components

import (
	"go.uber.org/fx"

	"reserve-portal/internal/handler/api"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewItemHandler,
	),
)
