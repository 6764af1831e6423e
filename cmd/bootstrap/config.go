package bootstrap

import (
	"go.uber.org/fx"

	"reserve-portal/internal/pkg/config"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
