package bootstrap

import (
	"library-circulation/internal/pkg/config"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		LoadConfig,
		func(cfg config.Config) config.CirculationConfig { return cfg.Circulation },
		func(cfg config.Config) config.WorkerConfig { return cfg.Worker },
	),
)

func LoadConfig() (config.Config, error) {
	// Missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()
	return config.LoadConfig()
}
