package fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"stormfall/internal/config"
	"stormfall/internal/game"
	"stormfall/internal/logger"
	"stormfall/internal/server"
)

// ProvideEngine creates the match engine, seeding its random source from
// MATCH_SEED.
func ProvideEngine(cfg *config.Config, log zerolog.Logger) (*game.Engine, error) {
	return game.NewEngine(cfg.Tuning, logger.Component(log, "engine"), game.WithRandom(game.NewRandomSource(cfg.Seed)))
}

func ProvideLoop(engine *game.Engine, cfg *config.Config, log zerolog.Logger) *game.Loop {
	return game.NewLoop(engine, cfg.TickRate, log)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	// engine
	fx.Provide(ProvideEngine),
	fx.Provide(ProvideLoop),
	// server
	fx.Provide(server.New),
)
