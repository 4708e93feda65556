package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"stormfall/internal/config"
	fxmodules "stormfall/internal/fx"
	"stormfall/internal/game"
	"stormfall/internal/server"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	srv *server.Server,
	loop *game.Loop,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: srv.Handler(),
	}

	loopCtx, cancelLoop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer close(loopDone)
				if err := loop.Run(loopCtx); err != nil {
					logger.Error().Err(err).Msg("game loop failed")
					shutdowner.Shutdown()
				}
			}()
			go func() {
				logger.Info().Str("addr", httpServer.Addr).Msg("server starting")
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			cancelLoop()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), game.ShutdownTimeout)
			defer cancel()

			select {
			case <-loopDone:
			case <-shutdownCtx.Done():
				logger.Warn().Msg("game loop did not stop in time")
			}

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
