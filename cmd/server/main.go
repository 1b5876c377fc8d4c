package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"societyhub/internal/config"
	"societyhub/internal/logging"
	"societyhub/internal/server"
	"societyhub/internal/version"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.Log)
	log.Info().Interface("build", version.Get()).Msg("Starting society API")

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		log.Warn().Msg("JWT_SECRET is not set; using the insecure default")
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Server error")
		srv.Close()
		os.Exit(1)
	}
}
