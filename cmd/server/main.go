package main

import (
	"context"
	"time"

	"github.com/blogbliss/backend/internal/router"
	"github.com/blogbliss/backend/internal/validators"
	"github.com/blogbliss/backend/pkg/config"
	"github.com/blogbliss/backend/pkg/metrics"
	"github.com/blogbliss/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize databases")
	}
	defer db.CloseDB()

	ctx := context.Background()
	store, err := storage.NewFirebaseStorage(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize object storage")
	}

	go func() {
		if err := metrics.Serve(cfg.MetricsPort); err != nil {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	router.SetupRoutes(e, db.Postgres, db.Mongo, store, cfg)

	log.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
