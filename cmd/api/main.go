package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"analytics-api/internal/config"
	"analytics-api/internal/logging"

	eventsHttp "analytics-api/internal/events/adapters/http/fiber"
	eventsRepoPg "analytics-api/internal/events/adapters/postgres"
	eventsUsecase "analytics-api/internal/events/core/usecase"

	metricsHttp "analytics-api/internal/metrics/adapters/http/fiber"
	metricsRepoPg "analytics-api/internal/metrics/adapters/postgres"
	metricsUsecase "analytics-api/internal/metrics/core/usecase"

	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "analytics-api/docs"
)

// @title Analytics API
// @version 1.0
// @description Append-only usage-event ingestion and windowed analytics queries
func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Logging.Level)

	// DB connection
	db, err := sql.Open("postgres", cfg.Postgres.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open postgres")
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping postgres")
	}

	// Adapter-level DB wrappers
	eventsDB := eventsRepoPg.NewSQLDB(db)
	metricsDB := metricsRepoPg.NewSQLDB(db)

	// Repositories
	eventStore := eventsRepoPg.NewEventRepository(eventsDB)
	eventReader := metricsRepoPg.NewEventReadRepository(metricsDB, cfg.Store.ReadPageSize)

	// Usecases
	ingestUC := eventsUsecase.NewIngestEventsUseCase(eventStore)
	queryUC := metricsUsecase.NewQueryEventsUseCase(eventReader)

	// HTTP (Fiber) app + handlers
	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	// ingestion endpoint
	eventsHandler := eventsHttp.NewEventHandler(ingestUC, log)
	app.Post("/api/trackEvent", eventsHandler.TrackEvent)

	// query endpoints
	metricsHandler := metricsHttp.NewMetricsHandler(queryUC, log)
	app.Get("/api/events", metricsHandler.GetEvents)
	app.Get("/api/metrics/overview", metricsHandler.GetOverview)
	app.Get("/api/metrics/daily", metricsHandler.GetDaily)
	app.Get("/api/metrics/funnel", metricsHandler.GetFunnel)
	app.Get("/api/metrics/features", metricsHandler.GetFeatures)
	app.Get("/api/metrics/users", metricsHandler.GetUsers)
	app.Get("/api/metrics/prompts", metricsHandler.GetPrompts)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("fiber stopped")
		}
	}()

	log.Info().Str("addr", addr).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("fiber shutdown error")
	}

	log.Info().Msg("server exiting")
}
