package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"analytics-api/internal/config"
	"analytics-api/internal/logging"

	eventsRepoPg "analytics-api/internal/events/adapters/postgres"
	"analytics-api/internal/events/core/ports"
	eventsUsecase "analytics-api/internal/events/core/usecase"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func main() {
	var dryRun bool

	root := &cobra.Command{
		Use:   "migrate <events.jsonl>",
		Short: "Bulk-load a JSONL event log into the analytics store",
		Long: `Reads one JSON event per line and upserts each record under a
content-hash id, so re-running the same file is a no-op. Malformed lines are
counted and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(args[0], dryRun)
		},
		SilenceUsage: true,
	}
	root.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate only, write nothing")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMigration(path string, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logging.New(cfg.Logging.Level)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer f.Close()

	// A dry run parses and validates only, so it needs no store and no DSN.
	var store ports.EventStorePort
	if !dryRun {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}

		db, err := sql.Open("postgres", cfg.Postgres.DSN)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()

		if err := db.Ping(); err != nil {
			return fmt.Errorf("ping postgres: %w", err)
		}

		store = eventsRepoPg.NewEventRepository(eventsRepoPg.NewSQLDB(db))
	}

	uc := eventsUsecase.NewMigrateEventsUseCase(store)

	res, err := uc.Execute(context.Background(), eventsUsecase.MigrateEventsInput{
		Source: f,
		DryRun: dryRun,
	})
	if err != nil {
		log.Error().Err(err).
			Int("written", res.Written).
			Msg("migration failed; already-committed chunks remain durable")
		return err
	}

	log.Info().
		Str("file", path).
		Int("loaded", res.Loaded).
		Int("skipped_rows", res.SkippedRows).
		Msg("parsed source")

	if dryRun {
		log.Info().Msg("dry run enabled, no writes were performed")
		return nil
	}

	log.Info().
		Int("written", res.Written).
		Int("duplicates", res.Duplicates).
		Msg("migration complete")
	return nil
}
