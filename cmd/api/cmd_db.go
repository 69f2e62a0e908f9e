package main

import (
	"context"
	"fmt"

	"tinyshop/internal/catalog"
	"tinyshop/internal/config"
	"tinyshop/internal/database"
	"tinyshop/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// bootDB loads configuration and opens the connection pool.
func bootDB(ctx context.Context) (*config.Config, *pgxpool.Pool, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, logger, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, pool, logger, nil
}

// tinyshop migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		_, pool, logger, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		return database.Migrate(ctx, pool, logger)
	},
}

var seedFile string

// tinyshop seed --file products.csv.gz
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load products from a gzipped CSV file (name,price)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, pool, logger, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		var s3Loader catalog.Loader
		if cfg.S3.Enabled {
			s3Loader, err = catalog.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
			if err != nil {
				logger.Warn().
					Err(err).
					Msg("failed to initialise S3 loader, falling back to local file system only")
			}
		} else {
			logger.Info().Msg("using local file system for catalogue files (S3 disabled)")
		}

		loader := catalog.NewFallbackLoader(s3Loader, catalog.NewFileLoader(logger), cfg.S3.Prefix, logger)
		seeder := catalog.NewSeeder(loader, repository.NewProductRepository(pool, logger), logger)

		count, err := seeder.Seed(ctx, seedFile)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products\n", count)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "data/products.csv.gz", "catalogue file path (S3 key suffix when S3 is enabled)")
}
