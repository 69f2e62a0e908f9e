package catalog

import (
	"context"
	"fmt"

	"tinyshop/internal/repository"

	"github.com/rs/zerolog"
)

// Seeder inserts the products of a seed file in one transaction.
type Seeder struct {
	loader   Loader
	products repository.ProductRepository
	logger   zerolog.Logger
}

// NewSeeder creates a new Seeder.
func NewSeeder(loader Loader, products repository.ProductRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:   loader,
		products: products,
		logger:   logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Seed loads path and inserts every product, returning how many were inserted.
// Either all rows are inserted or none.
func (s *Seeder) Seed(ctx context.Context, path string) (_ int, err error) {
	products, err := s.loader.Load(ctx, path)
	if err != nil {
		return 0, err
	}

	if len(products) == 0 {
		s.logger.Warn().Str("path", path).Msg("catalogue file contains no products")
		return 0, nil
	}

	tx, err := s.products.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to seed catalogue: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.products.CreateMany(ctx, tx, products); err != nil {
		return 0, fmt.Errorf("failed to seed catalogue: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to seed catalogue: %w", err)
	}

	s.logger.Info().Str("path", path).Int("count", len(products)).Msg("catalogue seeded")

	return len(products), nil
}
