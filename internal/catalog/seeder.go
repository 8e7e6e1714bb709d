package catalog

import (
	"context"
	"fmt"

	"letsgo-store/internal/repository"

	"github.com/rs/zerolog"
)

// Seeder populates an empty catalogue from a seed file. A non-empty
// catalogue is left alone, so repeated boots never duplicate products.
type Seeder struct {
	loader   Loader
	products repository.ProductRepository
	logger   zerolog.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(loader Loader, products repository.ProductRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:   loader,
		products: products,
		logger:   logger.With().Str("component", "seeder").Logger(),
	}
}

// SeedIfEmpty loads the seed file and inserts its products when the
// catalogue has none. An empty path disables seeding.
func (s *Seeder) SeedIfEmpty(ctx context.Context, path string) error {
	if path == "" {
		s.logger.Debug().Msg("no seed path configured, skipping")
		return nil
	}

	count, err := s.products.CountAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		s.logger.Debug().Int("products", count).Msg("catalogue already populated, skipping seed")
		return nil
	}

	products, err := s.loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load seed catalogue: %w", err)
	}
	if len(products) == 0 {
		s.logger.Warn().Str("path", path).Msg("seed catalogue is empty")
		return nil
	}

	if err := s.products.BulkInsert(ctx, products); err != nil {
		return fmt.Errorf("failed to insert seed catalogue: %w", err)
	}

	s.logger.Info().Int("products", len(products)).Msg("catalogue seeded")
	return nil
}
