package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"letsgo-store/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading seed files from local disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-loader").Logger(),
	}
}

// Load reads a JSON seed file containing an array of products.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.Product, error) {
	l.logger.Info().Str("file", path).Msg("loading seed catalogue")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer file.Close()

	products, err := decodeSeed(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode seed file")
		return nil, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("products_loaded", len(products)).
		Msg("seed catalogue loaded successfully")

	return products, nil
}

// seedProduct is the on-disk seed format. IsActive defaults to true when
// the field is absent.
type seedProduct struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    *string `json:"image,omitempty"`
	Stock    int     `json:"stock"`
	IsActive *bool   `json:"isActive,omitempty"`
}

func decodeSeed(ctx context.Context, r io.Reader) ([]model.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rows []seedProduct
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(rows))
	for i, row := range rows {
		if row.Name == "" {
			return nil, fmt.Errorf("seed entry %d has no name", i)
		}
		active := true
		if row.IsActive != nil {
			active = *row.IsActive
		}
		products = append(products, model.Product{
			ID:       row.ID,
			Name:     row.Name,
			Price:    row.Price,
			Image:    row.Image,
			Stock:    row.Stock,
			IsActive: active,
		})
	}

	return products, nil
}
