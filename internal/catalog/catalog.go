// Package catalog loads the product seed catalogue from a JSON file on
// local disk or S3 and seeds the database on first boot.
package catalog

import (
	"context"

	"letsgo-store/internal/model"
)

// Loader defines the interface for loading a product seed file.
type Loader interface {
	// Load reads a JSON seed file and returns the products it contains.
	Load(ctx context.Context, path string) ([]model.Product, error)
}
