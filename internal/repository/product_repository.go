package repository

import (
	"context"
	"fmt"

	"letsgo-store/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// Search retrieves active products matching the keyword in stable catalogue
// order (creation time, oldest first), so ordinal references stay pinned to
// positions rather than relevance ranking.
func (r *productRepository) Search(ctx context.Context, keyword string, limit int) ([]model.Product, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 20 {
		limit = 20
	}

	query := `
		SELECT id, name, price, image, stock, is_active, created_at
		FROM products
		WHERE is_active = TRUE AND name ILIKE '%' || $1 || '%'
		ORDER BY created_at ASC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, keyword, limit)
	if err != nil {
		r.logger.Error().Err(err).Str("keyword", keyword).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetAll retrieves all products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT id, name, price, image, stock, is_active, created_at
		FROM products
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT id, name, price, image, stock, is_active, created_at
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Image, &p.Stock, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// DecrementStock decrements stock in a single conditional statement so the
// check and the write cannot interleave with another purchaser. The result
// is clamped at zero.
func (r *productRepository) DecrementStock(ctx context.Context, id string, quantity int) (int, error) {
	query := `
		UPDATE products
		SET stock = GREATEST(stock - $2, 0)
		WHERE id = $1
		RETURNING stock
	`

	var stock int
	err := r.pool.QueryRow(ctx, query, id, quantity).Scan(&stock)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Warn().Str("product_id", id).Msg("stock decrement on unknown product")
			return 0, model.ErrProductNotFound
		}
		r.logger.Error().Err(err).
			Str("product_id", id).
			Int("quantity", quantity).
			Msg("failed to decrement stock")
		return 0, fmt.Errorf("failed to decrement stock: %w", err)
	}

	r.logger.Debug().
		Str("product_id", id).
		Int("quantity", quantity).
		Int("stock", stock).
		Msg("stock decremented")

	return stock, nil
}

// CountAll returns the number of products in the catalogue.
func (r *productRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// BulkInsert inserts seed products, skipping ids that already exist.
func (r *productRepository) BulkInsert(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	query := `
		INSERT INTO products (id, name, price, image, stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	batch := &pgx.Batch{}
	for _, p := range products {
		id := p.ID
		if id == "" {
			id = uuid.NewString()
		}
		batch.Queue(query, id, p.Name, p.Price, p.Image, p.Stock, p.IsActive)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(products); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().Err(err).
				Str("product_id", products[i].ID).
				Msg("failed to insert seed product")
			return fmt.Errorf("failed to insert seed product: %w", err)
		}
	}

	r.logger.Info().Int("count", len(products)).Msg("seed products inserted")

	return nil
}

func scanProducts(rows pgx.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Image, &p.Stock, &p.IsActive, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
