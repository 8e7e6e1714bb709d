package repository

import (
	"context"
	"fmt"

	"letsgo-store/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

// GetByEmail retrieves a customer by email.
func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	query := `
		SELECT id, name, email, created_at
		FROM customers
		WHERE email = $1
	`

	var c model.Customer
	err := r.pool.QueryRow(ctx, query, email).Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("email", email).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// Upsert inserts or updates a customer keyed by id.
func (r *customerRepository) Upsert(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (id, name, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email
	`

	_, err := r.pool.Exec(ctx, query, customer.ID, customer.Name, customer.Email)
	if err != nil {
		r.logger.Error().Err(err).
			Str("customer_id", customer.ID).
			Str("email", customer.Email).
			Msg("failed to upsert customer")
		return fmt.Errorf("failed to upsert customer: %w", err)
	}

	r.logger.Debug().
		Str("customer_id", customer.ID).
		Msg("customer upserted")

	return nil
}
