package repository

import (
	"context"
	"fmt"
	"sync"

	"letsgo-store/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
//
// Older deployments of the storefront schema have no orders.customer_id
// column. Rather than parsing insert error text, the column's presence is
// probed once from information_schema and the insert branches on the result.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger

	probeOnce         sync.Once
	hasCustomerColumn bool
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

func (r *orderRepository) customerColumnPresent(ctx context.Context) bool {
	r.probeOnce.Do(func() {
		query := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'orders' AND column_name = 'customer_id'
			)
		`
		if err := r.pool.QueryRow(ctx, query).Scan(&r.hasCustomerColumn); err != nil {
			// Assume the modern schema; a wrong guess fails the insert
			// with a real error instead of silently dropping data.
			r.logger.Error().Err(err).Msg("failed to probe orders schema")
			r.hasCustomerColumn = true
		}
		r.logger.Info().
			Bool("customer_id_column", r.hasCustomerColumn).
			Msg("orders schema probed")
	})
	return r.hasCustomerColumn
}

// CreateOrder inserts a new order and assigns its ID from the database.
func (r *orderRepository) CreateOrder(ctx context.Context, order *model.Order) error {
	var err error
	if r.customerColumnPresent(ctx) {
		query := `
			INSERT INTO orders (customer_id, user_id, total_amount, status, shipping_name, payment_method, payment_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`
		err = r.pool.QueryRow(ctx, query,
			order.CustomerID, order.UserID, order.TotalAmount, order.Status,
			order.ShippingName, order.PaymentMethod, order.PaymentID,
		).Scan(&order.ID, &order.CreatedAt)
	} else {
		query := `
			INSERT INTO orders (user_id, total_amount, status, shipping_name, payment_method, payment_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`
		err = r.pool.QueryRow(ctx, query,
			order.UserID, order.TotalAmount, order.Status,
			order.ShippingName, order.PaymentMethod, order.PaymentID,
		).Scan(&order.ID, &order.CreatedAt)
	}

	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", order.UserID).
			Str("payment_id", order.PaymentID).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID).
		Msg("order created successfully")

	return nil
}

// CreateOrderItems inserts multiple order items in one batch.
func (r *orderRepository) CreateOrderItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		id := item.ID
		if id == "" {
			id = uuid.NewString()
		}
		batch.Queue(query, id, item.OrderID, item.ProductID, item.Quantity, item.Price, item.Subtotal)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().Err(err).
				Str("order_id", items[i].OrderID).
				Str("product_id", items[i].ProductID).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created successfully")

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, []model.OrderItem, error) {
	var (
		order model.Order
		err   error
	)

	if r.customerColumnPresent(ctx) {
		orderQuery := `
			SELECT id, customer_id, user_id, total_amount, status, shipping_name, payment_method, payment_id, created_at
			FROM orders
			WHERE id = $1
		`
		err = r.pool.QueryRow(ctx, orderQuery, id).Scan(
			&order.ID, &order.CustomerID, &order.UserID, &order.TotalAmount, &order.Status,
			&order.ShippingName, &order.PaymentMethod, &order.PaymentID, &order.CreatedAt,
		)
	} else {
		orderQuery := `
			SELECT id, user_id, total_amount, status, shipping_name, payment_method, payment_id, created_at
			FROM orders
			WHERE id = $1
		`
		err = r.pool.QueryRow(ctx, orderQuery, id).Scan(
			&order.ID, &order.UserID, &order.TotalAmount, &order.Status,
			&order.ShippingName, &order.PaymentMethod, &order.PaymentID, &order.CreatedAt,
		)
	}

	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, quantity, price, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id).Msg("failed to query order items")
		return nil, nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.Subtotal)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return &order, items, nil
}
