package repository

import (
	"context"

	"letsgo-store/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// Search retrieves active products whose name matches the keyword
	// (case-insensitive substring), in stable catalogue order. An empty
	// keyword lists the catalogue. Limit is clamped to 1..20.
	Search(ctx context.Context, keyword string, limit int) ([]model.Product, error)

	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when the
	// product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// DecrementStock atomically decrements a product's stock by quantity,
	// clamped at zero. Returns the resulting stock.
	DecrementStock(ctx context.Context, id string, quantity int) (int, error)

	// CountAll returns the number of products in the catalogue.
	CountAll(ctx context.Context) (int, error)

	// BulkInsert inserts seed products, skipping ids that already exist.
	BulkInsert(ctx context.Context, products []model.Product) error
}

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	// GetByEmail retrieves a customer by email (unique key). Returns nil
	// when no customer exists for the email.
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)

	// Upsert inserts or updates a customer keyed by id.
	Upsert(ctx context.Context, customer *model.Customer) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// CreateOrder inserts a new order and assigns its ID from the data
	// store. When the schema has no customer_id column the order is
	// inserted without it.
	CreateOrder(ctx context.Context, order *model.Order) error

	// CreateOrderItems inserts the order's line items.
	CreateOrderItems(ctx context.Context, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items. Returns
	// nil order when not found.
	GetByID(ctx context.Context, id string) (*model.Order, []model.OrderItem, error)
}
