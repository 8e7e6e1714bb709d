package payment

import (
	"context"
	"fmt"

	"letsgo-store/internal/events"
	"letsgo-store/internal/model"
	"letsgo-store/internal/repository"
	"letsgo-store/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const paymentMethodCard = "카드"

// Reconciler turns a confirmed payment back into durable order state: it
// replays the pending-order snapshot taken before the provider redirect
// into orders, order_items, and stock.
type Reconciler struct {
	sessions  session.Store
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	products  repository.ProductRepository
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewReconciler creates a Reconciler.
func NewReconciler(
	sessions session.Store,
	customers repository.CustomerRepository,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) *Reconciler {
	return &Reconciler{
		sessions:  sessions,
		customers: customers,
		orders:    orders,
		products:  products,
		publisher: publisher,
		logger:    logger.With().Str("component", "reconciler").Logger(),
	}
}

// Reconcile persists the order for a payment the provider has confirmed.
// All preconditions are checked before the first write, so a rejected call
// leaves the database untouched and the snapshot resumable. On success the
// snapshot and cart are cleared; a later duplicate call therefore fails the
// snapshot check instead of double-inserting.
func (r *Reconciler) Reconcile(ctx context.Context, sessionID, paymentKey string) (*model.Order, error) {
	pending, err := r.sessions.PendingOrder(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending order: %w", err)
	}
	if pending == nil {
		return nil, model.ErrMissingContext
	}
	if paymentKey == "" {
		return nil, model.ErrMissingToken
	}

	identity, err := r.sessions.Identity(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	userID := pending.CustomerID
	if identity != nil {
		userID = identity.ID
	}
	if userID == "" {
		return nil, model.ErrUnauthenticated
	}

	customerID := r.ensureCustomer(ctx, userID, pending)

	order := &model.Order{
		CustomerID:    customerID,
		UserID:        userID,
		TotalAmount:   pending.Amount,
		Status:        model.OrderStatusPaid,
		ShippingName:  pending.CustomerName,
		PaymentMethod: paymentMethodCard,
		PaymentID:     paymentKey,
	}
	if err := r.orders.CreateOrder(ctx, order); err != nil {
		r.logger.Error().Err(err).Str("pending_order_id", pending.OrderID).Msg("order insert failed")
		return nil, model.ErrOrderInsert
	}

	items := make([]model.OrderItem, 0, len(pending.Items))
	for _, it := range pending.Items {
		items = append(items, model.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: it.ID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Price * float64(it.Quantity),
		})
	}
	if err := r.orders.CreateOrderItems(ctx, items); err != nil {
		// The order row stays for manual reconciliation; the snapshot is
		// kept so support can replay the items.
		r.logger.Error().Err(err).Str("order_id", order.ID).Msg("order items insert failed")
		return nil, model.ErrOrderItemsInsert
	}

	for _, it := range pending.Items {
		if _, err := r.products.DecrementStock(ctx, it.ID, it.Quantity); err != nil {
			r.logger.Error().Err(err).
				Str("order_id", order.ID).
				Str("product_id", it.ID).
				Msg("stock decrement failed")
		}
	}

	if err := r.sessions.ClearCart(ctx, sessionID); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to clear cart")
	}
	if err := r.sessions.ClearPendingOrder(ctx, sessionID); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to clear pending order")
	}

	if err := r.publisher.PublishOrderCompleted(ctx, order); err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to publish order event")
	}

	r.logger.Info().
		Str("order_id", order.ID).
		Str("payment_id", paymentKey).
		Float64("amount", order.TotalAmount).
		Msg("payment reconciled")

	return order, nil
}

// ensureCustomer best-effort upserts the buyer's customer row when the
// snapshot carries an email. A failure is logged and the order proceeds
// without a customer link.
func (r *Reconciler) ensureCustomer(ctx context.Context, userID string, pending *model.PendingOrder) *string {
	if pending.CustomerEmail == "" {
		return nil
	}

	customer, err := r.customers.GetByEmail(ctx, pending.CustomerEmail)
	if err != nil {
		r.logger.Error().Err(err).Msg("customer lookup failed during reconciliation")
		return nil
	}
	if customer != nil {
		return &customer.ID
	}

	name := pending.CustomerName
	if name == "" {
		name = "고객"
	}
	fresh := &model.Customer{
		ID:    userID,
		Name:  name,
		Email: pending.CustomerEmail,
	}
	if err := r.customers.Upsert(ctx, fresh); err != nil {
		r.logger.Error().Err(err).Msg("customer upsert failed during reconciliation")
		return nil
	}
	return &fresh.ID
}
