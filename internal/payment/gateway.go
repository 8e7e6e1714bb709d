package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"letsgo-store/internal/model"
	"letsgo-store/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Gateway starts a checkout with the payment provider. There is no
// synchronous result: control leaves for the provider's UI and the outcome
// arrives later as a redirect to the success or fail return URL.
type Gateway interface {
	InitiateCheckout(ctx context.Context, sessionID string, params CheckoutParams) (*model.CheckoutRequest, error)
}

// CheckoutParams describes one checkout attempt.
type CheckoutParams struct {
	Amount        float64
	OrderName     string
	CustomerID    string
	CustomerName  string
	CustomerEmail string
	Items         []model.PendingOrderItem
}

// GatewayConfig holds the client-facing provider settings.
type GatewayConfig struct {
	ClientKey  string
	SuccessURL string
	FailURL    string
}

type gateway struct {
	cfg      GatewayConfig
	sessions session.Store
	logger   zerolog.Logger

	setupOnce sync.Once
	setupErr  error
}

// NewGateway creates the payment gateway adapter.
func NewGateway(cfg GatewayConfig, sessions session.Store, logger zerolog.Logger) Gateway {
	return &gateway{
		cfg:      cfg,
		sessions: sessions,
		logger:   logger.With().Str("service", "gateway").Logger(),
	}
}

// ensureProvider runs the one-time provider setup. Concurrent checkout
// attempts share a single setup pass.
func (g *gateway) ensureProvider() error {
	g.setupOnce.Do(func() {
		if g.cfg.ClientKey == "" {
			g.setupErr = fmt.Errorf("payment provider client key is not configured")
			return
		}
		g.logger.Info().Msg("payment provider initialised")
	})
	return g.setupErr
}

// InitiateCheckout generates a fresh order id, persists the pending-order
// snapshot (the only state that survives the redirect), and returns the
// checkout descriptor for the provider's UI.
func (g *gateway) InitiateCheckout(ctx context.Context, sessionID string, params CheckoutParams) (*model.CheckoutRequest, error) {
	if err := g.ensureProvider(); err != nil {
		return nil, err
	}

	customerName := params.CustomerName
	if customerName == "" {
		customerName = "고객"
	}

	orderID := "order_" + uuid.NewString()

	pending := &model.PendingOrder{
		OrderID:       orderID,
		Amount:        params.Amount,
		OrderName:     params.OrderName,
		CustomerID:    params.CustomerID,
		CustomerName:  customerName,
		CustomerEmail: params.CustomerEmail,
		Items:         params.Items,
		SavedAt:       time.Now(),
	}

	// The snapshot write comes before anything is handed to the provider:
	// without it the redirect back would have no order to reconcile.
	if err := g.sessions.SavePendingOrder(ctx, sessionID, pending); err != nil {
		g.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to store pending order")
		return nil, fmt.Errorf("failed to store pending order: %w", err)
	}

	g.logger.Info().
		Str("order_id", orderID).
		Float64("amount", params.Amount).
		Int("items", len(params.Items)).
		Msg("checkout initiated")

	return &model.CheckoutRequest{
		ClientKey:     g.cfg.ClientKey,
		Method:        "CARD",
		Amount:        params.Amount,
		OrderID:       orderID,
		OrderName:     params.OrderName,
		CustomerName:  customerName,
		CustomerEmail: params.CustomerEmail,
		SuccessURL:    g.cfg.SuccessURL,
		FailURL:       g.cfg.FailURL,
	}, nil
}
