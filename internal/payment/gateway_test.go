package payment

import (
	"context"
	"strings"
	"testing"

	"letsgo-store/internal/model"
	"letsgo-store/internal/session"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGatewayConfig() GatewayConfig {
	return GatewayConfig{
		ClientKey:  "test_ck_abc",
		SuccessURL: "http://localhost:8080/payment/success",
		FailURL:    "http://localhost:8080/payment/fail",
	}
}

func TestGateway_InitiateCheckout_SnapshotBeforeDescriptor(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore()
	gw := NewGateway(testGatewayConfig(), sessions, zerolog.Nop())

	checkout, err := gw.InitiateCheckout(ctx, "sess-1", CheckoutParams{
		Amount:        890000,
		OrderName:     "모던 패브릭 소파 1개",
		CustomerName:  "김민수",
		CustomerEmail: "kim@example.com",
		Items: []model.PendingOrderItem{
			{ID: "prod-sofa", Name: "모던 패브릭 소파", Price: 890000, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "test_ck_abc", checkout.ClientKey)
	assert.Equal(t, "CARD", checkout.Method)
	assert.Equal(t, float64(890000), checkout.Amount)
	assert.True(t, strings.HasPrefix(checkout.OrderID, "order_"))
	assert.Equal(t, "http://localhost:8080/payment/success", checkout.SuccessURL)
	assert.Equal(t, "http://localhost:8080/payment/fail", checkout.FailURL)

	pending, err := sessions.PendingOrder(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, checkout.OrderID, pending.OrderID)
	assert.Equal(t, float64(890000), pending.Amount)
	require.Len(t, pending.Items, 1)
	assert.Equal(t, "prod-sofa", pending.Items[0].ID)
}

func TestGateway_InitiateCheckout_FreshOrderIDPerAttempt(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore()
	gw := NewGateway(testGatewayConfig(), sessions, zerolog.Nop())

	params := CheckoutParams{Amount: 1000, OrderName: "의자 1개"}

	first, err := gw.InitiateCheckout(ctx, "sess-1", params)
	require.NoError(t, err)
	second, err := gw.InitiateCheckout(ctx, "sess-1", params)
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID)

	// The second attempt's snapshot replaced the first.
	pending, err := sessions.PendingOrder(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, second.OrderID, pending.OrderID)
}

func TestGateway_InitiateCheckout_DefaultCustomerName(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore()
	gw := NewGateway(testGatewayConfig(), sessions, zerolog.Nop())

	checkout, err := gw.InitiateCheckout(ctx, "sess-1", CheckoutParams{Amount: 1000, OrderName: "의자 1개"})
	require.NoError(t, err)
	assert.Equal(t, "고객", checkout.CustomerName)
}

func TestGateway_InitiateCheckout_MissingClientKey(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewMemoryStore()
	gw := NewGateway(GatewayConfig{}, sessions, zerolog.Nop())

	_, err := gw.InitiateCheckout(ctx, "sess-1", CheckoutParams{Amount: 1000})
	require.Error(t, err)

	// No snapshot is written when provider setup fails.
	pending, err := sessions.PendingOrder(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, pending)
}
