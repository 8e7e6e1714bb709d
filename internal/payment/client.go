// Package payment integrates the external payment provider: starting a
// checkout (with its redirect-surviving snapshot), confirming a payment
// token server-side, and reconciling a confirmed payment into durable
// order records.
package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Confirmer exchanges a payment token for provider-side confirmation.
type Confirmer interface {
	Confirm(ctx context.Context, paymentKey, orderID string, amount float64) (json.RawMessage, error)
}

// ConfirmError preserves the provider's HTTP status, message, and error
// code so they can be passed through verbatim.
type ConfirmError struct {
	Status  int
	Code    string
	Message string
}

func (e *ConfirmError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("payment confirm failed with status %d", e.Status)
}

// Client is the server-side payment provider client. It authenticates with
// Basic auth built from the server-held secret key; the secret never
// reaches the browser.
type Client struct {
	apiBase    string
	authHeader string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a payment provider client.
func NewClient(apiBase, secretKey string, logger zerolog.Logger) *Client {
	return &Client{
		apiBase:    apiBase,
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(secretKey+":")),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger.With().Str("client", "payment").Logger(),
	}
}

type confirmRequest struct {
	PaymentKey string  `json:"paymentKey"`
	OrderID    string  `json:"orderId"`
	Amount     float64 `json:"amount"`
}

type confirmFailure struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Confirm calls the provider's confirm endpoint. On success the provider's
// payload is returned verbatim; on rejection a ConfirmError carries the
// provider's status, message, and code.
func (c *Client) Confirm(ctx context.Context, paymentKey, orderID string, amount float64) (json.RawMessage, error) {
	body, err := json.Marshal(confirmRequest{
		PaymentKey: paymentKey,
		OrderID:    orderID,
		Amount:     amount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal confirm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/v1/payments/confirm", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build confirm request: %w", err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("order_id", orderID).Msg("confirm call failed")
		return nil, fmt.Errorf("confirm call failed: %w", err)
	}
	defer resp.Body.Close()

	var payload json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode confirm response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure confirmFailure
		_ = json.Unmarshal(payload, &failure)
		if failure.Message == "" {
			failure.Message = "Confirm failed"
		}
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("order_id", orderID).
			Str("code", failure.Code).
			Msg("payment confirm rejected")
		return nil, &ConfirmError{
			Status:  resp.StatusCode,
			Code:    failure.Code,
			Message: failure.Message,
		}
	}

	c.logger.Info().Str("order_id", orderID).Msg("payment confirmed")

	return payload, nil
}
