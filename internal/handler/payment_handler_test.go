package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"letsgo-store/internal/payment"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockConfirmer is a mock implementation of payment.Confirmer.
type MockConfirmer struct {
	mock.Mock
}

func (m *MockConfirmer) Confirm(ctx context.Context, paymentKey, orderID string, amount float64) (json.RawMessage, error) {
	args := m.Called(ctx, paymentKey, orderID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func TestPaymentHandler_Confirm_Success(t *testing.T) {
	confirmer := new(MockConfirmer)
	confirmer.On("Confirm", mock.Anything, "pk_123", "order_abc", float64(1000)).
		Return(json.RawMessage(`{"status":"DONE"}`), nil)

	h := NewPaymentHandler(confirmer, nil, zerolog.Nop())

	body := `{"paymentKey":"pk_123","orderId":"order_abc","amount":1000}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments/confirm", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Confirm(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.JSONEq(t, `{"status":"DONE"}`, string(resp.Data))
}

func TestPaymentHandler_Confirm_ProviderStatusPassthrough(t *testing.T) {
	confirmer := new(MockConfirmer)
	confirmer.On("Confirm", mock.Anything, "pk_bad", "order_abc", float64(1000)).
		Return(nil, &payment.ConfirmError{
			Status:  http.StatusPaymentRequired,
			Code:    "REJECT_CARD_COMPANY",
			Message: "카드사에서 거절되었습니다.",
		})

	h := NewPaymentHandler(confirmer, nil, zerolog.Nop())

	body := `{"paymentKey":"pk_bad","orderId":"order_abc","amount":1000}`
	req := httptest.NewRequest(http.MethodPost, "/api/payments/confirm", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Confirm(w, req)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "카드사에서 거절되었습니다.", resp.Message)
	assert.Equal(t, "REJECT_CARD_COMPANY", resp.Code)
}

func TestPaymentHandler_Confirm_MethodHandling(t *testing.T) {
	h := NewPaymentHandler(new(MockConfirmer), nil, zerolog.Nop())

	t.Run("OPTIONS gets 204", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/payments/confirm", nil)
		w := httptest.NewRecorder()
		h.Confirm(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("GET gets 405", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/payments/confirm", nil)
		w := httptest.NewRecorder()
		h.Confirm(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("invalid JSON gets 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/payments/confirm", strings.NewReader("not json"))
		w := httptest.NewRecorder()
		h.Confirm(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing fields get 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/payments/confirm", strings.NewReader(`{"paymentKey":"pk"}`))
		w := httptest.NewRecorder()
		h.Confirm(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPaymentHandler_Fail(t *testing.T) {
	h := NewPaymentHandler(new(MockConfirmer), nil, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/payment/fail?code=PAY_PROCESS_CANCELED&message=cancelled", nil)
	w := httptest.NewRecorder()
	h.Fail(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
		Code    string `json:"code"`
		Detail  string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "결제가 취소되었습니다", resp.Message)
	assert.Equal(t, "PAY_PROCESS_CANCELED", resp.Code)
	assert.Equal(t, "cancelled", resp.Detail)
}

func TestPaymentHandler_Success_MissingParams(t *testing.T) {
	h := NewPaymentHandler(new(MockConfirmer), nil, zerolog.Nop())

	t.Run("missing payment key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/payment/success?orderId=order_abc&amount=1000", nil)
		w := httptest.NewRecorder()
		h.Success(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid amount", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/payment/success?paymentKey=pk&orderId=order_abc&amount=abc", nil)
		w := httptest.NewRecorder()
		h.Success(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
