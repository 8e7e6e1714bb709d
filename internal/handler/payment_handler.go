package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"letsgo-store/internal/middleware"
	"letsgo-store/internal/model"
	"letsgo-store/internal/payment"

	"github.com/rs/zerolog"
)

// PaymentHandler handles the payment confirm proxy and the provider's
// redirect-back pages.
type PaymentHandler struct {
	confirmer  payment.Confirmer
	reconciler *payment.Reconciler
	logger     zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(confirmer payment.Confirmer, reconciler *payment.Reconciler, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		confirmer:  confirmer,
		reconciler: reconciler,
		logger:     logger.With().Str("handler", "payment").Logger(),
	}
}

type confirmRequest struct {
	PaymentKey string  `json:"paymentKey"`
	OrderID    string  `json:"orderId"`
	Amount     float64 `json:"amount"`
}

type confirmResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Code    string          `json:"code,omitempty"`
}

// Confirm handles POST /api/payments/confirm: it forwards the confirmation
// to the provider with the server-held secret and passes the provider's
// verdict through, status included, so the client sees exactly what the
// provider said.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, confirmResponse{Success: false, Message: "Method not allowed"})
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, confirmResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.PaymentKey == "" || req.OrderID == "" || req.Amount <= 0 {
		writeJSON(w, http.StatusBadRequest, confirmResponse{Success: false, Message: "paymentKey, orderId and amount are required"})
		return
	}

	data, err := h.confirmer.Confirm(r.Context(), req.PaymentKey, req.OrderID, req.Amount)
	if err != nil {
		var ce *payment.ConfirmError
		if errors.As(err, &ce) {
			writeJSON(w, ce.Status, confirmResponse{Success: false, Message: ce.Message, Code: ce.Code})
			return
		}
		h.logger.Error().Err(err).Str("order_id", req.OrderID).Msg("payment confirm failed")
		writeJSON(w, http.StatusInternalServerError, confirmResponse{Success: false, Message: "Confirm failed"})
		return
	}

	writeJSON(w, http.StatusOK, confirmResponse{Success: true, Data: data})
}

type successResponse struct {
	Message string       `json:"message"`
	Order   *model.Order `json:"order"`
}

// Success handles GET /payment/success, the provider's success redirect.
// It confirms the payment server-side and then reconciles the pending
// snapshot into a durable order.
func (h *PaymentHandler) Success(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	query := r.URL.Query()
	paymentKey := query.Get("paymentKey")
	orderID := query.Get("orderId")
	amountStr := query.Get("amount")

	if paymentKey == "" || orderID == "" {
		writeError(w, http.StatusBadRequest, model.ErrMissingToken.Message, h.logger)
		return
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		writeError(w, http.StatusBadRequest, "invalid amount", h.logger)
		return
	}

	if _, err := h.confirmer.Confirm(r.Context(), paymentKey, orderID, amount); err != nil {
		var ce *payment.ConfirmError
		if errors.As(err, &ce) {
			writeError(w, ce.Status, ce.Message, h.logger)
			return
		}
		h.logger.Error().Err(err).Str("order_id", orderID).Msg("payment confirm failed")
		writeError(w, http.StatusInternalServerError, model.ErrPaymentFailed.Message, h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	order, err := h.reconciler.Reconcile(r.Context(), sessionID, paymentKey)
	if err != nil {
		switch model.ErrorCode(err) {
		case model.ErrCodeMissingContext, model.ErrCodeMissingToken:
			writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		case model.ErrCodeUnauthenticated:
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
		case model.ErrCodeOrderInsert, model.ErrCodeOrderItemsInsert:
			writeError(w, http.StatusInternalServerError, err.Error(), h.logger)
		default:
			h.logger.Error().Err(err).Str("order_id", orderID).Msg("reconciliation failed")
			writeError(w, http.StatusInternalServerError, "failed to finalise order", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, successResponse{
		Message: "결제가 완료되었습니다.",
		Order:   order,
	})
}

type failResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Fail handles GET /payment/fail, the provider's failure redirect. The
// pending snapshot is deliberately left intact so the shopper can retry.
func (h *PaymentHandler) Fail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	query := r.URL.Query()
	h.logger.Warn().
		Str("code", query.Get("code")).
		Str("message", query.Get("message")).
		Msg("payment failed redirect")

	writeJSON(w, http.StatusOK, failResponse{
		Message: model.ErrPaymentFailed.Message,
		Code:    query.Get("code"),
		Detail:  query.Get("message"),
	})
}
