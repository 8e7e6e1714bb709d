package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"letsgo-store/internal/middleware"
	"letsgo-store/internal/model"
	"letsgo-store/internal/payment"
	"letsgo-store/internal/repository"
	"letsgo-store/internal/session"

	"github.com/rs/zerolog"
)

// CartHandler handles the session cart and cart checkout.
type CartHandler struct {
	sessions session.Store
	products repository.ProductRepository
	gateway  payment.Gateway
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(sessions session.Store, products repository.ProductRepository, gateway payment.Gateway, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		products: products,
		gateway:  gateway,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

type cartResponse struct {
	Items []model.CartItem `json:"items"`
	Total float64          `json:"total"`
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	items, err := h.sessions.Cart(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{Items: items, Total: cartTotal(items)})
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddItem handles POST /api/cart/items requests. Adding a product already
// in the cart bumps its quantity.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required", h.logger)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	product, err := h.products.GetByID(r.Context(), req.ProductID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to retrieve product", h.logger)
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "product not found", h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	items, err := h.sessions.Cart(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart", h.logger)
		return
	}

	merged := false
	for i := range items {
		if items[i].ProductID == req.ProductID {
			items[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, model.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  req.Quantity,
		})
	}

	if err := h.sessions.SaveCart(r.Context(), sessionID, items); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{Items: items, Total: cartTotal(items)})
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionID(r.Context())

	if err := h.sessions.ClearCart(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to clear cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cartResponse{Items: []model.CartItem{}, Total: 0})
}

// Checkout handles POST /api/checkout requests: it turns the session cart
// into a pending-order snapshot and returns the provider checkout
// descriptor.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	sessionID := middleware.SessionID(r.Context())
	items, err := h.sessions.Cart(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart", h.logger)
		return
	}
	if len(items) == 0 {
		writeError(w, http.StatusBadRequest, "cart is empty", h.logger)
		return
	}

	identity, err := h.sessions.Identity(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load identity", h.logger)
		return
	}

	orderName := items[0].Name
	if len(items) > 1 {
		orderName = fmt.Sprintf("%s 외 %d건", items[0].Name, len(items)-1)
	}

	params := payment.CheckoutParams{
		Amount:    cartTotal(items),
		OrderName: orderName,
		Items:     make([]model.PendingOrderItem, 0, len(items)),
	}
	if identity != nil {
		params.CustomerID = identity.ID
		params.CustomerName = identity.Name
		params.CustomerEmail = identity.Email
	}
	for _, it := range items {
		params.Items = append(params.Items, model.PendingOrderItem{
			ID:       it.ProductID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	checkout, err := h.gateway.InitiateCheckout(r.Context(), sessionID, params)
	if err != nil {
		h.logger.Error().Err(err).Msg("checkout invocation failed")
		writeError(w, http.StatusInternalServerError, model.ErrPaymentFailed.Message, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, checkout)
}

func cartTotal(items []model.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
