package router

import (
	"net/http"

	"letsgo-store/internal/handler"
	"letsgo-store/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	chatHandler *handler.ChatHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	paymentHandler *handler.PaymentHandler,
	authHandler *handler.AuthHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/api/chat", chatHandler.Chat)

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific product ID
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.GetAll(w, r)
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Cart handler function, routed by method
	cartRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cartHandler.Get(w, r)
		case http.MethodDelete:
			cartHandler.Clear(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/cart", cartRouteHandler)
	mux.HandleFunc("/api/cart/", cartRouteHandler)
	mux.HandleFunc("/api/cart/items", cartHandler.AddItem)
	mux.HandleFunc("/api/checkout", cartHandler.Checkout)

	mux.HandleFunc("/api/payments/confirm", paymentHandler.Confirm)
	mux.HandleFunc("/payment/success", paymentHandler.Success)
	mux.HandleFunc("/payment/fail", paymentHandler.Fail)

	mux.HandleFunc("/api/auth/signin", authHandler.SignIn)
	mux.HandleFunc("/api/auth/signout", authHandler.SignOut)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth -> Session
	var h http.Handler = mux
	h = middleware.Session(h)
	if apiKey != "" {
		h = middleware.APIKeyAuth(apiKey, logger)(h)
	}
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
