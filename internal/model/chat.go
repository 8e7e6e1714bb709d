package model

// ChatRequest is the body of POST /api/chat: one user utterance.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is what the assistant returns for a turn. Products is set when
// the turn was a search; Checkout is set when an order completed resolution
// and payment should be started on the client.
type ChatReply struct {
	Text     string           `json:"text"`
	Products []SearchResult   `json:"products,omitempty"`
	Checkout *CheckoutRequest `json:"checkout,omitempty"`
}

// CheckoutRequest is the descriptor the client forwards to the payment
// provider's checkout UI. The secret key is never part of it.
type CheckoutRequest struct {
	ClientKey     string  `json:"clientKey"`
	Method        string  `json:"method"`
	Amount        float64 `json:"amount"`
	OrderID       string  `json:"orderId"`
	OrderName     string  `json:"orderName"`
	CustomerName  string  `json:"customerName,omitempty"`
	CustomerEmail string  `json:"customerEmail,omitempty"`
	SuccessURL    string  `json:"successUrl"`
	FailURL       string  `json:"failUrl"`
}
