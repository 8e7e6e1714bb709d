package model

import "time"

// Order statuses. Kept in Korean, matching what the storefront displays.
const (
	OrderStatusPaid = "결제완료"
)

// Order represents a durable customer order, created only after the
// payment provider confirmed the payment.
type Order struct {
	ID            string    `json:"id" db:"id"`
	CustomerID    *string   `json:"customerId,omitempty" db:"customer_id"`
	UserID        string    `json:"userId" db:"user_id"`
	TotalAmount   float64   `json:"totalAmount" db:"total_amount"`
	Status        string    `json:"status" db:"status"`
	ShippingName  string    `json:"shippingName" db:"shipping_name"`
	PaymentMethod string    `json:"paymentMethod" db:"payment_method"`
	PaymentID     string    `json:"paymentId" db:"payment_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// OrderItem represents a line item in an order.
type OrderItem struct {
	ID        string  `json:"-" db:"id"`
	OrderID   string  `json:"-" db:"order_id"`
	ProductID string  `json:"productId" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	Price     float64 `json:"price" db:"price"`
	Subtotal  float64 `json:"subtotal" db:"subtotal"`
}

// OrderDraft is an in-progress, not-yet-finalised order the assistant is
// still collecting fields for. At most one exists per session.
type OrderDraft struct {
	ProductOrdinal int    `json:"productOrdinal"`
	Quantity       int    `json:"quantity"`
	CustomerEmail  string `json:"customerEmail,omitempty"`
	CustomerName   string `json:"customerName,omitempty"`
}

// OrderPayload is the finalised result of resolving a draft: everything
// needed to hand the order to the payment gateway.
type OrderPayload struct {
	CustomerID    string  `json:"customerId,omitempty"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	ProductPrice  float64 `json:"productPrice"`
	Quantity      int     `json:"quantity"`
	TotalPrice    float64 `json:"totalPrice"`
	Status        string  `json:"status"`
}

// OrderResponse represents the response payload for an order lookup.
type OrderResponse struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

// CartItem is a line in the session cart.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// PendingOrder is the snapshot of a checkout in flight. It is the only
// state that survives the full-page redirect to the payment provider:
// one live snapshot per session, overwritten by each new checkout attempt,
// deleted only after successful reconciliation.
type PendingOrder struct {
	OrderID       string             `json:"orderId"`
	Amount        float64            `json:"amount"`
	OrderName     string             `json:"orderName"`
	CustomerID    string             `json:"customerId,omitempty"`
	CustomerName  string             `json:"customerName,omitempty"`
	CustomerEmail string             `json:"customerEmail,omitempty"`
	Items         []PendingOrderItem `json:"items"`
	SavedAt       time.Time          `json:"savedAt"`
}

// PendingOrderItem is a line item carried across the payment redirect.
type PendingOrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
