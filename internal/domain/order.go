package domain

import "time"

// OrderStatus represents the status of an order created from a checkout
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is the order the cart service returns once a checkout consumes the
// cart. The client only displays it; the order lifecycle is owned server-side.
type Order struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"order_number"`
	Status      OrderStatus `json:"status"`
	Items       []CartItem  `json:"items"`
	Subtotal    float64     `json:"subtotal"`
	Total       float64     `json:"total"`
	CreatedAt   time.Time   `json:"created_at"`
}

// CheckoutRequest is the full checkout payload
type CheckoutRequest struct {
	Email            string   `json:"email"`
	ShippingAddress  *Address `json:"shipping_address,omitempty"`
	BillingAddress   *Address `json:"billing_address,omitempty"`
	ShippingMethodID string   `json:"shipping_method_id,omitempty"`
	PaymentMethod    string   `json:"payment_method"`
	Notes            *string  `json:"notes,omitempty"`
}
