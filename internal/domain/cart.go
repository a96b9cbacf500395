package domain

import "time"

// Cart is the server-authoritative shopping cart. The client never recomputes
// money fields; subtotal and total always come from the cart service.
type Cart struct {
	ID                  string     `json:"id"`
	Items               []CartItem `json:"items"`
	Subtotal            float64    `json:"subtotal"`
	Total               float64    `json:"total"`
	CouponCodes         []string   `json:"coupon_codes,omitempty"`
	ShippingAddress     *Address   `json:"shipping_address,omitempty"`
	BillingAddress      *Address   `json:"billing_address,omitempty"`
	ShippingMethodID    string     `json:"shipping_method_id,omitempty"`
	HasUnavailableItems bool       `json:"has_unavailable_items"`
	HasPriceChanges     bool       `json:"has_price_changes"`
	LastValidatedAt     *time.Time `json:"last_validated_at,omitempty"`
}

// CartItem is one line in a cart. ID identifies the line itself, not the
// product: two lines for the same product with different variants carry
// different IDs.
type CartItem struct {
	ID         string            `json:"id"`
	ProductID  string            `json:"product_id"`
	VariantID  string            `json:"variant_id,omitempty"`
	Title      string            `json:"title"`
	Price      float64           `json:"price"`
	Quantity   int               `json:"quantity"`
	Status     ItemStatus        `json:"status,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Address is a shipping or billing address as the cart service stores it.
type Address struct {
	Name       string  `json:"name"`
	Phone      *string `json:"phone,omitempty"`
	Street     string  `json:"street"`
	City       string  `json:"city"`
	State      *string `json:"state,omitempty"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
}

// FindItem returns the line with the given id, or nil if the cart has no
// such line.
func (c *Cart) FindItem(itemID string) *CartItem {
	if c == nil {
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i]
		}
	}
	return nil
}
