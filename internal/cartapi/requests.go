package cartapi

import (
	"time"

	"github.com/tesseract-nexus/storefront-client/internal/domain"
)

// AddItemRequest adds a product (optionally a specific variant) to the cart.
type AddItemRequest struct {
	ProductID  string            `json:"product_id"`
	VariantID  string            `json:"variant_id,omitempty"`
	Quantity   int               `json:"quantity"`
	Properties map[string]string `json:"properties,omitempty"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

type CouponRequest struct {
	Code string `json:"code"`
}

type ShippingMethodRequest struct {
	MethodID string `json:"method_id"`
}

// ValidationResult is the partial response of the validate endpoint: the
// re-checked item list plus the validation timestamp. Totals are not part of
// it.
type ValidationResult struct {
	Items       []domain.CartItem `json:"items"`
	ValidatedAt *time.Time        `json:"validated_at,omitempty"`
}
