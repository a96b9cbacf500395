package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tesseract-nexus/storefront-client/internal/config"
	"github.com/tesseract-nexus/storefront-client/internal/domain"
	"github.com/tesseract-nexus/storefront-client/pkg/errors"
)

type Client struct {
	baseURL    string
	tenantID   string
	storeID    string
	authToken  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new cart service client
func NewClient(cfg config.CartServiceConfig, logger *zap.Logger) *Client {
	// Normalize base URL - remove trailing slashes
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		baseURL:  baseURL,
		tenantID: cfg.TenantID,
		storeID:  cfg.StoreID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// SetAuthToken sets the bearer token attached to subsequent requests.
// An empty token means the client acts as a guest session.
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", c.tenantID)
	req.Header.Set("X-Store-ID", c.storeID)
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Cart service error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return &errors.ErrAPIStatus{
			Status:  resp.StatusCode,
			Message: errorMessage(respBody),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

// errorMessage extracts the service's error field from a failure body.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

// Get fetches the current cart.
func (c *Client) Get(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodGet, "/v1/cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetValidated fetches the cart after the service re-checks every line
// against current catalog state.
func (c *Client) GetValidated(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodGet, "/v1/cart?validate=true", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AddItem(ctx context.Context, req AddItemRequest) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodPost, "/v1/cart/items", req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) UpdateItem(ctx context.Context, itemID string, quantity int) (*domain.Cart, error) {
	var cart domain.Cart
	req := UpdateItemRequest{Quantity: quantity}
	if err := c.do(ctx, http.MethodPut, "/v1/cart/items/"+itemID, req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) RemoveItem(ctx context.Context, itemID string) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodDelete, "/v1/cart/items/"+itemID, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) Clear(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodDelete, "/v1/cart/items", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ApplyCoupon applies a coupon code. A 400/422 from the service is reported
// as ErrInvalidCoupon so callers can show the dedicated message.
func (c *Client) ApplyCoupon(ctx context.Context, code string) (*domain.Cart, error) {
	var cart domain.Cart
	req := CouponRequest{Code: code}
	if err := c.do(ctx, http.MethodPost, "/v1/cart/coupons", req, &cart); err != nil {
		return nil, couponError(err, code)
	}
	return &cart, nil
}

func (c *Client) RemoveCoupon(ctx context.Context, code string) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodDelete, "/v1/cart/coupons/"+code, nil, &cart); err != nil {
		return nil, couponError(err, code)
	}
	return &cart, nil
}

func couponError(err error, code string) error {
	if apiErr, ok := err.(*errors.ErrAPIStatus); ok {
		if apiErr.Status == http.StatusBadRequest || apiErr.Status == http.StatusUnprocessableEntity {
			return &errors.ErrInvalidCoupon{Code: code}
		}
	}
	return err
}

func (c *Client) SetShippingAddress(ctx context.Context, addr domain.Address) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodPut, "/v1/cart/shipping-address", addr, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) SetBillingAddress(ctx context.Context, addr domain.Address) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodPut, "/v1/cart/billing-address", addr, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) SetShippingMethod(ctx context.Context, methodID string) (*domain.Cart, error) {
	var cart domain.Cart
	req := ShippingMethodRequest{MethodID: methodID}
	if err := c.do(ctx, http.MethodPut, "/v1/cart/shipping-method", req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Checkout converts the cart into an order. The service deletes the cart on
// success.
func (c *Client) Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/v1/cart/checkout", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ValidateItems re-checks each line's availability and price. Unlike the
// other calls it returns only the item list, not a full cart.
func (c *Client) ValidateItems(ctx context.Context) (*ValidationResult, error) {
	var result ValidationResult
	if err := c.do(ctx, http.MethodPost, "/v1/cart/validate", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) RemoveUnavailableItems(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodPost, "/v1/cart/remove-unavailable", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *Client) AcceptPriceChanges(ctx context.Context) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodPost, "/v1/cart/accept-price-changes", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
