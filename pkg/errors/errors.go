package errors

import "fmt"

// ErrNotFound indicates a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized indicates a missing or invalid credential
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrInvalidCoupon indicates the cart service rejected a coupon code.
type ErrInvalidCoupon struct {
	Code string
}

func (e *ErrInvalidCoupon) Error() string {
	return "Invalid coupon code"
}

// ErrAPIStatus indicates a non-2xx response from a backend service.
type ErrAPIStatus struct {
	Status  int
	Message string
}

func (e *ErrAPIStatus) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}
