package domain

// ItemStatus is the availability state the cart service assigns to a line
// during validation. An empty status is treated as available.
type ItemStatus string

const (
	ItemStatusAvailable    ItemStatus = "AVAILABLE"
	ItemStatusLowStock     ItemStatus = "LOW_STOCK"
	ItemStatusOutOfStock   ItemStatus = "OUT_OF_STOCK"
	ItemStatusUnavailable  ItemStatus = "UNAVAILABLE"
	ItemStatusPriceChanged ItemStatus = "PRICE_CHANGED"
)

// IsValid checks if the item status is a known value
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusAvailable,
		ItemStatusLowStock,
		ItemStatusOutOfStock,
		ItemStatusUnavailable,
		ItemStatusPriceChanged:
		return true
	default:
		return false
	}
}

// Blocking reports whether the status prevents the line from being purchased
// as-is. Low stock warns but does not block.
func (s ItemStatus) Blocking() bool {
	switch s {
	case ItemStatusOutOfStock, ItemStatusUnavailable, ItemStatusPriceChanged:
		return true
	default:
		return false
	}
}
