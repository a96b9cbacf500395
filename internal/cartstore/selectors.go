package cartstore

import "github.com/tesseract-nexus/storefront-client/internal/domain"

// Derived selectors. All are pure reads over the current cart; none touch
// the network.

// ItemCount returns the sum of quantities across all lines, 0 for a nil cart.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return 0
	}
	count := 0
	for _, item := range s.cart.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the server-supplied subtotal, 0 for a nil cart. It is
// never recomputed from items so the display cannot drift from tax and
// discount logic owned server-side.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.Subtotal
}

func (s *Store) itemsByStatus(status domain.ItemStatus) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return nil
	}
	var items []domain.CartItem
	for _, item := range s.cart.Items {
		if item.Status == status {
			items = append(items, item)
		}
	}
	return items
}

func (s *Store) UnavailableItems() []domain.CartItem {
	return s.itemsByStatus(domain.ItemStatusUnavailable)
}

func (s *Store) OutOfStockItems() []domain.CartItem {
	return s.itemsByStatus(domain.ItemStatusOutOfStock)
}

func (s *Store) LowStockItems() []domain.CartItem {
	return s.itemsByStatus(domain.ItemStatusLowStock)
}

func (s *Store) PriceChangedItems() []domain.CartItem {
	return s.itemsByStatus(domain.ItemStatusPriceChanged)
}

// AvailableItems returns the lines that can be purchased as-is: no status,
// available, or low stock.
func (s *Store) AvailableItems() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return nil
	}
	var items []domain.CartItem
	for _, item := range s.cart.Items {
		switch item.Status {
		case "", domain.ItemStatusAvailable, domain.ItemStatusLowStock:
			items = append(items, item)
		}
	}
	return items
}

// HasIssues reports whether the cart needs attention before checkout. It
// reads the cart-level flags the server computed, not the item statuses.
func (s *Store) HasIssues() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cart == nil {
		return false
	}
	return s.cart.HasUnavailableItems || s.cart.HasPriceChanges
}
