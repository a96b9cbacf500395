package cartstore

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/tesseract-nexus/storefront-client/internal/domain"
)

// seedStore loads the given cart through a fetch so tests exercise the same
// replace path production does.
func seedStore(t *testing.T, cart domain.Cart) *Store {
	t.Helper()
	fake := newFakeAPI()
	fake.cart = cart
	store := New(fake, nil, zap.NewNop())
	if err := store.FetchCart(context.Background()); err != nil {
		t.Fatalf("FetchCart: %v", err)
	}
	return store
}

func TestStatusSelectorsPartitionItems(t *testing.T) {
	store := seedStore(t, domain.Cart{
		ID: "cart-1",
		Items: []domain.CartItem{
			{ID: "a", ProductID: "p1", Quantity: 1, Status: domain.ItemStatusOutOfStock},
			{ID: "b", ProductID: "p2", Quantity: 1, Status: domain.ItemStatusAvailable},
			{ID: "c", ProductID: "p3", Quantity: 1, Status: domain.ItemStatusPriceChanged},
			{ID: "d", ProductID: "p4", Quantity: 1}, // no status, treated as available
			{ID: "e", ProductID: "p5", Quantity: 1, Status: domain.ItemStatusLowStock},
			{ID: "f", ProductID: "p6", Quantity: 1, Status: domain.ItemStatusUnavailable},
		},
	})

	assertIDs := func(name string, items []domain.CartItem, want ...string) {
		t.Helper()
		if len(items) != len(want) {
			t.Fatalf("%s: expected %d items, got %d", name, len(want), len(items))
		}
		for i, item := range items {
			if item.ID != want[i] {
				t.Errorf("%s[%d]: expected %q, got %q", name, i, want[i], item.ID)
			}
		}
	}

	assertIDs("OutOfStockItems", store.OutOfStockItems(), "a")
	assertIDs("PriceChangedItems", store.PriceChangedItems(), "c")
	assertIDs("LowStockItems", store.LowStockItems(), "e")
	assertIDs("UnavailableItems", store.UnavailableItems(), "f")
	assertIDs("AvailableItems", store.AvailableItems(), "b", "d", "e")
}

func TestHasIssuesReadsCartFlagsOnly(t *testing.T) {
	// Blocking items but flags unset: HasIssues stays false because it reads
	// the server-computed flags, not item statuses.
	store := seedStore(t, domain.Cart{
		Items: []domain.CartItem{
			{ID: "a", Quantity: 1, Status: domain.ItemStatusOutOfStock},
		},
	})
	if store.HasIssues() {
		t.Error("expected HasIssues false when cart flags are unset")
	}

	// Flags set with clean items: HasIssues is true.
	store = seedStore(t, domain.Cart{
		Items: []domain.CartItem{
			{ID: "a", Quantity: 1, Status: domain.ItemStatusAvailable},
		},
		HasUnavailableItems: true,
	})
	if !store.HasIssues() {
		t.Error("expected HasIssues true when has_unavailable_items is set")
	}

	store = seedStore(t, domain.Cart{HasPriceChanges: true})
	if !store.HasIssues() {
		t.Error("expected HasIssues true when has_price_changes is set")
	}
}

func TestItemCountSumsQuantities(t *testing.T) {
	store := seedStore(t, domain.Cart{
		Items: []domain.CartItem{
			{ID: "a", Quantity: 2},
			{ID: "b", Quantity: 1},
		},
	})
	if got := store.ItemCount(); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestSelectorsOnNilCart(t *testing.T) {
	store := New(newFakeAPI(), nil, zap.NewNop())

	if store.HasIssues() {
		t.Error("expected no issues for nil cart")
	}
	if items := store.AvailableItems(); items != nil {
		t.Errorf("expected nil slice for nil cart, got %v", items)
	}
	if items := store.UnavailableItems(); items != nil {
		t.Errorf("expected nil slice for nil cart, got %v", items)
	}
}
