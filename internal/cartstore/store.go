// Package cartstore holds the client-side mirror of the server-authoritative
// cart. Every mutation goes through the cart service and replaces the whole
// local cart with the response; the one exception is ValidateCart, which
// merges only the re-checked item list (see that method).
package cartstore

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tesseract-nexus/storefront-client/internal/cartapi"
	"github.com/tesseract-nexus/storefront-client/internal/domain"
	"github.com/tesseract-nexus/storefront-client/internal/storage"
)

// API is what the store needs from the cart service client.
type API interface {
	Get(ctx context.Context) (*domain.Cart, error)
	GetValidated(ctx context.Context) (*domain.Cart, error)
	AddItem(ctx context.Context, req cartapi.AddItemRequest) (*domain.Cart, error)
	UpdateItem(ctx context.Context, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, itemID string) (*domain.Cart, error)
	Clear(ctx context.Context) (*domain.Cart, error)
	ApplyCoupon(ctx context.Context, code string) (*domain.Cart, error)
	RemoveCoupon(ctx context.Context, code string) (*domain.Cart, error)
	SetShippingAddress(ctx context.Context, addr domain.Address) (*domain.Cart, error)
	SetBillingAddress(ctx context.Context, addr domain.Address) (*domain.Cart, error)
	SetShippingMethod(ctx context.Context, methodID string) (*domain.Cart, error)
	Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Order, error)
	ValidateItems(ctx context.Context) (*cartapi.ValidationResult, error)
	RemoveUnavailableItems(ctx context.Context) (*domain.Cart, error)
	AcceptPriceChanges(ctx context.Context) (*domain.Cart, error)
}

// Snapshot is a point-in-time view of the store's state. The busy flags are
// independent rather than one enum so a consumer can disable only the
// checkout button while a quantity update is in flight elsewhere.
type Snapshot struct {
	Cart            *domain.Cart
	Loading         bool
	Updating        bool
	CheckingOut     bool
	Validating      bool
	Err             string
	LastValidatedAt *time.Time
}

// Listener receives a snapshot after every state change.
type Listener func(Snapshot)

const storageKey = "cart_state"

// persistedState is the only shape that survives a restart. Busy flags and
// the error message are deliberately not part of it.
type persistedState struct {
	Cart            *domain.Cart `json:"cart"`
	LastValidatedAt *time.Time   `json:"last_validated_at,omitempty"`
}

// Store is the single source of truth for the cart on the client. It is safe
// for concurrent use, but mutations are not serialized against each other:
// two overlapping calls race and the later response wins, matching the
// last-write-wins behavior of the shipping clients.
type Store struct {
	api     API
	storage storage.Store
	logger  *zap.Logger

	mu              sync.Mutex
	cart            *domain.Cart
	loading         bool
	updating        bool
	checkingOut     bool
	validating      bool
	errMsg          string
	lastValidatedAt *time.Time
	listeners       map[int]Listener
	nextListenerID  int
}

// New creates a cart store. The storage adapter may be nil, in which case
// nothing is persisted across restarts.
func New(api API, store storage.Store, logger *zap.Logger) *Store {
	return &Store{
		api:       api,
		storage:   store,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers a listener called after every state change. The
// returned function unsubscribes it.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	id := s.nextListenerID
	s.nextListenerID++
	s.listeners[id] = l
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Cart:            s.cart,
		Loading:         s.loading,
		Updating:        s.updating,
		CheckingOut:     s.checkingOut,
		Validating:      s.validating,
		Err:             s.errMsg,
		LastValidatedAt: s.lastValidatedAt,
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	snap := s.snapshotLocked()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()
	for _, l := range listeners {
		l(snap)
	}
}

type busyFlag int

const (
	flagLoading busyFlag = iota
	flagUpdating
	flagCheckingOut
	flagValidating
)

// flagPtr must be called with s.mu held.
func (s *Store) flagPtr(f busyFlag) *bool {
	switch f {
	case flagLoading:
		return &s.loading
	case flagUpdating:
		return &s.updating
	case flagCheckingOut:
		return &s.checkingOut
	default:
		return &s.validating
	}
}

func (s *Store) start(f busyFlag) {
	s.mu.Lock()
	*s.flagPtr(f) = true
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Store) fail(f busyFlag, err error, fallback string) {
	s.mu.Lock()
	*s.flagPtr(f) = false
	s.errMsg = failureMessage(err, fallback)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) finishCart(ctx context.Context, f busyFlag, cart *domain.Cart) {
	s.mu.Lock()
	*s.flagPtr(f) = false
	s.cart = cart
	s.mu.Unlock()
	s.notify()
	s.persist(ctx)
}

func failureMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}

// mutate runs the standard mutation cycle: set the updating flag, call the
// service, replace the whole cart with its response.
func (s *Store) mutate(ctx context.Context, fallback string, call func(context.Context) (*domain.Cart, error)) error {
	s.start(flagUpdating)
	cart, err := call(ctx)
	if err != nil {
		s.fail(flagUpdating, err, fallback)
		return err
	}
	s.finishCart(ctx, flagUpdating, cart)
	return nil
}

// FetchCart loads the current cart from the service.
func (s *Store) FetchCart(ctx context.Context) error {
	s.start(flagLoading)
	cart, err := s.api.Get(ctx)
	if err != nil {
		s.fail(flagLoading, err, "Failed to load cart")
		return err
	}
	s.finishCart(ctx, flagLoading, cart)
	return nil
}

// FetchValidatedCart loads the cart with every line re-checked against the
// catalog. This is one of only two paths that advance LastValidatedAt.
func (s *Store) FetchValidatedCart(ctx context.Context) error {
	s.start(flagLoading)
	cart, err := s.api.GetValidated(ctx)
	if err != nil {
		s.fail(flagLoading, err, "Failed to load cart")
		return err
	}
	at := cart.LastValidatedAt
	if at == nil {
		now := time.Now()
		at = &now
	}
	s.mu.Lock()
	s.loading = false
	s.cart = cart
	s.lastValidatedAt = at
	s.mu.Unlock()
	s.notify()
	s.persist(ctx)
	return nil
}

// AddItem adds a product to the cart. A quantity below one is treated as one.
func (s *Store) AddItem(ctx context.Context, req cartapi.AddItemRequest) error {
	if req.Quantity < 1 {
		req.Quantity = 1
	}
	return s.mutate(ctx, "Failed to add item to cart", func(ctx context.Context) (*domain.Cart, error) {
		return s.api.AddItem(ctx, req)
	})
}

// UpdateItemQuantity sets a line's quantity. Quantities below one never reach
// the update endpoint; they are converted into a removal.
func (s *Store) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(ctx, itemID)
	}
	return s.mutate(ctx, "Failed to update item", func(ctx context.Context) (*domain.Cart, error) {
		return s.api.UpdateItem(ctx, itemID, quantity)
	})
}

// RemoveItem removes a line from the cart.
func (s *Store) RemoveItem(ctx context.Context, itemID string) error {
	return s.mutate(ctx, "Failed to remove item", func(ctx context.Context) (*domain.Cart, error) {
		return s.api.RemoveItem(ctx, itemID)
	})
}

// IncrementItem bumps a line's quantity by one. A no-op when the line is not
// in the local cart.
func (s *Store) IncrementItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	item := s.cart.FindItem(itemID)
	var quantity int
	if item != nil {
		quantity = item.Quantity
	}
	s.mu.Unlock()
	if item == nil {
		return nil
	}
	return s.UpdateItemQuantity(ctx, itemID, quantity+1)
}

// DecrementItem lowers a line's quantity by one, removing the line when it
// would drop below one. A no-op when the line is not in the local cart.
func (s *Store) DecrementItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	item := s.cart.FindItem(itemID)
	var quantity int
	if item != nil {
		quantity = item.Quantity
	}
	s.mu.Unlock()
	if item == nil {
		return nil
	}
	if quantity <= 1 {
		return s.RemoveItem(ctx, itemID)
	}
	return s.UpdateItemQuantity(ctx, itemID, quantity-1)
}

// ClearCart removes every line, keeping the server's empty cart.
func (s *Store) ClearCart(ctx context.Context) error {
	return s.mutate(ctx, "Failed to clear cart", func(ctx context.Context) (*domain.Cart, error) {
		return s.api.Clear(ctx)
	})
}

func (s *Store) ApplyCoupon(ctx context.Context, code string) error {
	return s.mutate(ctx, "Failed to apply coupon", func(ctx context.Context) (*domain.Cart, error) {
		return s.api.ApplyCoupon(ctx, code)
	})
}

func (s *Store) RemoveCoupon(ctx context.Context, code string) error {
	return s.mutate(ctx, "Failed to remove coupon", func(ctx context.Context) (*domain.Cart, error) {
		return s.api.RemoveCoupon(ctx, code)
	})
}

func (s *Store) SetShippingAddress(ctx context.Context, addr domain.Address) error {
	return s.mutate(ctx, "Failed to set shipping address", func(ctx context.Context) (*domain.Cart, error) {
		return s.api.SetShippingAddress(ctx, addr)
	})
}

func (s *Store) SetBillingAddress(ctx context.Context, addr domain.Address) error {
	return s.mutate(ctx, "Failed to set billing address", func(ctx context.Context) (*domain.Cart, error) {
		return s.api.SetBillingAddress(ctx, addr)
	})
}

func (s *Store) SetShippingMethod(ctx context.Context, methodID string) error {
	return s.mutate(ctx, "Failed to set shipping method", func(ctx context.Context) (*domain.Cart, error) {
		return s.api.SetShippingMethod(ctx, methodID)
	})
}

// Checkout converts the cart into an order. On success the cart becomes nil
// because the server has consumed it; on failure it is left untouched so the
// user can retry without re-adding items.
func (s *Store) Checkout(ctx context.Context, req domain.CheckoutRequest) (*domain.Order, error) {
	s.start(flagCheckingOut)
	order, err := s.api.Checkout(ctx, req)
	if err != nil {
		s.fail(flagCheckingOut, err, "Checkout failed")
		return nil, err
	}
	s.mu.Lock()
	s.checkingOut = false
	s.cart = nil
	s.mu.Unlock()
	s.notify()
	s.persist(ctx)
	return order, nil
}

// ValidateCart re-checks every line against the catalog. If a validation is
// already in flight it returns nil without touching the network. On success
// only Items is merged into the existing cart; totals keep their previously
// known values so a passive validation never clobbers a fresh fetch.
func (s *Store) ValidateCart(ctx context.Context) (*cartapi.ValidationResult, error) {
	s.mu.Lock()
	if s.validating {
		s.mu.Unlock()
		return nil, nil
	}
	s.validating = true
	s.errMsg = ""
	s.mu.Unlock()
	s.notify()

	result, err := s.api.ValidateItems(ctx)
	if err != nil {
		s.fail(flagValidating, err, "Cart validation failed")
		return nil, err
	}

	at := result.ValidatedAt
	if at == nil {
		now := time.Now()
		at = &now
	}

	s.mu.Lock()
	s.validating = false
	if s.cart != nil {
		merged := *s.cart
		merged.Items = result.Items
		s.cart = &merged
	}
	s.lastValidatedAt = at
	s.mu.Unlock()
	s.notify()
	s.persist(ctx)
	return result, nil
}

func (s *Store) RemoveUnavailableItems(ctx context.Context) error {
	return s.mutate(ctx, "Failed to remove unavailable items", func(ctx context.Context) (*domain.Cart, error) {
		return s.api.RemoveUnavailableItems(ctx)
	})
}

func (s *Store) AcceptPriceChanges(ctx context.Context) error {
	return s.mutate(ctx, "Failed to accept price changes", func(ctx context.Context) (*domain.Cart, error) {
		return s.api.AcceptPriceChanges(ctx)
	})
}

// Reset drops all local state, e.g. on logout. The persisted blob is removed
// as well.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	s.cart = nil
	s.errMsg = ""
	s.lastValidatedAt = nil
	s.loading = false
	s.updating = false
	s.checkingOut = false
	s.validating = false
	s.mu.Unlock()
	s.notify()
	if s.storage != nil {
		if err := s.storage.RemoveItem(ctx, storageKey); err != nil {
			s.logger.Warn("Failed to remove persisted cart state", zap.Error(err))
		}
	}
}
