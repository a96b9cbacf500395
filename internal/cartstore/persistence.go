package cartstore

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Hydrate restores {cart, lastValidatedAt} from the storage adapter. Busy
// flags and the error message never survive a restart; only the persisted
// shape is read back.
func (s *Store) Hydrate(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}

	blob, ok, err := s.storage.GetItem(ctx, storageKey)
	if err != nil {
		s.logger.Warn("Failed to read persisted cart state", zap.Error(err))
		return err
	}
	if !ok {
		return nil
	}

	var state persistedState
	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		s.logger.Warn("Discarding corrupt persisted cart state", zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.cart = state.Cart
	s.lastValidatedAt = state.LastValidatedAt
	s.mu.Unlock()
	s.notify()
	return nil
}

// persist writes {cart, lastValidatedAt} after a successful state change.
// Persistence failures are logged, not surfaced; losing the blob only costs
// a refetch on next start.
func (s *Store) persist(ctx context.Context) {
	if s.storage == nil {
		return
	}

	s.mu.Lock()
	state := persistedState{Cart: s.cart, LastValidatedAt: s.lastValidatedAt}
	s.mu.Unlock()

	data, err := json.Marshal(state)
	if err != nil {
		s.logger.Warn("Failed to marshal cart state", zap.Error(err))
		return
	}
	if err := s.storage.SetItem(ctx, storageKey, string(data)); err != nil {
		s.logger.Warn("Failed to persist cart state", zap.Error(err))
	}
}
