// Package cart holds the shopping cart state machine. Totals are
// derived on every read, never stored, so they cannot diverge from the
// lines they summarize.
package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/events"
)

// Store is the process-wide cart container. Items keep insertion order
// for display; at most one line exists per item id.
type Store struct {
	mu          sync.RWMutex
	items       []domain.CartItem
	sidebarOpen bool

	events events.Dispatcher
	logger *zap.Logger
}

// NewStore builds an empty cart.
func NewStore(dispatcher events.Dispatcher, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{events: dispatcher, logger: logger}
}

// Add merges the incoming line into the cart. An existing id only gains
// quantity; name, price, description and image stay as first seen. The
// sidebar opens on every add as a deliberate UX signal.
func (s *Store) Add(ctx context.Context, item domain.CartItem) {
	s.mu.Lock()
	if existing := s.find(item.ID); existing != nil {
		existing.Quantity += item.Quantity
	} else {
		s.items = append(s.items, item)
	}
	s.sidebarOpen = true
	s.mu.Unlock()

	s.publishChanged(ctx)
}

// Remove drops the line with the given id; unknown ids are a no-op.
func (s *Store) Remove(ctx context.Context, id int64) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.publishChanged(ctx)
	}
}

// Clear empties the cart. The sidebar flag is left alone.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.publishChanged(ctx)
}

// SetQuantity updates a line's quantity. Unknown ids and non-positive
// quantities are silently ignored; transient bad input must not disrupt
// the UI.
func (s *Store) SetQuantity(ctx context.Context, id int64, qty int) {
	if qty <= 0 {
		s.logger.Debug("ignored invalid quantity", zap.Int64("id", id), zap.Int("qty", qty))
		return
	}

	s.mu.Lock()
	item := s.find(id)
	if item == nil {
		s.mu.Unlock()
		return
	}
	item.Quantity = qty
	s.mu.Unlock()

	s.publishChanged(ctx)
}

// CloseSidebar clears the sidebar flag.
func (s *Store) CloseSidebar() {
	s.mu.Lock()
	s.sidebarOpen = false
	s.mu.Unlock()
}

// Load replaces the cart contents with a restored snapshot. No change
// event fires; the snapshot came from storage in the first place.
func (s *Store) Load(items []domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]domain.CartItem(nil), items...)
}

// Items returns the lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CartItem(nil), s.items...)
}

// ItemCount is the sum of all line quantities.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Total is the sum of all line subtotals.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// SidebarOpen reports the transient sidebar flag.
func (s *Store) SidebarOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sidebarOpen
}

// find returns a pointer into items; callers hold the lock.
func (s *Store) find(id int64) *domain.CartItem {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i]
		}
	}
	return nil
}

func (s *Store) publishChanged(ctx context.Context) {
	if s.events == nil {
		return
	}
	payload := events.CartChangedPayload{
		Items:     s.Items(),
		ItemCount: s.ItemCount(),
		Total:     s.Total(),
	}
	_ = s.events.Publish(ctx, events.New(events.EventCartChanged, payload))
}
