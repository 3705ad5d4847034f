package worker

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/events"
	"github.com/spec-kit/storefront-gateway/internal/storage"
)

// CartPersister mirrors cart snapshots into durable storage so a
// restarted gateway comes back with the cart intact.
type CartPersister struct {
	storage storage.Store
	key     string
	logger  *zap.Logger
}

// NewCartPersister builds a persister writing snapshots under key.
func NewCartPersister(store storage.Store, key string, logger *zap.Logger) *CartPersister {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartPersister{storage: store, key: key, logger: logger}
}

// StartCartPersister subscribes the persister to cart change events.
func StartCartPersister(dispatcher events.Dispatcher, persister *CartPersister) {
	if persister == nil {
		return
	}
	dispatcher.Subscribe(events.EventCartChanged, persister.HandleEvent)
}

// HandleEvent writes the snapshot carried by a cart change event.
func (p *CartPersister) HandleEvent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CartChangedPayload)
	if !ok {
		return nil
	}

	encoded, err := json.Marshal(payload.Items)
	if err != nil {
		p.logger.Warn("encode cart snapshot", zap.Error(err))
		return err
	}
	if err := p.storage.Set(ctx, p.key, string(encoded)); err != nil {
		p.logger.Warn("persist cart snapshot", zap.Error(err))
		return err
	}
	return nil
}

// Restore reads the persisted snapshot back. A missing or garbled
// snapshot yields an empty cart, never an error to the caller.
func (p *CartPersister) Restore(ctx context.Context) []domain.CartItem {
	raw, ok, err := p.storage.Get(ctx, p.key)
	if err != nil {
		p.logger.Warn("read cart snapshot", zap.Error(err))
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		p.logger.Warn("decode cart snapshot", zap.Error(err))
		return nil
	}
	return items
}
