package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/storage"
)

// ClientTrack reads the independent client-side credential: a bare
// token under its own key plus the shared role marker. The client token
// never goes through claims validation; only presence matters, and a
// storage error degrades to absence.
type ClientTrack struct {
	storage storage.Store
	keys    Keys
	logger  *zap.Logger
}

// NewClientTrack builds a client-track reader.
func NewClientTrack(store storage.Store, keys Keys, logger *zap.Logger) *ClientTrack {
	if logger == nil {
		logger = zap.NewNop()
	}
	if keys == (Keys{}) {
		keys = DefaultKeys()
	}
	return &ClientTrack{storage: store, keys: keys, logger: logger}
}

// Token returns the stored client bearer token, or empty when absent.
func (t *ClientTrack) Token(ctx context.Context) string {
	raw, ok, err := t.storage.Get(ctx, t.keys.ClientToken)
	if err != nil {
		t.logger.Warn("read client credential", zap.Error(err))
		return ""
	}
	if !ok {
		return ""
	}
	return raw
}

// Role returns the stored role marker, or empty when absent.
func (t *ClientTrack) Role(ctx context.Context) string {
	raw, _, err := t.storage.Get(ctx, t.keys.Role)
	if err != nil {
		t.logger.Warn("read role marker", zap.Error(err))
		return ""
	}
	return raw
}
