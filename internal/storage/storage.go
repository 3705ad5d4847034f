// Package storage provides the durable key/value store the session and
// cart state persist to. It is the gateway's stand-in for the browser
// localStorage the storefront historically used: flat string keys, flat
// string values, last writer wins.
package storage

import "context"

// Store is a durable key/value store.
//
// Get reports absence via the bool, not an error; a missing key is an
// expected state for every credential key.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}
