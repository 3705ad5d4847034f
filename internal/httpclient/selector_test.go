package httpclient

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/session"
	"github.com/spec-kit/storefront-gateway/internal/storage"
	"github.com/spec-kit/storefront-gateway/internal/token"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newSelector(t *testing.T) (*Selector, *session.Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	sess := session.NewStore(session.Dependencies{
		Storage: mem,
		Decoder: token.NewDecoder(zap.NewNop()),
	})
	track := session.NewClientTrack(mem, session.DefaultKeys(), zap.NewNop())
	return NewSelector(sess, track, nil), sess, mem
}

func TestSelectorApply(t *testing.T) {
	ctx := context.Background()

	t.Run("staff token wins when both tracks present", func(t *testing.T) {
		selector, sess, mem := newSelector(t)
		_, err := sess.Login(ctx, "op", "staff-tok", "empleado")
		require.NoError(t, err)
		require.NoError(t, mem.Set(ctx, "cliente_token", "client-tok"))

		header := http.Header{}
		selector.Apply(ctx, header)

		assert.Equal(t, "Bearer staff-tok", header.Get("Authorization"))
	})

	t.Run("client token used when staff absent", func(t *testing.T) {
		selector, _, mem := newSelector(t)
		require.NoError(t, mem.Set(ctx, "cliente_token", "client-tok"))

		header := http.Header{}
		selector.Apply(ctx, header)

		assert.Equal(t, "Bearer client-tok", header.Get("Authorization"))
	})

	t.Run("stale authorization removed when no credential", func(t *testing.T) {
		selector, _, _ := newSelector(t)

		header := http.Header{}
		header.Set("Authorization", "Bearer stale")
		selector.Apply(ctx, header)

		_, present := header["Authorization"]
		assert.False(t, present, "no bearer must be sent at all")
	})

	t.Run("content type forced regardless of outcome", func(t *testing.T) {
		selector, _, _ := newSelector(t)

		header := http.Header{}
		header.Set("Content-Type", "text/plain")
		selector.Apply(ctx, header)

		assert.Equal(t, "application/json", header.Get("Content-Type"))
	})
}

func TestTransport(t *testing.T) {
	ctx := context.Background()
	selector, sess, _ := newSelector(t)
	_, err := sess.Login(ctx, "op", "staff-tok", "empleado")
	require.NoError(t, err)

	var sent *http.Request
	transport := NewTransport(selector, roundTripFunc(func(req *http.Request) (*http.Response, error) {
		sent = req
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
	}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://backend/ventas", nil)
	require.NoError(t, err)

	_, err = transport.RoundTrip(req)
	require.NoError(t, err)

	require.NotNil(t, sent)
	assert.Equal(t, "Bearer staff-tok", sent.Header.Get("Authorization"))
	assert.Equal(t, "application/json", sent.Header.Get("Content-Type"))
	assert.Empty(t, req.Header.Get("Authorization"), "original request must stay untouched")
}
