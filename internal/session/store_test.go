package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/events"
	"github.com/spec-kit/storefront-gateway/internal/storage"
	"github.com/spec-kit/storefront-gateway/internal/token"
)

func buildToken(t *testing.T, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{"exp": exp.Unix(), "sub": "7"})
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".signature"
}

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	store := NewStore(Dependencies{
		Storage: mem,
		Decoder: token.NewDecoder(zap.NewNop()),
	})
	return store, mem
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)

	t.Run("no stored credential yields empty session", func(t *testing.T) {
		store, _ := newTestStore(t)
		session := store.Initialize(ctx)
		assert.False(t, session.Authenticated())
	})

	t.Run("bare live token yields live session", func(t *testing.T) {
		store, mem := newTestStore(t)
		tok := buildToken(t, future)
		require.NoError(t, mem.Set(ctx, "token", tok))
		require.NoError(t, mem.Set(ctx, "rol", "empleado"))
		require.NoError(t, mem.Set(ctx, "user", "pepe"))

		session := store.Initialize(ctx)
		assert.Equal(t, tok, session.Token)
		assert.Equal(t, "empleado", session.Role)
		assert.Equal(t, "pepe", session.User)
	})

	t.Run("json wrapped token yields same session", func(t *testing.T) {
		store, mem := newTestStore(t)
		tok := buildToken(t, future)
		blob, err := json.Marshal(map[string]string{"token": tok})
		require.NoError(t, err)
		require.NoError(t, mem.Set(ctx, "token", string(blob)))

		session := store.Initialize(ctx)
		assert.Equal(t, tok, session.Token)
	})

	t.Run("json object user is decoded", func(t *testing.T) {
		store, mem := newTestStore(t)
		require.NoError(t, mem.Set(ctx, "token", buildToken(t, future)))
		require.NoError(t, mem.Set(ctx, "user", `{"id":1,"nombre":"Ana"}`))

		session := store.Initialize(ctx)
		user, ok := session.User.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Ana", user["nombre"])
	})

	t.Run("expired token is purged", func(t *testing.T) {
		store, mem := newTestStore(t)
		require.NoError(t, mem.Set(ctx, "token", buildToken(t, past)))

		session := store.Initialize(ctx)
		assert.False(t, session.Authenticated())

		_, ok, err := mem.Get(ctx, "token")
		require.NoError(t, err)
		assert.False(t, ok, "dead credential should be removed from storage")
	})

	t.Run("token without exp is purged", func(t *testing.T) {
		store, mem := newTestStore(t)
		header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256"}`))
		payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"7"}`))
		require.NoError(t, mem.Set(ctx, "token", header+"."+payload+".sig"))

		session := store.Initialize(ctx)
		assert.False(t, session.Authenticated())

		_, ok, _ := mem.Get(ctx, "token")
		assert.False(t, ok)
	})

	t.Run("unrecoverable blob is purged", func(t *testing.T) {
		store, mem := newTestStore(t)
		require.NoError(t, mem.Set(ctx, "token", `{"refresh":"nope"}`))

		session := store.Initialize(ctx)
		assert.False(t, session.Authenticated())

		_, ok, _ := mem.Get(ctx, "token")
		assert.False(t, ok)
	})

	t.Run("undecodable token is purged", func(t *testing.T) {
		store, mem := newTestStore(t)
		require.NoError(t, mem.Set(ctx, "token", "not.json.val"))

		session := store.Initialize(ctx)
		assert.False(t, session.Authenticated())

		_, ok, _ := mem.Get(ctx, "token")
		assert.False(t, ok)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("persists all three keys and lands on default route", func(t *testing.T) {
		store, mem := newTestStore(t)

		target, err := store.Login(ctx, "pepe", "tok-123", "empleado")
		require.NoError(t, err)
		assert.Equal(t, "/", target)

		for key, want := range map[string]string{"user": "pepe", "token": "tok-123", "rol": "empleado"} {
			val, ok, err := mem.Get(ctx, key)
			require.NoError(t, err)
			require.True(t, ok, key)
			assert.Equal(t, want, val, key)
		}
		assert.Equal(t, "tok-123", store.Token())
		assert.Equal(t, "empleado", store.Role())
	})

	t.Run("object principal is json encoded", func(t *testing.T) {
		store, mem := newTestStore(t)

		principal := map[string]any{"id": 1, "nombre": "Ana"}
		_, err := store.Login(ctx, principal, "tok", "empleado")
		require.NoError(t, err)

		raw, ok, err := mem.Get(ctx, "user")
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `{"id":1,"nombre":"Ana"}`, raw)
	})

	t.Run("honors recorded return url", func(t *testing.T) {
		store, _ := newTestStore(t)
		store.SetReturnURL("/ventas")

		target, err := store.Login(ctx, "pepe", "tok", "empleado")
		require.NoError(t, err)
		assert.Equal(t, "/ventas", target)
	})

	t.Run("publishes session changed event", func(t *testing.T) {
		mem := storage.NewMemory()
		dispatcher := events.NewInMemoryDispatcher()
		store := NewStore(Dependencies{
			Storage: mem,
			Decoder: token.NewDecoder(zap.NewNop()),
			Events:  dispatcher,
		})

		var got []events.Event
		dispatcher.Subscribe(events.EventSessionChanged, func(_ context.Context, e events.Event) error {
			got = append(got, e)
			return nil
		})

		_, err := store.Login(ctx, "pepe", "tok", "empleado")
		require.NoError(t, err)
		require.Len(t, got, 1)
		payload, ok := got[0].Payload.(events.SessionChangedPayload)
		require.True(t, ok)
		assert.True(t, payload.Authenticated)
		assert.Equal(t, "empleado", payload.Role)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	store, mem := newTestStore(t)

	_, err := store.Login(ctx, "pepe", "tok", "empleado")
	require.NoError(t, err)

	target, err := store.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/login", target)

	for _, key := range []string{"user", "token", "rol"} {
		_, ok, err := mem.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok, key)
	}
	assert.False(t, store.Current().Authenticated())
	assert.Empty(t, store.Role())
}

func TestClientTrack(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	track := NewClientTrack(mem, DefaultKeys(), zap.NewNop())

	assert.Empty(t, track.Token(ctx))
	assert.Empty(t, track.Role(ctx))

	require.NoError(t, mem.Set(ctx, "cliente_token", "client-tok"))
	require.NoError(t, mem.Set(ctx, "rol", "cliente"))

	assert.Equal(t, "client-tok", track.Token(ctx))
	assert.Equal(t, "cliente", track.Role(ctx))
}
