package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/api/dto"
	"github.com/spec-kit/storefront-gateway/internal/session"
	"github.com/spec-kit/storefront-gateway/internal/storage"
	"github.com/spec-kit/storefront-gateway/internal/token"
)

func newSessionStore(t *testing.T) (*session.Store, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	sess := session.NewStore(session.Dependencies{
		Storage: mem,
		Decoder: token.NewDecoder(zap.NewNop()),
	})
	return sess, mem
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ana", req.Usuario)
		assert.Equal(t, "secret", req.Clave)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"usuario":{"id":1,"nombre":"Ana"},"access_token":"tok-abc"}`))
	}))
	defer backend.Close()

	sess, mem := newSessionStore(t)
	svc := NewLoginService(backend.URL, backend.Client(), sess, zap.NewNop())

	res, err := svc.Login(ctx, "ana", "secret")
	require.NoError(t, err)

	assert.Equal(t, "/", res.Redirect)
	assert.Equal(t, "empleado", res.Rol)
	assert.Equal(t, "tok-abc", sess.Token())

	for key, want := range map[string]string{"token": "tok-abc", "rol": "empleado"} {
		val, ok, err := mem.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok, key)
		assert.Equal(t, want, val, key)
	}

	user, ok, err := mem.Get(ctx, "user")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":1,"nombre":"Ana"}`, user)
}

func TestLoginRejectedLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer backend.Close()

	sess, mem := newSessionStore(t)
	svc := NewLoginService(backend.URL, backend.Client(), sess, zap.NewNop())

	_, err := svc.Login(ctx, "ana", "wrong")
	require.Error(t, err)

	assert.Empty(t, sess.Token())
	_, ok, _ := mem.Get(ctx, "token")
	assert.False(t, ok)
}

func TestLoginMissingTokenInResponse(t *testing.T) {
	ctx := context.Background()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"usuario":"ana"}`))
	}))
	defer backend.Close()

	sess, _ := newSessionStore(t)
	svc := NewLoginService(backend.URL, backend.Client(), sess, zap.NewNop())

	_, err := svc.Login(ctx, "ana", "secret")
	require.Error(t, err)
	assert.Empty(t, sess.Token())
}

func TestLoginBackendUnreachable(t *testing.T) {
	sess, _ := newSessionStore(t)
	svc := NewLoginService("http://127.0.0.1:1", http.DefaultClient, sess, zap.NewNop())

	_, err := svc.Login(context.Background(), "ana", "secret")
	require.Error(t, err)
	assert.Empty(t, sess.Token())
}
