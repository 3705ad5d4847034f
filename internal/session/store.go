// Package session owns the staff-track authentication state and the
// raw client-track credential reads. Initialize is the single
// normalization point: no stale or garbled credential ever reaches the
// rest of the gateway.
package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/domain"
	"github.com/spec-kit/storefront-gateway/internal/events"
	"github.com/spec-kit/storefront-gateway/internal/observability"
	"github.com/spec-kit/storefront-gateway/internal/storage"
	"github.com/spec-kit/storefront-gateway/internal/token"
)

// Keys names the durable storage keys used by the staff track.
type Keys struct {
	Token       string
	User        string
	Role        string
	ClientToken string
}

// DefaultKeys returns the storefront's historical key names.
func DefaultKeys() Keys {
	return Keys{Token: "token", User: "user", Role: "rol", ClientToken: "cliente_token"}
}

// Store holds the current staff principal for the process lifetime.
// Mutations go through Login, Logout and SetReturnURL only.
type Store struct {
	mu      sync.RWMutex
	current domain.Session

	storage storage.Store
	keys    Keys
	decoder *token.Decoder
	events  events.Dispatcher
	logger  *zap.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

// Dependencies bundles collaborator requirements for the session store.
type Dependencies struct {
	Storage storage.Store
	Keys    Keys
	Decoder *token.Decoder
	Events  events.Dispatcher
	Logger  *zap.Logger
	Metrics *observability.Metrics
}

// NewStore builds the session store.
func NewStore(deps Dependencies) *Store {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	keys := deps.Keys
	if keys == (Keys{}) {
		keys = DefaultKeys()
	}
	return &Store{
		storage: deps.Storage,
		keys:    keys,
		decoder: deps.Decoder,
		events:  deps.Events,
		logger:  logger,
		metrics: deps.Metrics,
		now:     time.Now,
	}
}

// Initialize derives the session from durable storage. A blob that does
// not resolve to a live token is purged and the session comes up empty;
// decode and expiry failures are recovered here, never surfaced.
func (s *Store) Initialize(ctx context.Context) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = domain.Session{}

	raw, ok, err := s.storage.Get(ctx, s.keys.Token)
	if err != nil {
		s.logger.Warn("read staff credential", zap.Error(err))
		return s.current
	}
	if !ok || raw == "" {
		return s.current
	}

	tok := token.Extract(raw)
	if tok == "" {
		s.purgeToken(ctx, "unrecoverable credential blob")
		return s.current
	}

	claims := s.decoder.Decode(tok)
	if !token.Live(claims, s.now()) {
		s.purgeToken(ctx, "dead token")
		return s.current
	}

	s.current = domain.Session{
		User:  s.loadUser(ctx),
		Token: tok,
		Role:  s.loadRole(ctx),
	}
	return s.current
}

// Login sets the principal atomically, persists all three staff keys and
// returns the navigation target: the recorded return URL or the landing
// page. The caller acts on the returned path.
func (s *Store) Login(ctx context.Context, principal any, tok, role string) (string, error) {
	serialized, err := serializePrincipal(principal)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.current.User = principal
	s.current.Token = tok
	s.current.Role = role
	target := s.current.ReturnURL
	s.mu.Unlock()

	if err := s.storage.Set(ctx, s.keys.User, serialized); err != nil {
		return "", err
	}
	if err := s.storage.Set(ctx, s.keys.Token, tok); err != nil {
		return "", err
	}
	if err := s.storage.Set(ctx, s.keys.Role, role); err != nil {
		return "", err
	}

	s.publishChanged(ctx)

	if target == "" {
		target = "/"
	}
	return target, nil
}

// Logout purges the staff keys, resets the in-memory session and
// returns the login route as the navigation target.
func (s *Store) Logout(ctx context.Context) (string, error) {
	if err := s.storage.Delete(ctx, s.keys.User, s.keys.Token, s.keys.Role); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.current = domain.Session{}
	s.mu.Unlock()

	s.publishChanged(ctx)
	return "/login", nil
}

// Current returns a snapshot of the session.
func (s *Store) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the staff bearer token, or empty when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token
}

// Role returns the staff role marker.
func (s *Store) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Role
}

// User returns the principal payload.
func (s *Store) User() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.User
}

// ReturnURL returns the recorded intended destination.
func (s *Store) ReturnURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.ReturnURL
}

// SetReturnURL records where a denied navigation wanted to go.
func (s *Store) SetReturnURL(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.ReturnURL = path
}

func (s *Store) purgeToken(ctx context.Context, reason string) {
	if err := s.storage.Delete(ctx, s.keys.Token); err != nil {
		s.logger.Warn("purge staff credential", zap.Error(err))
		return
	}
	s.metrics.RecordTokenPurge()
	s.logger.Info("purged staff credential", zap.String("reason", reason))
}

func (s *Store) loadUser(ctx context.Context) any {
	raw, ok, err := s.storage.Get(ctx, s.keys.User)
	if err != nil || !ok {
		return ""
	}
	return parseStoredUser(raw)
}

func (s *Store) loadRole(ctx context.Context) string {
	raw, _, err := s.storage.Get(ctx, s.keys.Role)
	if err != nil {
		return ""
	}
	return raw
}

func (s *Store) publishChanged(ctx context.Context) {
	if s.events == nil {
		return
	}
	s.mu.RLock()
	payload := events.SessionChangedPayload{
		Authenticated: s.current.Authenticated(),
		Role:          s.current.Role,
	}
	s.mu.RUnlock()
	_ = s.events.Publish(ctx, events.New(events.EventSessionChanged, payload))
}

// parseStoredUser decodes the persisted principal: values that look like
// JSON objects are decoded, anything else passes through verbatim.
func parseStoredUser(raw string) any {
	if !strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return raw
	}
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return raw
	}
	return decoded
}

func serializePrincipal(principal any) (string, error) {
	if s, ok := principal.(string); ok {
		return s, nil
	}
	encoded, err := json.Marshal(principal)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
