package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/storefront-gateway/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionChanged EventType = "session_changed"
	EventCartChanged    EventType = "cart_changed"
)

// Event represents a state change emitted by the stores. Subscribers
// are the Go counterpart of the UI bindings the storefront's reactive
// stores fed.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New builds an event with a fresh id and timestamp.
func New(eventType EventType, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// SessionChangedPayload describes the session after a login or logout.
type SessionChangedPayload struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role"`
}

// CartChangedPayload carries a cart snapshot after any mutation.
type CartChangedPayload struct {
	Items     []domain.CartItem `json:"items"`
	ItemCount int               `json:"itemCount"`
	Total     float64           `json:"total"`
}
