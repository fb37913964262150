package contracts

import (
	"context"
	"time"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
)

// CartStorage is the durable read/write contract for carts. Pages depend on
// this interface, never on a shared ambient singleton.
//
// Every write replaces the session's full line mapping; there are no delta
// writes. That is a deliberate simplicity-over-efficiency tradeoff and does
// not scale beyond storefront-sized carts.
type CartStorage interface {
	// Load reads the persisted cart for a session. A missing or corrupt row
	// yields an empty cart, not an error. Errors wrap
	// domain.ErrStorageUnavailable when the backend cannot be reached.
	Load(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists the cart's full line mapping, replacing whatever was
	// stored before. Called synchronously on every mutation.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the session's cart row entirely.
	Delete(ctx context.Context, sessionID string) error
}

// CartSessionDTO is a read-model row describing one stored cart.
type CartSessionDTO struct {
	SessionID string    `json:"sessionId"`
	LineCount int       `json:"lineCount"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionFilter narrows the session listing.
type SessionFilter struct {
	UpdatedSince time.Time
	Limit        int64
}

// SessionReadModel lists stored cart sessions for the ops surface.
type SessionReadModel interface {
	ListSessions(ctx context.Context, filter *SessionFilter) ([]*CartSessionDTO, error)
}
