package repo

import (
	"context"
	"sync"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
)

// MemoryCartRepo implements CartStorage in process memory. It backs the
// session-only degraded mode when durable storage is unreachable, and unit
// tests. It never fails.
type MemoryCartRepo struct {
	mu    sync.RWMutex
	carts map[string]map[string]domain.Line
}

// NewMemoryCartRepo creates an empty in-memory cart storage.
func NewMemoryCartRepo() *MemoryCartRepo {
	return &MemoryCartRepo{
		carts: make(map[string]map[string]domain.Line),
	}
}

var _ contracts.CartStorage = (*MemoryCartRepo)(nil)

// Load returns the stored cart, or an empty cart for unknown sessions.
func (r *MemoryCartRepo) Load(_ context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, domain.ErrEmptySessionID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	lines, ok := r.carts[sessionID]
	if !ok {
		return domain.NewCart(sessionID), nil
	}
	return domain.ReconstructCart(sessionID, lines), nil
}

// Save replaces the session's stored line mapping.
func (r *MemoryCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	if cart.SessionID() == "" {
		return domain.ErrEmptySessionID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[cart.SessionID()] = cart.LineMap()
	return nil
}

// Delete removes the session's cart.
func (r *MemoryCartRepo) Delete(_ context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrEmptySessionID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, sessionID)
	return nil
}
