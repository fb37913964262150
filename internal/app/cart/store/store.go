// Package store exposes the cart as an explicit store object with
// subscribe/notify semantics. UI-facing layers react to mutations through
// subscriptions instead of re-reading storage ad hoc, and storage failures
// degrade to a session-only in-memory cart instead of halting.
package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
)

// Event describes one successful cart mutation, delivered to subscribers
// synchronously after the new state is persisted.
type Event struct {
	SessionID string
	LineCount int
	Total     int64
	Degraded  bool
}

// Subscriber receives cart mutation events.
type Subscriber func(Event)

// CartStore is the single injected cart service. Each mutation is one atomic
// read-modify-write cycle against the primary storage; when the primary is
// unavailable the session is switched to the in-memory fallback for the rest
// of its life and a non-fatal degraded notice travels with every result.
type CartStore struct {
	mu       sync.Mutex
	primary  contracts.CartStorage
	fallback contracts.CartStorage
	degraded map[string]bool
	subs     []Subscriber
	logger   *zap.Logger
}

// NewCartStore creates a CartStore over a primary storage with an in-memory
// fallback.
func NewCartStore(primary, fallback contracts.CartStorage, logger *zap.Logger) *CartStore {
	return &CartStore{
		primary:  primary,
		fallback: fallback,
		degraded: make(map[string]bool),
		logger:   logger,
	}
}

// Subscribe registers a subscriber for mutation events. Not safe to call
// concurrently with mutations; wire subscribers during startup.
func (s *CartStore) Subscribe(sub Subscriber) {
	s.subs = append(s.subs, sub)
}

// Load reads the session's cart. The boolean reports whether the session is
// running on the in-memory fallback.
func (s *CartStore) Load(ctx context.Context, sessionID string) (*domain.Cart, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, sessionID)
}

// Mutate runs fn against the session's current cart and, when fn reports a
// change, persists the full new state before returning. The store lock
// spans the whole cycle so no other mutation can interleave between deciding
// the new state and writing it.
func (s *CartStore) Mutate(ctx context.Context, sessionID string, fn func(*domain.Cart) (bool, error)) (*domain.Cart, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, degraded, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, degraded, err
	}

	changed, err := fn(cart)
	if err != nil {
		return nil, degraded, err
	}
	if !changed {
		return cart, degraded, nil
	}

	degraded, err = s.save(ctx, cart, degraded)
	if err != nil {
		return nil, degraded, err
	}

	s.notify(Event{
		SessionID: sessionID,
		LineCount: cart.Len(),
		Total:     cart.Total(),
		Degraded:  degraded,
	})
	return cart, degraded, nil
}

// Clear deletes the session's cart from whichever storage currently owns it.
func (s *CartStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	storage := s.primary
	if s.degraded[sessionID] {
		storage = s.fallback
	}

	if err := storage.Delete(ctx, sessionID); err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			return err
		}
		s.degrade(sessionID, err)
		if err := s.fallback.Delete(ctx, sessionID); err != nil {
			return err
		}
	}

	s.notify(Event{SessionID: sessionID, Degraded: s.degraded[sessionID]})
	return nil
}

// load must be called with the store lock held.
func (s *CartStore) load(ctx context.Context, sessionID string) (*domain.Cart, bool, error) {
	if s.degraded[sessionID] {
		cart, err := s.fallback.Load(ctx, sessionID)
		return cart, true, err
	}

	cart, err := s.primary.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			return nil, false, err
		}
		s.degrade(sessionID, err)
		cart, err := s.fallback.Load(ctx, sessionID)
		return cart, true, err
	}
	return cart, false, nil
}

// save must be called with the store lock held. It returns the session's
// degraded flag after the write, which may have just flipped.
func (s *CartStore) save(ctx context.Context, cart *domain.Cart, degraded bool) (bool, error) {
	if degraded {
		return true, s.fallback.Save(ctx, cart)
	}

	if err := s.primary.Save(ctx, cart); err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			return false, err
		}
		s.degrade(cart.SessionID(), err)
		return true, s.fallback.Save(ctx, cart)
	}
	return false, nil
}

func (s *CartStore) degrade(sessionID string, cause error) {
	if s.degraded[sessionID] {
		return
	}
	s.degraded[sessionID] = true
	s.logger.Warn("cart storage unavailable, session degraded to in-memory cart",
		zap.String("session_id", sessionID),
		zap.Error(cause))
}

func (s *CartStore) notify(ev Event) {
	for _, sub := range s.subs {
		sub(ev)
	}
}
