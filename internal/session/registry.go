// Package session keeps per-session browsing state: the catalog pager and
// the checkout form. Neither survives the session; only the cart is durable.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/catalog"
	"github.com/light-bringer/storefront-service/internal/app/checkout"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
)

// Session bundles one visitor's in-memory state.
type Session struct {
	ID       string
	Pager    *catalog.Pager
	Checkout *checkout.Form

	lastSeen time.Time
}

// Registry owns all live sessions and evicts the ones that go idle.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	clock    clock.Clock
	newPager func() *catalog.Pager
	logger   *zap.Logger
}

// NewRegistry creates a session registry. newPager builds a fresh pager for
// each new session.
func NewRegistry(ttl time.Duration, clk clock.Clock, newPager func() *catalog.Pager, logger *zap.Logger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		clock:    clk,
		newPager: newPager,
		logger:   logger,
	}
}

// Get returns the session for an id, creating it on first sight, and marks
// it as recently used.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[id]
	if !ok {
		sess = &Session{
			ID:       id,
			Pager:    r.newPager(),
			Checkout: checkout.NewForm(),
		}
		r.sessions[id] = sess
	}
	sess.lastSeen = r.clock.Now()
	return sess
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// EvictIdle drops sessions that have not been touched within the ttl and
// returns how many were removed. Their carts stay in durable storage.
func (r *Registry) EvictIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.clock.Now().Add(-r.ttl)
	evicted := 0
	for id, sess := range r.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps idle sessions until the context is cancelled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.EvictIdle(); n > 0 {
				r.logger.Info("evicted idle sessions", zap.Int("count", n))
			}
		}
	}
}
