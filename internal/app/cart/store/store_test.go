package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/repo"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
)

// unavailableStorage fails every operation with ErrStorageUnavailable.
type unavailableStorage struct{}

func (unavailableStorage) Load(context.Context, string) (*domain.Cart, error) {
	return nil, fmt.Errorf("%w: backend down", domain.ErrStorageUnavailable)
}

func (unavailableStorage) Save(context.Context, *domain.Cart) error {
	return fmt.Errorf("%w: backend down", domain.ErrStorageUnavailable)
}

func (unavailableStorage) Delete(context.Context, string) error {
	return fmt.Errorf("%w: backend down", domain.ErrStorageUnavailable)
}

var _ contracts.CartStorage = unavailableStorage{}

func addItem(snap domain.Snapshot) func(*domain.Cart) (bool, error) {
	return func(c *domain.Cart) (bool, error) {
		if err := c.AddItem(snap); err != nil {
			return false, err
		}
		return true, nil
	}
}

func TestCartStore_Mutate(t *testing.T) {
	ctx := context.Background()

	t.Run("mutation persists before returning", func(t *testing.T) {
		primary := repo.NewMemoryCartRepo()
		s := NewCartStore(primary, repo.NewMemoryCartRepo(), zap.NewNop())

		cart, degraded, err := s.Mutate(ctx, "s1", addItem(domain.Snapshot{ProductID: "p1", Price: pricing.FromNumber(10)}))
		require.NoError(t, err)
		assert.False(t, degraded)
		assert.Equal(t, 1, cart.Len())

		// A fresh load sees the persisted state, not a cached one.
		stored, err := primary.Load(ctx, "s1")
		require.NoError(t, err)
		line, ok := stored.Line("p1")
		require.True(t, ok)
		assert.Equal(t, int64(1), line.Quantity)
	})

	t.Run("no-op mutation does not notify", func(t *testing.T) {
		s := NewCartStore(repo.NewMemoryCartRepo(), repo.NewMemoryCartRepo(), zap.NewNop())

		var events []Event
		s.Subscribe(func(ev Event) { events = append(events, ev) })

		_, _, err := s.Mutate(ctx, "s1", func(c *domain.Cart) (bool, error) {
			return c.ChangeQuantity("ghost", -1), nil
		})
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("subscribers see each successful mutation", func(t *testing.T) {
		s := NewCartStore(repo.NewMemoryCartRepo(), repo.NewMemoryCartRepo(), zap.NewNop())

		var events []Event
		s.Subscribe(func(ev Event) { events = append(events, ev) })

		_, _, err := s.Mutate(ctx, "s1", addItem(domain.Snapshot{ProductID: "p1", Price: pricing.FromNumber(100)}))
		require.NoError(t, err)
		_, _, err = s.Mutate(ctx, "s1", addItem(domain.Snapshot{ProductID: "p1", Price: pricing.FromNumber(100)}))
		require.NoError(t, err)

		require.Len(t, events, 2)
		assert.Equal(t, "s1", events[1].SessionID)
		assert.Equal(t, 1, events[1].LineCount)
		assert.Equal(t, int64(200), events[1].Total)
	})
}

func TestCartStore_Degradation(t *testing.T) {
	ctx := context.Background()

	t.Run("unavailable primary falls back to memory", func(t *testing.T) {
		s := NewCartStore(unavailableStorage{}, repo.NewMemoryCartRepo(), zap.NewNop())

		cart, degraded, err := s.Mutate(ctx, "s1", addItem(domain.Snapshot{ProductID: "p1", Price: pricing.FromNumber(10)}))
		require.NoError(t, err)
		assert.True(t, degraded)
		assert.Equal(t, 1, cart.Len())
	})

	t.Run("degraded session keeps its in-memory cart", func(t *testing.T) {
		s := NewCartStore(unavailableStorage{}, repo.NewMemoryCartRepo(), zap.NewNop())

		_, _, err := s.Mutate(ctx, "s1", addItem(domain.Snapshot{ProductID: "p1", Price: pricing.FromNumber(10)}))
		require.NoError(t, err)

		cart, degraded, err := s.Load(ctx, "s1")
		require.NoError(t, err)
		assert.True(t, degraded)

		line, ok := cart.Line("p1")
		require.True(t, ok)
		assert.Equal(t, int64(1), line.Quantity)
	})

	t.Run("healthy sessions are unaffected", func(t *testing.T) {
		s := NewCartStore(repo.NewMemoryCartRepo(), repo.NewMemoryCartRepo(), zap.NewNop())

		_, degraded, err := s.Load(ctx, "s1")
		require.NoError(t, err)
		assert.False(t, degraded)
	})
}

func TestCartStore_Clear(t *testing.T) {
	ctx := context.Background()

	t.Run("clear empties the stored cart", func(t *testing.T) {
		s := NewCartStore(repo.NewMemoryCartRepo(), repo.NewMemoryCartRepo(), zap.NewNop())

		_, _, err := s.Mutate(ctx, "s1", addItem(domain.Snapshot{ProductID: "p1", Price: pricing.FromNumber(10)}))
		require.NoError(t, err)
		require.NoError(t, s.Clear(ctx, "s1"))

		cart, _, err := s.Load(ctx, "s1")
		require.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})
}
