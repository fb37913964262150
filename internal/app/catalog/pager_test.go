package catalog

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/pricing"
)

// fakeClient serves scripted batches. A batch can be told to wait on a
// channel before returning so tests can force arrival order.
type fakeClient struct {
	mu      sync.Mutex
	batches map[int]*Batch
	errs    map[int]error
	waits   map[int]chan struct{}
	calls   []int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		batches: make(map[int]*Batch),
		errs:    make(map[int]error),
		waits:   make(map[int]chan struct{}),
	}
}

func (f *fakeClient) FetchBatch(_ context.Context, batchNumber int) (*Batch, error) {
	f.mu.Lock()
	f.calls = append(f.calls, batchNumber)
	wait := f.waits[batchNumber]
	f.mu.Unlock()

	if wait != nil {
		<-wait
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[batchNumber]; err != nil {
		return nil, err
	}
	if batch, ok := f.batches[batchNumber]; ok {
		return batch, nil
	}
	return nil, fmt.Errorf("%w: no batch %d scripted", ErrUpstreamUnavailable, batchNumber)
}

func (f *fakeClient) FetchProduct(context.Context, string) (*Product, error) {
	return nil, ErrProductNotFound
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func product(id string) Product {
	return Product{ProductID: id, Price: pricing.FromNumber(100)}
}

func ids(items []Entry) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Product.ProductID
	}
	return out
}

func TestPager_LoadInitial(t *testing.T) {
	ctx := context.Background()

	t.Run("concatenates both batches and takes batch 2 flag", func(t *testing.T) {
		client := newFakeClient()
		client.batches[1] = &Batch{Products: []Product{product("A"), product("B")}, MoreProducts: true}
		client.batches[2] = &Batch{Products: []Product{product("C")}, MoreProducts: false}

		pager := NewPager(client, zap.NewNop())
		require.NoError(t, pager.LoadInitial(ctx))

		snap := pager.Snapshot()
		assert.Equal(t, []string{"A", "B", "C"}, ids(snap.Items))
		assert.False(t, snap.HasMore)
		assert.Equal(t, 3, snap.NextBatch)
	})

	t.Run("batch order is fetch order even when batch 2 arrives first", func(t *testing.T) {
		client := newFakeClient()
		client.batches[1] = &Batch{Products: []Product{product("A")}, MoreProducts: true}
		client.batches[2] = &Batch{Products: []Product{product("B")}, MoreProducts: true}

		// Batch 1 is held until batch 2 has been requested and returned.
		hold := make(chan struct{})
		client.waits[1] = hold
		go func() {
			time.Sleep(10 * time.Millisecond)
			close(hold)
		}()

		pager := NewPager(client, zap.NewNop())
		require.NoError(t, pager.LoadInitial(ctx))

		assert.Equal(t, []string{"A", "B"}, ids(pager.Snapshot().Items))
	})

	t.Run("failed batch 1 contributes nothing, batch 2 flag wins", func(t *testing.T) {
		client := newFakeClient()
		client.errs[1] = fmt.Errorf("%w: refused", ErrUpstreamUnavailable)
		client.batches[2] = &Batch{Products: []Product{product("C")}, MoreProducts: true}

		pager := NewPager(client, zap.NewNop())
		require.NoError(t, pager.LoadInitial(ctx))

		snap := pager.Snapshot()
		assert.Equal(t, []string{"C"}, ids(snap.Items))
		assert.True(t, snap.HasMore)
		assert.Equal(t, StateReady, snap.State)
	})

	t.Run("failed batch 2 leaves batch 1 flag in charge", func(t *testing.T) {
		client := newFakeClient()
		client.batches[1] = &Batch{Products: []Product{product("A")}, MoreProducts: false}
		client.errs[2] = fmt.Errorf("%w: refused", ErrUpstreamUnavailable)

		pager := NewPager(client, zap.NewNop())
		require.NoError(t, pager.LoadInitial(ctx))

		snap := pager.Snapshot()
		assert.Equal(t, []string{"A"}, ids(snap.Items))
		assert.False(t, snap.HasMore)
		assert.Equal(t, StateExhausted, snap.State)
	})

	t.Run("both batches failing keeps the default hasMore", func(t *testing.T) {
		client := newFakeClient()
		client.errs[1] = fmt.Errorf("%w: refused", ErrUpstreamUnavailable)
		client.errs[2] = fmt.Errorf("%w: refused", ErrUpstreamUnavailable)

		pager := NewPager(client, zap.NewNop())
		require.NoError(t, pager.LoadInitial(ctx))

		snap := pager.Snapshot()
		assert.Empty(t, snap.Items)
		assert.True(t, snap.HasMore)
		assert.Equal(t, StateReady, snap.State)
	})

	t.Run("second call is rejected", func(t *testing.T) {
		client := newFakeClient()
		client.batches[1] = &Batch{MoreProducts: true}
		client.batches[2] = &Batch{MoreProducts: true}

		pager := NewPager(client, zap.NewNop())
		require.NoError(t, pager.LoadInitial(ctx))
		assert.ErrorIs(t, pager.LoadInitial(ctx), ErrAlreadyStarted)
	})
}

func TestPager_LoadMore(t *testing.T) {
	ctx := context.Background()

	newReadyPager := func(t *testing.T, client *fakeClient) *Pager {
		t.Helper()
		client.batches[1] = &Batch{Products: []Product{product("A")}, MoreProducts: true}
		client.batches[2] = &Batch{Products: []Product{product("B")}, MoreProducts: true}
		pager := NewPager(client, zap.NewNop())
		require.NoError(t, pager.LoadInitial(ctx))
		return pager
	}

	t.Run("appends the next batch and advances the counter", func(t *testing.T) {
		client := newFakeClient()
		pager := newReadyPager(t, client)
		client.batches[3] = &Batch{Products: []Product{product("C")}, MoreProducts: true}

		require.NoError(t, pager.LoadMore(ctx))

		snap := pager.Snapshot()
		assert.Equal(t, []string{"A", "B", "C"}, ids(snap.Items))
		assert.Equal(t, 4, snap.NextBatch)
		assert.Equal(t, StateReady, snap.State)
	})

	t.Run("failure keeps the batch counter for a safe retry", func(t *testing.T) {
		client := newFakeClient()
		pager := newReadyPager(t, client)
		client.errs[3] = fmt.Errorf("%w: refused", ErrUpstreamUnavailable)

		err := pager.LoadMore(ctx)
		assert.ErrorIs(t, err, ErrUpstreamUnavailable)

		snap := pager.Snapshot()
		assert.Equal(t, []string{"A", "B"}, ids(snap.Items))
		assert.True(t, snap.HasMore)
		assert.Equal(t, 3, snap.NextBatch)
		assert.Equal(t, StateReady, snap.State)

		// Retry succeeds with the same batch number.
		delete(client.errs, 3)
		client.batches[3] = &Batch{Products: []Product{product("C")}, MoreProducts: true}
		require.NoError(t, pager.LoadMore(ctx))
		assert.Equal(t, []string{"A", "B", "C"}, ids(pager.Snapshot().Items))
	})

	t.Run("exhaustion is terminal", func(t *testing.T) {
		client := newFakeClient()
		pager := newReadyPager(t, client)
		client.batches[3] = &Batch{Products: []Product{product("C")}, MoreProducts: false}

		require.NoError(t, pager.LoadMore(ctx))
		assert.Equal(t, StateExhausted, pager.Snapshot().State)

		calls := client.callCount()
		assert.ErrorIs(t, pager.LoadMore(ctx), ErrExhausted)
		assert.Equal(t, calls, client.callCount(), "exhausted pager must not fetch")
	})

	t.Run("re-entrant call is rejected without a duplicate fetch", func(t *testing.T) {
		client := newFakeClient()
		pager := newReadyPager(t, client)

		hold := make(chan struct{})
		client.waits[3] = hold
		client.batches[3] = &Batch{Products: []Product{product("C")}, MoreProducts: true}

		done := make(chan error, 1)
		go func() { done <- pager.LoadMore(ctx) }()

		// Wait for the in-flight load to claim the pager.
		require.Eventually(t, func() bool {
			return pager.Snapshot().State == StateLoadingMore
		}, time.Second, time.Millisecond)

		assert.ErrorIs(t, pager.LoadMore(ctx), ErrLoadInProgress)

		close(hold)
		require.NoError(t, <-done)
		assert.Equal(t, []string{"A", "B", "C"}, ids(pager.Snapshot().Items))
	})
}

func TestPager_PositionalKeys(t *testing.T) {
	t.Run("duplicate product ids across batches get distinct keys", func(t *testing.T) {
		client := newFakeClient()
		client.batches[1] = &Batch{Products: []Product{product("A")}, MoreProducts: true}
		client.batches[2] = &Batch{Products: []Product{product("A")}, MoreProducts: false}

		pager := NewPager(client, zap.NewNop())
		require.NoError(t, pager.LoadInitial(context.Background()))

		items := pager.Snapshot().Items
		require.Len(t, items, 2)
		assert.Equal(t, "A-0", items[0].Key)
		assert.Equal(t, "A-1", items[1].Key)
	})
}
