package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// State is the pager's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoadingInitial
	StateReady
	StateLoadingMore
	StateExhausted
)

// String returns the state name for logs and responses.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingInitial:
		return "loading_initial"
	case StateReady:
		return "ready"
	case StateLoadingMore:
		return "loading_more"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Entry is one renderable catalog card. Key disambiguates by position:
// upstream does not guarantee a productId appears in only one batch, so
// productId alone would collide. Duplicates are kept, never deduplicated;
// dropping them could silently hide legitimate distinct listings.
type Entry struct {
	Key     string  `json:"key"`
	Product Product `json:"product"`
}

// Snapshot is a point-in-time view of the pager for rendering.
type Snapshot struct {
	State     State
	Items     []Entry
	HasMore   bool
	Loading   bool
	NextBatch int
}

// Pager fetches catalog pages in sequential batches for one browsing
// session. Loaded products are append-only for the session's lifetime.
//
// Lifecycle: Idle -> LoadingInitial -> Ready <-> LoadingMore -> Exhausted.
// The initial load fetches batches 1 and 2 concurrently; afterwards LoadMore
// fetches one batch at a time. A failed fetch contributes no products and
// leaves the batch counter where it was, so the next call retries the same
// batch number.
type Pager struct {
	mu     sync.Mutex
	client Client
	logger *zap.Logger

	state     State
	products  []Product
	nextBatch int
	hasMore   bool
}

// NewPager creates a pager in the Idle state.
func NewPager(client Client, logger *zap.Logger) *Pager {
	return &Pager{
		client:    client,
		logger:    logger,
		state:     StateIdle,
		nextBatch: 1,
		hasMore:   true,
	}
}

// LoadInitial eagerly fetches batches 1 and 2 concurrently and joins on
// both. Either fetch may fail independently: a failed batch contributes no
// products and does not touch hasMore. Successful batches are concatenated
// in batch order regardless of arrival order, and the hasMore flag of the
// last successful batch wins. Only valid once, from Idle.
func (p *Pager) LoadInitial(ctx context.Context) error {
	p.mu.Lock()
	if p.state != StateIdle {
		p.mu.Unlock()
		return ErrAlreadyStarted
	}
	p.state = StateLoadingInitial
	p.mu.Unlock()

	type result struct {
		batch *Batch
		err   error
	}
	results := make([]result, 2)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			batch, err := p.client.FetchBatch(ctx, slot+1)
			results[slot] = result{batch: batch, err: err}
		}(i)
	}
	wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	for i, res := range results {
		if res.err != nil {
			p.logger.Warn("initial catalog batch failed",
				zap.Int("batch", i+1),
				zap.Error(res.err))
			continue
		}
		p.products = append(p.products, res.batch.Products...)
		p.hasMore = res.batch.MoreProducts
	}

	p.nextBatch = 3
	p.settle()
	return nil
}

// LoadMore fetches the next batch. Valid only from Ready; a call while a
// load is in flight is rejected with ErrLoadInProgress and issues no
// duplicate fetch. On failure the pager returns to Ready with hasMore and
// the batch counter unchanged, making the call a safe retry point.
func (p *Pager) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	switch p.state {
	case StateReady:
	case StateExhausted:
		p.mu.Unlock()
		return ErrExhausted
	default:
		p.mu.Unlock()
		return ErrLoadInProgress
	}
	batchNumber := p.nextBatch
	p.state = StateLoadingMore
	p.mu.Unlock()

	batch, err := p.client.FetchBatch(ctx, batchNumber)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.state = StateReady
		return fmt.Errorf("load more batch %d: %w", batchNumber, err)
	}

	p.products = append(p.products, batch.Products...)
	p.hasMore = batch.MoreProducts
	p.nextBatch++
	p.settle()
	return nil
}

// Snapshot returns the current view: entries keyed by (productId, position),
// the paging flags, and whether a load is in flight.
func (p *Pager) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]Entry, len(p.products))
	for i, product := range p.products {
		items[i] = Entry{
			Key:     fmt.Sprintf("%s-%d", product.ProductID, i),
			Product: product,
		}
	}

	return Snapshot{
		State:     p.state,
		Items:     items,
		HasMore:   p.hasMore,
		Loading:   p.state == StateLoadingInitial || p.state == StateLoadingMore,
		NextBatch: p.nextBatch,
	}
}

// settle picks the resting state after a load. Must be called with the lock
// held.
func (p *Pager) settle() {
	if p.hasMore {
		p.state = StateReady
	} else {
		p.state = StateExhausted
	}
}
