package get_cart

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/store"
)

// Request identifies the session whose cart to read.
type Request struct {
	SessionID string
}

// Response is the cart view: lines in stable order plus the rounded total.
type Response struct {
	Lines    []domain.Line
	Total    int64
	Degraded bool
}

// Query handles the get cart query use case.
type Query struct {
	store *store.CartStore
}

// NewQuery creates a new get cart query.
func NewQuery(cartStore *store.CartStore) *Query {
	return &Query{store: cartStore}
}

// Execute reconstructs the session's cart from storage.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.SessionID == "" {
		return nil, domain.ErrEmptySessionID
	}

	cart, degraded, err := q.store.Load(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	return &Response{
		Lines:    cart.Lines(),
		Total:    cart.Total(),
		Degraded: degraded,
	}, nil
}
