package change_quantity

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/store"
)

// Request adjusts one line's quantity by a signed delta.
type Request struct {
	SessionID string
	ProductID string
	Delta     int64
}

// Response carries the cart state after the adjustment.
type Response struct {
	Cart     *domain.Cart
	Degraded bool
}

// Interactor handles the change quantity use case.
type Interactor struct {
	store *store.CartStore
}

// NewInteractor creates a new change quantity interactor.
func NewInteractor(cartStore *store.CartStore) *Interactor {
	return &Interactor{store: cartStore}
}

// Execute applies the delta. An unknown product id is a no-op, and a line
// dropping to zero or below is removed rather than stored at zero.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := i.validate(req); err != nil {
		return nil, err
	}

	cart, degraded, err := i.store.Mutate(ctx, req.SessionID, func(c *domain.Cart) (bool, error) {
		return c.ChangeQuantity(req.ProductID, req.Delta), nil
	})
	if err != nil {
		return nil, err
	}

	return &Response{Cart: cart, Degraded: degraded}, nil
}

// validate validates the request.
func (i *Interactor) validate(req *Request) error {
	if req.SessionID == "" {
		return domain.ErrEmptySessionID
	}
	if req.ProductID == "" {
		return domain.ErrEmptyProductID
	}
	return nil
}
