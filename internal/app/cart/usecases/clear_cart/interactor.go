package clear_cart

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/store"
)

// Request identifies the session whose cart should be emptied.
type Request struct {
	SessionID string
}

// Interactor handles the clear cart use case, invoked when checkout
// completes.
type Interactor struct {
	store *store.CartStore
}

// NewInteractor creates a new clear cart interactor.
func NewInteractor(cartStore *store.CartStore) *Interactor {
	return &Interactor{store: cartStore}
}

// Execute deletes the session's cart.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	if req.SessionID == "" {
		return domain.ErrEmptySessionID
	}
	return i.store.Clear(ctx, req.SessionID)
}
