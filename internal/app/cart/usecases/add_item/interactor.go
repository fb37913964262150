package add_item

import (
	"context"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/store"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
)

// Request contains the product snapshot to add to a session's cart.
type Request struct {
	SessionID string
	ProductID string
	Price     pricing.Price
	Image     string
}

// Response carries the cart state after the add.
type Response struct {
	Cart     *domain.Cart
	Degraded bool
}

// Interactor handles the add item use case.
type Interactor struct {
	store *store.CartStore
}

// NewInteractor creates a new add item interactor.
func NewInteractor(cartStore *store.CartStore) *Interactor {
	return &Interactor{store: cartStore}
}

// Execute adds one unit of the product, creating the line on first add and
// incrementing the quantity afterwards. The snapshot from the first add wins.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := i.validate(req); err != nil {
		return nil, err
	}

	snap := domain.Snapshot{
		ProductID: req.ProductID,
		Price:     req.Price,
		Image:     req.Image,
	}

	cart, degraded, err := i.store.Mutate(ctx, req.SessionID, func(c *domain.Cart) (bool, error) {
		if err := c.AddItem(snap); err != nil {
			return false, err
		}
		return true, nil
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
