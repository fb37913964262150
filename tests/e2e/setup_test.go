//go:build integration

package e2e

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/queries/list_sessions"
	"github.com/light-bringer/storefront-service/internal/app/cart/repo"
	"github.com/light-bringer/storefront-service/internal/app/cart/store"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/change_quantity"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/clear_cart"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/tests/testutil"
)

// Services holds all use cases and queries for E2E tests.
type Services struct {
	// Commands
	AddItem        *add_item.Interactor
	ChangeQuantity *change_quantity.Interactor
	ClearCart      *clear_cart.Interactor

	// Queries
	GetCart      *get_cart.Query
	ListSessions *list_sessions.Query

	// Infrastructure
	Store  *store.CartStore
	Client *spanner.Client
}

// setupTest wires the cart store and use cases against the Spanner emulator.
func setupTest(t *testing.T) (*Services, func()) {
	t.Helper()

	client, cleanup := testutil.SetupSpannerTest(t)

	logger := zap.NewNop()
	comm := committer.NewCommitter(client)

	primary := repo.NewCartRepo(client, comm, logger)
	cartStore := store.NewCartStore(primary, repo.NewMemoryCartRepo(), logger)
	readModel := repo.NewSessionReadModel(client)

	services := &Services{
		AddItem:        add_item.NewInteractor(cartStore),
		ChangeQuantity: change_quantity.NewInteractor(cartStore),
		ClearCart:      clear_cart.NewInteractor(cartStore),
		GetCart:        get_cart.NewQuery(cartStore),
		ListSessions:   list_sessions.NewQuery(readModel),
		Store:          cartStore,
		Client:         client,
	}

	return services, cleanup
}

// ctx returns a context for testing.
func ctx() context.Context {
	return context.Background()
}
