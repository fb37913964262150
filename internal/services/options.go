package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/queries/list_sessions"
	"github.com/light-bringer/storefront-service/internal/app/cart/repo"
	"github.com/light-bringer/storefront-service/internal/app/cart/store"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/change_quantity"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/clear_cart"
	"github.com/light-bringer/storefront-service/internal/app/catalog"
	"github.com/light-bringer/storefront-service/internal/pkg/clock"
	"github.com/light-bringer/storefront-service/internal/pkg/committer"
	"github.com/light-bringer/storefront-service/internal/pkg/config"
	"github.com/light-bringer/storefront-service/internal/session"
	transport "github.com/light-bringer/storefront-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Router        *gin.Engine
	Registry      *session.Registry
	SpannerClient *spanner.Client
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	// 1. Infrastructure
	clk := clock.NewRealClock()

	// 2. Cart storage: Spanner when configured, otherwise memory-only.
	// Either way an in-memory fallback catches sessions whose durable
	// storage becomes unreachable.
	var (
		primary       contracts.CartStorage
		spannerClient *spanner.Client
		opsHandler    *transport.OpsHandler
	)
	if cfg.SpannerDB != "" {
		client, err := spanner.NewClient(ctx, cfg.SpannerDB)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		spannerClient = client

		comm := committer.NewCommitter(client)
		primary = repo.NewCartRepo(client, comm, logger)

		readModel := repo.NewSessionReadModel(client)
		opsHandler = transport.NewOpsHandler(list_sessions.NewQuery(readModel), logger)
	} else {
		logger.Warn("SPANNER_DB not set, carts will not survive restarts")
		primary = repo.NewMemoryCartRepo()
	}

	cartStore := store.NewCartStore(primary, repo.NewMemoryCartRepo(), logger)
	cartStore.Subscribe(func(ev store.Event) {
		logger.Info("cart updated",
			zap.String("session_id", ev.SessionID),
			zap.Int("lines", ev.LineCount),
			zap.Int64("total", ev.Total),
			zap.Bool("degraded", ev.Degraded))
	})

	// 3. Catalog collaborator and per-session state
	catalogClient := catalog.NewHTTPClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, logger)
	registry := session.NewRegistry(cfg.SessionTTL, clk, func() *catalog.Pager {
		return catalog.NewPager(catalogClient, logger)
	}, logger)

	// 4. Use cases
	addItemUseCase := add_item.NewInteractor(cartStore)
	changeQuantityUseCase := change_quantity.NewInteractor(cartStore)
	clearCartUseCase := clear_cart.NewInteractor(cartStore)
	getCartQuery := get_cart.NewQuery(cartStore)

	// 5. HTTP surface
	router := transport.NewRouter(
		transport.NewCatalogHandler(registry, catalogClient, logger),
		transport.NewCartHandler(addItemUseCase, changeQuantityUseCase, getCartQuery, logger),
		transport.NewCheckoutHandler(registry, clearCartUseCase, logger),
		opsHandler,
		logger,
	)

	return &ServiceOptions{
		Router:        router,
		Registry:      registry,
		SpannerClient: spannerClient,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
