package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/catalog"
	"github.com/light-bringer/storefront-service/internal/session"
)

// CatalogHandler serves the catalog browsing surface backed by the session's
// pager.
type CatalogHandler struct {
	registry *session.Registry
	client   catalog.Client
	logger   *zap.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(registry *session.Registry, client catalog.Client, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		registry: registry,
		client:   client,
		logger:   logger,
	}
}

// catalogView is the JSON shape of a pager snapshot.
type catalogView struct {
	State     string          `json:"state"`
	Items     []catalog.Entry `json:"items"`
	HasMore   bool            `json:"hasMore"`
	Loading   bool            `json:"loading"`
	NextBatch int             `json:"nextBatch"`
}

func toCatalogView(snap catalog.Snapshot) catalogView {
	return catalogView{
		State:     snap.State.String(),
		Items:     snap.Items,
		HasMore:   snap.HasMore,
		Loading:   snap.Loading,
		NextBatch: snap.NextBatch,
	}
}

// Get handles GET /api/v1/catalog. The first request for a session runs the
// eager two-batch initial load.
func (h *CatalogHandler) Get(c *gin.Context) {
	sess := h.registry.Get(sessionID(c))

	if sess.Pager.Snapshot().State == catalog.StateIdle {
		if err := sess.Pager.LoadInitial(c.Request.Context()); err != nil && !errors.Is(err, catalog.ErrAlreadyStarted) {
			h.logger.Warn("initial catalog load failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, toCatalogView(sess.Pager.Snapshot()))
}

// LoadMore handles POST /api/v1/catalog/load-more. Network failures are not
// hard errors: the response is the unchanged snapshot and the client may
// simply retry.
func (h *CatalogHandler) LoadMore(c *gin.Context) {
	sess := h.registry.Get(sessionID(c))

	if err := sess.Pager.LoadMore(c.Request.Context()); err != nil {
		switch {
		case errors.Is(err, catalog.ErrExhausted), errors.Is(err, catalog.ErrLoadInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case errors.Is(err, catalog.ErrUpstreamUnavailable):
			h.logger.Warn("load more failed", zap.Error(err))
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, toCatalogView(sess.Pager.Snapshot()))
}

// GetProduct handles GET /api/v1/catalog/products/:productId, proxying the
// collaborator's detail query.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID := c.Param("productId")

	product, err := h.client.FetchProduct(c.Request.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		case errors.Is(err, catalog.ErrUpstreamUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, product)
}
