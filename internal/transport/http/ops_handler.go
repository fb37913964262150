package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/queries/list_sessions"
)

// OpsHandler exposes the operational read surface over stored carts.
type OpsHandler struct {
	listSessions *list_sessions.Query
	logger       *zap.Logger
}

// NewOpsHandler creates a new ops handler.
func NewOpsHandler(listSessions *list_sessions.Query, logger *zap.Logger) *OpsHandler {
	return &OpsHandler{
		listSessions: listSessions,
		logger:       logger,
	}
}

// ListCarts handles GET /api/v1/ops/carts requests.
// Query parameters: since (RFC 3339) and limit.
func (h *OpsHandler) ListCarts(c *gin.Context) {
	req := &list_sessions.Request{}

	if since := c.Query("since"); since != "" {
		parsed, err := time.Parse(time.RFC3339, since)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be RFC 3339"})
			return
		}
		req.UpdatedSince = parsed
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.ParseInt(limitStr, 10, 64); err == nil && limit > 0 {
			req.Limit = limit
		}
	}

	sessions, err := h.listSessions.Execute(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("failed to list cart sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"carts": sessions, "count": len(sessions)})
}
