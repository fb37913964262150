// Package http wires the storefront's JSON API.
package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the Gin engine with all routes registered. The ops
// handler is optional; without durable storage there is nothing to list.
func NewRouter(
	catalogHandler *CatalogHandler,
	cartHandler *CartHandler,
	checkoutHandler *CheckoutHandler,
	opsHandler *OpsHandler,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger), sessionMiddleware())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalog", catalogHandler.Get)
		v1.POST("/catalog/load-more", catalogHandler.LoadMore)
		v1.GET("/catalog/products/:productId", catalogHandler.GetProduct)

		v1.GET("/cart", cartHandler.Get)
		v1.POST("/cart/items", cartHandler.AddItem)
		v1.PATCH("/cart/items/:productId", cartHandler.ChangeQuantity)

		v1.GET("/checkout", checkoutHandler.Get)
		v1.PATCH("/checkout/fields", checkoutHandler.SetField)
		v1.PUT("/checkout/same-as-billing", checkoutHandler.SetSameAsBilling)
		v1.PUT("/checkout/terms", checkoutHandler.SetTerms)
		v1.POST("/checkout/submit", checkoutHandler.Submit)

		if opsHandler != nil {
			v1.GET("/ops/carts", opsHandler.ListCarts)
		}
	}

	return router
}
