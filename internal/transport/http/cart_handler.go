package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/queries/get_cart"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/add_item"
	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/change_quantity"
	"github.com/light-bringer/storefront-service/internal/app/pricing"
)

// CartHandler serves the cart surface.
type CartHandler struct {
	addItem   *add_item.Interactor
	changeQty *change_quantity.Interactor
	getCart   *get_cart.Query
	logger    *zap.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(
	addItem *add_item.Interactor,
	changeQty *change_quantity.Interactor,
	getCart *get_cart.Query,
	logger *zap.Logger,
) *CartHandler {
	return &CartHandler{
		addItem:   addItem,
		changeQty: changeQty,
		getCart:   getCart,
		logger:    logger,
	}
}

// cartItemView renders one line. An unparseable snapshot price gets a
// placeholder and contributes nothing to totals instead of failing the view.
type cartItemView struct {
	ProductID    string `json:"productId"`
	Quantity     int64  `json:"quantity"`
	Price        string `json:"price"`
	Image        string `json:"image,omitempty"`
	LineTotal    int64  `json:"lineTotal"`
	InvalidPrice bool   `json:"invalidPrice,omitempty"`
}

// cartView is the JSON shape of the whole cart.
type cartView struct {
	Items    []cartItemView `json:"items"`
	Total    int64          `json:"total"`
	Degraded bool           `json:"degraded,omitempty"`
}

// pricePlaceholder is shown when a snapshot price has no numeric value.
const pricePlaceholder = "—"

func toCartView(lines []domain.Line, total int64, degraded bool) cartView {
	items := make([]cartItemView, len(lines))
	for i, line := range lines {
		item := cartItemView{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price.Display(),
			Image:     line.Image,
		}

		amount, err := line.Price.Amount()
		if err != nil {
			item.Price = pricePlaceholder
			item.InvalidPrice = true
		} else {
			item.LineTotal = amount.Mul(decimal.NewFromInt(line.Quantity)).Round(0).IntPart()
		}
		items[i] = item
	}

	return cartView{Items: items, Total: total, Degraded: degraded}
}

// addItemRequest accepts a product snapshot from either the listing shape
// (imageUrl) or the detail shape (imageUrls).
type addItemRequest struct {
	ProductID string        `json:"productId" binding:"required"`
	Price     pricing.Price `json:"price"`
	Image     string        `json:"image"`
	ImageURL  string        `json:"imageUrl"`
	ImageURLs []string      `json:"imageUrls"`
}

// image picks the single reference snapshotted into the cart.
func (r *addItemRequest) image() string {
	if r.Image != "" {
		return r.Image
	}
	if r.ImageURL != "" {
		return r.ImageURL
	}
	if len(r.ImageURLs) > 0 {
		return r.ImageURLs[0]
	}
	return ""
}

// Get handles GET /api/v1/cart.
func (h *CartHandler) Get(c *gin.Context) {
	resp, err := h.getCart.Execute(c.Request.Context(), &get_cart.Request{SessionID: sessionID(c)})
	if err != nil {
		h.respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(resp.Lines, resp.Total, resp.Degraded))
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.addItem.Execute(c.Request.Context(), &add_item.Request{
		SessionID: sessionID(c),
		ProductID: req.ProductID,
		Price:     req.Price,
		Image:     req.image(),
	})
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartView(resp.Cart.Lines(), resp.Cart.Total(), resp.Degraded))
}

// changeQuantityRequest is a signed quantity delta.
type changeQuantityRequest struct {
	Delta *int64 `json:"delta" binding:"required"`
}

// ChangeQuantity handles PATCH /api/v1/cart/items/:productId. An unknown
// product id is a no-op and still returns the current cart.
func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	var req changeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.changeQty.Execute(c.Request.Context(), &change_quantity.Request{
		SessionID: sessionID(c),
		ProductID: c.Param("productId"),
		Delta:     *req.Delta,
	})
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartView(resp.Cart.Lines(), resp.Cart.Total(), resp.Degraded))
}

func (h *CartHandler) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyProductID), errors.Is(err, domain.ErrEmptySessionID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("cart operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart unavailable"})
	}
}
