package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/storefront-service/internal/app/cart/usecases/clear_cart"
	"github.com/light-bringer/storefront-service/internal/app/checkout"
	"github.com/light-bringer/storefront-service/internal/session"
)

// CheckoutHandler serves the checkout form surface.
type CheckoutHandler struct {
	registry  *session.Registry
	clearCart *clear_cart.Interactor
	logger    *zap.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(registry *session.Registry, clearCart *clear_cart.Interactor, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		registry:  registry,
		clearCart: clearCart,
		logger:    logger,
	}
}

// Get handles GET /api/v1/checkout.
func (h *CheckoutHandler) Get(c *gin.Context) {
	sess := h.registry.Get(sessionID(c))
	c.JSON(http.StatusOK, sess.Checkout.Snapshot())
}

// setFieldRequest writes one named form field.
type setFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// SetField handles PATCH /api/v1/checkout/fields.
func (h *CheckoutHandler) SetField(c *gin.Context) {
	var req setFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := h.registry.Get(sessionID(c))
	if err := sess.Checkout.SetField(req.Field, req.Value); err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, sess.Checkout.Snapshot())
}

// sameAsBillingRequest drives the address mirror toggle.
type sameAsBillingRequest struct {
	SameAsBilling *bool `json:"sameAsBilling" binding:"required"`
}

// SetSameAsBilling handles PUT /api/v1/checkout/same-as-billing.
func (h *CheckoutHandler) SetSameAsBilling(c *gin.Context) {
	var req sameAsBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := h.registry.Get(sessionID(c))
	if err := sess.Checkout.SetSameAsBilling(*req.SameAsBilling); err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, sess.Checkout.Snapshot())
}

// termsRequest records the terms checkbox.
type termsRequest struct {
	Agreed *bool `json:"agreed" binding:"required"`
}

// SetTerms handles PUT /api/v1/checkout/terms.
func (h *CheckoutHandler) SetTerms(c *gin.Context) {
	var req termsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := h.registry.Get(sessionID(c))
	if err := sess.Checkout.SetAgreedToTerms(*req.Agreed); err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	c.JSON(http.StatusOK, sess.Checkout.Snapshot())
}

// Submit handles POST /api/v1/checkout/submit. A successful submission is
// terminal for the form and empties the session's cart.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	sid := sessionID(c)
	sess := h.registry.Get(sid)

	if err := sess.Checkout.Submit(); err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	if err := h.clearCart.Execute(c.Request.Context(), &clear_cart.Request{SessionID: sid}); err != nil {
		// The payment view already committed; an unreachable cart store must
		// not fail the submission.
		h.logger.Warn("failed to clear cart after checkout", zap.Error(err))
	}

	c.JSON(http.StatusOK, sess.Checkout.Snapshot())
}

func (h *CheckoutHandler) respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrShippingMirrored), errors.Is(err, checkout.ErrAlreadyPaid):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, checkout.ErrTermsNotAgreed), errors.Is(err, checkout.ErrInvalidForm):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error("checkout operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout unavailable"})
	}
}
