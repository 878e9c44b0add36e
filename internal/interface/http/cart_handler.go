package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/threadline/storefront/internal/application"
	"github.com/threadline/storefront/internal/interface/middleware"
	"github.com/threadline/storefront/pkg/response"
	"github.com/threadline/storefront/pkg/validation"
)

// CartHandler exposes the shopping cart.
type CartHandler struct {
	Cart   *application.CartService
	Logger *logrus.Logger
}

func NewCartHandler(cart *application.CartService, logger *logrus.Logger) *CartHandler {
	return &CartHandler{Cart: cart, Logger: logger}
}

type addToCartRequest struct {
	ItemID string `json:"item_id" binding:"required,uuid"`
}

// Add POST /api/cart
func (h *CartHandler) Add(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ci, err := h.Cart.AddToCart(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.ItemID)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toCartItemView(ci), "added to cart")
}

// Remove DELETE /api/cart/:id
func (h *CartHandler) Remove(c *gin.Context) {
	if err := h.Cart.RemoveFromCart(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"removed": true}, "removed from cart")
}

// List GET /api/cart
func (h *CartHandler) List(c *gin.Context) {
	cis, err := h.Cart.ListCart(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toCartItemViews(cis), "cart")
}
