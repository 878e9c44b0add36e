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

// OrderHandler exposes checkout and order read-back.
type OrderHandler struct {
	Orders *application.OrderService
	Logger *logrus.Logger
}

func NewOrderHandler(orders *application.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{Orders: orders, Logger: logger}
}

type createOrderRequest struct {
	PaymentToken string `json:"payment_token" binding:"required"`
}

// Create POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	o, err := h.Orders.CreateOrder(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.PaymentToken)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toOrderView(o), "order created")
}

// Get GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.Orders.GetOrder(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toOrderView(o), "order")
}

// List GET /api/orders
func (h *OrderHandler) List(c *gin.Context) {
	os, err := h.Orders.ListOrders(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toOrderViews(os), "orders")
}
