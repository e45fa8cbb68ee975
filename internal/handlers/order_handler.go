package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/surya-platform/service-storefront/internal/models"
	"github.com/surya-platform/service-storefront/internal/repository"
	"github.com/surya-platform/service-storefront/internal/services"
)

// OrderHandler handles admin order requests.
type OrderHandler struct {
	service *services.AdminService
	logger  *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *services.AdminService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

// GetOrders lists all orders with owning users populated.
// GET /api/v1/admin/orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch all orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatusRequest carries the new order status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order to a new status.
// PUT /api/v1/admin/orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	order, err := h.service.UpdateOrderStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOrderStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		case errors.Is(err, repository.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		default:
			h.logger.Error("Failed to update order status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}
