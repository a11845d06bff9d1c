package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rackit-dev/birdie/models"
	"github.com/rackit-dev/birdie/services"
)

type OrderController struct {
	service *services.OrderService
	logger  *zap.Logger
}

func NewOrderController(service *services.OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{service: service, logger: logger}
}

func (c *OrderController) CreateOrder(ctx *gin.Context) {
	var req models.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("Invalid create order request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, svcErr := c.service.CreateOrder(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

func (c *OrderController) GetOrderByID(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Query("order_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order_id"})
		return
	}

	order, svcErr := c.service.GetOrder(ctx.Request.Context(), orderID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, order)
}

func (c *OrderController) ListOrders(ctx *gin.Context) {
	page, itemsPerPage := parsePaginationParams(ctx)

	resp, svcErr := c.service.ListOrders(ctx.Request.Context(), page, itemsPerPage)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

func (c *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, svcErr := c.service.UpdateOrderStatus(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, order)
}

func (c *OrderController) DeleteOrder(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Query("order_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order_id"})
		return
	}

	if svcErr := c.service.DeleteOrder(ctx.Request.Context(), orderID); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
