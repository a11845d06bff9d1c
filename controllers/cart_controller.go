package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rackit-dev/birdie/models"
	"github.com/rackit-dev/birdie/services"
)

type CartController struct {
	service *services.CartService
	logger  *zap.Logger
}

func NewCartController(service *services.CartService, logger *zap.Logger) *CartController {
	return &CartController{service: service, logger: logger}
}

func (c *CartController) AddCartItem(ctx *gin.Context) {
	var req models.AddCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("Invalid add cart item request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	item, svcErr := c.service.AddItem(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, item)
}

func (c *CartController) ListCartItems(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Query("user_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	items, svcErr := c.service.ListItems(ctx.Request.Context(), userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"total_count": len(items), "cartitems": items})
}

func (c *CartController) UpdateCartItem(ctx *gin.Context) {
	itemID, err := uuid.Parse(ctx.Query("cartitem_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cartitem_id"})
		return
	}

	var req models.UpdateCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	item, svcErr := c.service.UpdateItem(ctx.Request.Context(), itemID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, item)
}

func (c *CartController) RemoveCartItem(ctx *gin.Context) {
	itemID, err := uuid.Parse(ctx.Query("cartitem_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cartitem_id"})
		return
	}

	if svcErr := c.service.RemoveItem(ctx.Request.Context(), itemID); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Cart item removed successfully"})
}
