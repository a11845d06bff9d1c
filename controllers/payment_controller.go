package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rackit-dev/birdie/models"
	"github.com/rackit-dev/birdie/services"
)

// maxWebhookBodyBytes bounds how much of a webhook payload is read. Stripe
// events are small; anything larger is not ours.
const maxWebhookBodyBytes = 65536

type PaymentController struct {
	service *services.PaymentService
	logger  *zap.Logger
}

func NewPaymentController(service *services.PaymentService, logger *zap.Logger) *PaymentController {
	return &PaymentController{service: service, logger: logger}
}

func (c *PaymentController) HandleWebhook(ctx *gin.Context) {
	c.handleWebhook(ctx, false)
}

func (c *PaymentController) HandleWebhookTest(ctx *gin.Context) {
	c.handleWebhook(ctx, true)
}

func (c *PaymentController) handleWebhook(ctx *gin.Context, test bool) {
	payload, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		c.logger.Warn("Failed to read webhook body", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	signature := ctx.GetHeader("Stripe-Signature")

	result, svcErr := c.service.HandleWebhook(ctx.Request.Context(), payload, signature, test)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *PaymentController) RefundWhole(ctx *gin.Context) {
	var req models.RefundWholeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("Invalid refund request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	refund, svcErr := c.service.RefundWhole(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, refund)
}

func (c *PaymentController) GetPaymentByOrder(ctx *gin.Context) {
	orderID, err := uuid.Parse(ctx.Query("order_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order_id"})
		return
	}

	payment, svcErr := c.service.GetPaymentByOrder(ctx.Request.Context(), orderID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, payment)
}
