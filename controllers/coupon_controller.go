package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rackit-dev/birdie/models"
	"github.com/rackit-dev/birdie/services"
)

type CouponController struct {
	service *services.CouponService
	logger  *zap.Logger
}

func NewCouponController(service *services.CouponService, logger *zap.Logger) *CouponController {
	return &CouponController{service: service, logger: logger}
}

func (c *CouponController) CreateCoupon(ctx *gin.Context) {
	var req models.CreateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("Invalid create coupon request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	coupon, svcErr := c.service.CreateCoupon(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, coupon)
}

func (c *CouponController) GetCouponByID(ctx *gin.Context) {
	couponID, err := uuid.Parse(ctx.Query("coupon_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon_id"})
		return
	}

	coupon, svcErr := c.service.GetCoupon(ctx.Request.Context(), couponID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, coupon)
}

func (c *CouponController) ListCoupons(ctx *gin.Context) {
	page, itemsPerPage := parsePaginationParams(ctx)

	resp, svcErr := c.service.ListCoupons(ctx.Request.Context(), page, itemsPerPage)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

func (c *CouponController) DeactivateCoupon(ctx *gin.Context) {
	var req models.DeactivateCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if svcErr := c.service.DeactivateCoupon(ctx.Request.Context(), req.CouponID); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Coupon deactivated successfully"})
}

func (c *CouponController) IssueWallet(ctx *gin.Context) {
	var req models.IssueWalletRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("Invalid issue wallet request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	wallet, svcErr := c.service.IssueWallet(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, wallet)
}

func (c *CouponController) GetWalletByID(ctx *gin.Context) {
	walletID, err := uuid.Parse(ctx.Query("coupon_wallet_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon_wallet_id"})
		return
	}

	wallet, svcErr := c.service.GetWallet(ctx.Request.Context(), walletID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, wallet)
}

func (c *CouponController) ListWalletsByUser(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Query("user_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	wallets, svcErr := c.service.ListWalletsByUser(ctx.Request.Context(), userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"total_count": len(wallets), "coupon_wallets": wallets})
}

func (c *CouponController) UseWallet(ctx *gin.Context) {
	var req models.UseWalletRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	wallet, svcErr := c.service.UseWallet(ctx.Request.Context(), req.WalletID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, wallet)
}

func (c *CouponController) DeleteWallet(ctx *gin.Context) {
	walletID, err := uuid.Parse(ctx.Query("coupon_wallet_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coupon_wallet_id"})
		return
	}

	if svcErr := c.service.DeleteWallet(ctx.Request.Context(), walletID); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Coupon wallet deleted successfully"})
}
