package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rackit-dev/birdie/models"
	"github.com/rackit-dev/birdie/services"
)

type ProductController struct {
	service *services.ProductService
	logger  *zap.Logger
}

func NewProductController(service *services.ProductService, logger *zap.Logger) *ProductController {
	return &ProductController{service: service, logger: logger}
}

func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var req models.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn("Invalid create product request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product, svcErr := c.service.CreateProduct(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, product)
}

func (c *ProductController) GetProductByID(ctx *gin.Context) {
	productID, err := uuid.Parse(ctx.Query("product_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
		return
	}

	product, svcErr := c.service.GetProduct(ctx.Request.Context(), productID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func (c *ProductController) ListProducts(ctx *gin.Context) {
	page, itemsPerPage := parsePaginationParams(ctx)

	resp, svcErr := c.service.ListProducts(ctx.Request.Context(), page, itemsPerPage)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	productID, err := uuid.Parse(ctx.Query("product_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
		return
	}

	var req models.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	product, svcErr := c.service.UpdateProduct(ctx.Request.Context(), productID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func (c *ProductController) DeactivateProduct(ctx *gin.Context) {
	productID, err := uuid.Parse(ctx.Query("product_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
		return
	}

	if svcErr := c.service.DeactivateProduct(ctx.Request.Context(), productID); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Product deactivated successfully"})
}
