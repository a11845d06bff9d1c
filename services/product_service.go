package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rackit-dev/birdie/cache"
	"github.com/rackit-dev/birdie/models"
	"github.com/rackit-dev/birdie/repository"
)

// ProductListResponse is a paginated catalog listing.
type ProductListResponse struct {
	TotalCount int64            `json:"total_count"`
	Products   []models.Product `json:"products"`
}

// ProductService handles catalog operations with a redis read-through cache
// in front of single-product lookups.
type ProductService struct {
	productRepo repository.ProductRepository
	cache       *cache.ProductCache
	logger      *zap.Logger
}

// NewProductService creates a new ProductService. A nil cache disables
// caching.
func NewProductService(productRepo repository.ProductRepository, productCache *cache.ProductCache, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       productCache,
		logger:      logger,
	}
}

// CreateProduct adds a catalog entry.
func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, *ServiceError) {
	product := &models.Product{
		Name:         req.Name,
		PriceWhole:   req.PriceWhole,
		PriceSell:    req.PriceSell,
		DiscountRate: req.DiscountRate,
		IsActive:     true,
		CategoryMain: req.CategoryMain,
		CategorySub:  req.CategorySub,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.String("name", req.Name), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create product"}
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.Int("product_number", product.ProductNumber),
	)
	return product, nil
}

// GetProduct returns one product, served from cache when possible.
func (s *ProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, *ServiceError) {
	if cached := s.cache.Get(ctx, productID.String()); cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}

	s.cache.Set(ctx, product)
	return product, nil
}

// ListProducts returns a page of products, newest first.
func (s *ProductService) ListProducts(ctx context.Context, page, itemsPerPage int) (*ProductListResponse, *ServiceError) {
	products, total, err := s.productRepo.FindAll(ctx, page, itemsPerPage)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch products"}
	}
	return &ProductListResponse{TotalCount: total, Products: products}, nil
}

// UpdateProduct edits a catalog entry and drops its cache entry.
func (s *ProductService) UpdateProduct(ctx context.Context, productID uuid.UUID, req *models.UpdateProductRequest) (*models.Product, *ServiceError) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to fetch product", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.PriceWhole != nil {
		product.PriceWhole = *req.PriceWhole
	}
	if req.PriceSell != nil {
		product.PriceSell = *req.PriceSell
	}
	if req.DiscountRate != nil {
		product.DiscountRate = *req.DiscountRate
	}
	if req.CategoryMain != nil {
		product.CategoryMain = *req.CategoryMain
	}
	if req.CategorySub != nil {
		product.CategorySub = *req.CategorySub
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update product"}
	}

	s.cache.Invalidate(ctx, productID.String())
	return product, nil
}

// DeactivateProduct hides a product from the storefront without deleting it.
func (s *ProductService) DeactivateProduct(ctx context.Context, productID uuid.UUID) *ServiceError {
	if err := s.productRepo.Deactivate(ctx, productID); err != nil {
		if isNotFound(err) {
			return &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("Failed to deactivate product", zap.String("product_id", productID.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to deactivate product"}
	}

	s.cache.Invalidate(ctx, productID.String())
	return nil
}
