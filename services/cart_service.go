package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rackit-dev/birdie/models"
	"github.com/rackit-dev/birdie/repository"
)

// CartService handles cart-item CRUD.
type CartService struct {
	cartRepo repository.CartRepository
	logger   *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repository.CartRepository, logger *zap.Logger) *CartService {
	return &CartService{cartRepo: cartRepo, logger: logger}
}

// AddItem puts a product into the cart. Adding the same product with the
// same option selections twice is a conflict; the client should update the
// quantity of the existing row instead.
func (s *CartService) AddItem(ctx context.Context, req *models.AddCartItemRequest) (*models.CartItem, *ServiceError) {
	item := &models.CartItem{
		UserID:       req.UserID,
		ProductID:    req.ProductID,
		IsActive:     true,
		Quantity:     req.Quantity,
		Option1Type:  req.Option1Type,
		Option1Value: req.Option1Value,
		Option2Type:  req.Option2Type,
		Option2Value: req.Option2Value,
		Option3Type:  req.Option3Type,
		Option3Value: req.Option3Value,
	}

	if existing, err := s.cartRepo.FindMatching(ctx, item); err == nil && existing != nil {
		return nil, &ServiceError{StatusCode: 409, Message: "Item already exists in cart"}
	} else if err != nil && !isNotFound(err) {
		s.logger.Error("Failed to check cart for duplicates", zap.String("user_id", req.UserID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to add cart item"}
	}

	if err := s.cartRepo.Create(ctx, item); err != nil {
		s.logger.Error("Failed to add cart item",
			zap.String("user_id", req.UserID.String()),
			zap.String("product_id", req.ProductID.String()),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to add cart item"}
	}

	return item, nil
}

// ListItems returns a user's cart, newest first.
func (s *CartService) ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, *ServiceError) {
	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list cart items", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch cart items"}
	}
	return items, nil
}

// UpdateItem changes quantity or the active flag of a cart row.
func (s *CartService) UpdateItem(ctx context.Context, itemID uuid.UUID, req *models.UpdateCartItemRequest) (*models.CartItem, *ServiceError) {
	item, err := s.cartRepo.FindByID(ctx, itemID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Cart item not found"}
		}
		s.logger.Error("Failed to fetch cart item", zap.String("item_id", itemID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch cart item"}
	}

	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.cartRepo.Update(ctx, item); err != nil {
		s.logger.Error("Failed to update cart item", zap.String("item_id", itemID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update cart item"}
	}
	return item, nil
}

// RemoveItem deletes a cart row outright.
func (s *CartService) RemoveItem(ctx context.Context, itemID uuid.UUID) *ServiceError {
	if err := s.cartRepo.Delete(ctx, itemID); err != nil {
		if isNotFound(err) {
			return &ServiceError{StatusCode: 404, Message: "Cart item not found"}
		}
		s.logger.Error("Failed to delete cart item", zap.String("item_id", itemID.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete cart item"}
	}
	return nil
}
