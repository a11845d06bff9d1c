package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rackit-dev/birdie/kafka"
	"github.com/rackit-dev/birdie/models"
	"github.com/rackit-dev/birdie/repository"
)

// OrderListResponse is a paginated order listing.
type OrderListResponse struct {
	TotalCount int64          `json:"total_count"`
	Orders     []models.Order `json:"orders"`
}

// OrderService handles checkout and order lifecycle operations.
type OrderService struct {
	orderRepo repository.OrderRepository
	producer  kafka.ProducerAPI
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService. The producer may be nil, in
// which case events are skipped.
func NewOrderService(orderRepo repository.OrderRepository, producer kafka.ProducerAPI, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		producer:  producer,
		logger:    logger,
	}
}

// CreateOrder persists an order and all of its items atomically. Client-side
// price arithmetic is re-checked before anything is written: the subtotal
// must match the item lines and the total must equal
// subtotal - coupon discount - point discount.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, *ServiceError) {
	var itemSubtotal int64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		lineTotal := int64(item.Quantity) * item.UnitPrice
		itemSubtotal += lineTotal

		if item.FinalPrice != lineTotal-item.CouponDiscountPrice-item.PointDiscountPrice {
			return nil, &ServiceError{StatusCode: 400, Message: "Item final price does not match quantity, unit price and discounts"}
		}

		items = append(items, models.OrderItem{
			ProductID:           item.ProductID,
			ProductName:         item.ProductName,
			CouponWalletID:      item.CouponWalletID,
			Status:              models.OrderItemStatusOrdered,
			Quantity:            item.Quantity,
			UnitPrice:           item.UnitPrice,
			CouponDiscountPrice: item.CouponDiscountPrice,
			PointDiscountPrice:  item.PointDiscountPrice,
			FinalPrice:          item.FinalPrice,
			Option1Type:         item.Option1Type,
			Option1Value:        item.Option1Value,
			Option2Type:         item.Option2Type,
			Option2Value:        item.Option2Value,
			Option3Type:         item.Option3Type,
			Option3Value:        item.Option3Value,
		})
	}

	if req.SubtotalPrice != itemSubtotal {
		return nil, &ServiceError{StatusCode: 400, Message: "Subtotal does not match order items"}
	}
	if req.TotalPrice != req.SubtotalPrice-req.CouponDiscountPrice-req.PointDiscountPrice {
		return nil, &ServiceError{StatusCode: 400, Message: "Total price does not match subtotal and discounts"}
	}

	order := &models.Order{
		UserID:              req.UserID,
		Status:              models.OrderStatusPendingPayment,
		SubtotalPrice:       req.SubtotalPrice,
		CouponDiscountPrice: req.CouponDiscountPrice,
		PointDiscountPrice:  req.PointDiscountPrice,
		TotalPrice:          req.TotalPrice,
		RecipientName:       req.RecipientName,
		PhoneNumber:         req.PhoneNumber,
		Zipcode:             req.Zipcode,
		AddressLine1:        req.AddressLine1,
		AddressLine2:        req.AddressLine2,
		OrderMemo:           req.OrderMemo,
	}

	if err := s.orderRepo.CreateWithItems(ctx, order, items); err != nil {
		s.logger.Error("Failed to create order",
			zap.String("user_id", req.UserID.String()),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create order"}
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", order.UserID.String()),
		zap.Int64("total_price", order.TotalPrice),
		zap.Int("items", len(items)),
	)

	s.publishOrderCreated(order)

	return order, nil
}

// GetOrder returns an order with its items.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to fetch order", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch order"}
	}
	return order, nil
}

// ListOrders returns a page of orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context, page, itemsPerPage int) (*OrderListResponse, *ServiceError) {
	orders, total, err := s.orderRepo.FindAll(ctx, page, itemsPerPage)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch orders"}
	}
	return &OrderListResponse{TotalCount: total, Orders: orders}, nil
}

// UpdateOrderStatus moves an order through its lifecycle.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, req *models.UpdateOrderStatusRequest) (*models.Order, *ServiceError) {
	if err := s.orderRepo.UpdateStatus(ctx, req.OrderID, req.Status); err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to update order status", zap.String("order_id", req.OrderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update order"}
	}
	return s.GetOrder(ctx, req.OrderID)
}

// DeleteOrder removes an order and, via the FK cascade, its items.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) *ServiceError {
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		if isNotFound(err) {
			return &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to delete order", zap.String("order_id", orderID.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete order"}
	}
	return nil
}

// publishOrderCreated emits the order.created event. Best effort: failures
// are logged and never surfaced to the caller.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.producer == nil {
		return
	}

	event := models.OrderCreatedEvent{
		Type:       "order.created",
		OrderID:    order.ID.String(),
		UserID:     order.UserID.String(),
		TotalPrice: order.TotalPrice,
		ItemCount:  len(order.OrderItems),
		Timestamp:  time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal order.created event", zap.Error(err))
		return
	}

	if err := s.producer.Publish(event.OrderID, data); err != nil {
		s.logger.Error("Failed to publish order.created event",
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
	}
}
