package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus tracks an order through its fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPendingPayment    OrderStatus = "PENDING_PAYMENT"
	OrderStatusPaid              OrderStatus = "PAID"
	OrderStatusPreparing         OrderStatus = "PREPARING"
	OrderStatusShipping          OrderStatus = "SHIPPING"
	OrderStatusDelivered         OrderStatus = "DELIVERED"
	OrderStatusConfirmed         OrderStatus = "CONFIRMED"
	OrderStatusCanceled          OrderStatus = "CANCELED"
	OrderStatusPartiallyCanceled OrderStatus = "PARTIALLY_CANCELED"
)

// OrderItemStatus is tracked independently of the parent order so a single
// item can be canceled or refunded without touching its siblings.
type OrderItemStatus string

const (
	OrderItemStatusOrdered  OrderItemStatus = "ORDERED"
	OrderItemStatusCanceled OrderItemStatus = "CANCELED"
	OrderItemStatusRefunded OrderItemStatus = "REFUNDED"
)

// Order is the checkout aggregate root. Price fields are minor currency units.
// TotalPrice is fixed at creation time: subtotal - coupon discount - point
// discount; it is never recomputed afterward.
type Order struct {
	ID                 uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID             uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	Status             OrderStatus `gorm:"type:varchar(20);not null;default:'PENDING_PAYMENT'" json:"status"`
	SubtotalPrice      int64       `gorm:"not null" json:"subtotal_price"`
	CouponDiscountPrice int64      `gorm:"not null;default:0" json:"coupon_discount_price"`
	PointDiscountPrice int64       `gorm:"not null;default:0" json:"point_discount_price"`
	TotalPrice         int64       `gorm:"not null" json:"total_price"`
	RecipientName      string      `gorm:"type:varchar(32);not null" json:"recipient_name"`
	PhoneNumber        string      `gorm:"type:varchar(20);not null" json:"phone_number"`
	Zipcode            string      `gorm:"type:varchar(10);not null" json:"zipcode"`
	AddressLine1       string      `gorm:"type:varchar(128);not null" json:"address_line1"`
	AddressLine2       *string     `gorm:"type:varchar(128)" json:"address_line2"`
	OrderMemo          *string     `gorm:"type:varchar(128)" json:"order_memo"`
	CreatedAt          time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	OrderItems         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"`
}

// OrderItem snapshots product name and pricing at order time so later product
// edits never change what the customer bought.
type OrderItem struct {
	ID                  uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID             uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID           uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	ProductName         string          `gorm:"type:varchar(128);not null" json:"product_name"`
	CouponWalletID      *uuid.UUID      `gorm:"type:uuid" json:"coupon_wallet_id"`
	Status              OrderItemStatus `gorm:"type:varchar(20);not null;default:'ORDERED'" json:"status"`
	Quantity            int             `gorm:"not null" json:"quantity"`
	UnitPrice           int64           `gorm:"not null" json:"unit_price"`
	CouponDiscountPrice int64           `gorm:"not null;default:0" json:"coupon_discount_price"`
	PointDiscountPrice  int64           `gorm:"not null;default:0" json:"point_discount_price"`
	FinalPrice          int64           `gorm:"not null" json:"final_price"`
	Option1Type         *string         `gorm:"type:varchar(32)" json:"option_1_type"`
	Option1Value        *string         `gorm:"type:varchar(32)" json:"option_1_value"`
	Option2Type         *string         `gorm:"type:varchar(32)" json:"option_2_type"`
	Option2Value        *string         `gorm:"type:varchar(32)" json:"option_2_value"`
	Option3Type         *string         `gorm:"type:varchar(32)" json:"option_3_type"`
	Option3Value        *string         `gorm:"type:varchar(32)" json:"option_3_value"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// CreateOrderItemRequest is one line of a checkout payload. The client sends
// its computed final price; the service re-checks the arithmetic.
type CreateOrderItemRequest struct {
	ProductID           uuid.UUID  `json:"product_id" binding:"required"`
	ProductName         string     `json:"product_name" binding:"required,max=128"`
	CouponWalletID      *uuid.UUID `json:"coupon_wallet_id"`
	Quantity            int        `json:"quantity" binding:"required,min=1"`
	UnitPrice           int64      `json:"unit_price" binding:"required,min=0,max=999999999"`
	CouponDiscountPrice int64      `json:"coupon_discount_price" binding:"min=0,max=999999999"`
	PointDiscountPrice  int64      `json:"point_discount_price" binding:"min=0,max=999999999"`
	FinalPrice          int64      `json:"final_price" binding:"min=0,max=999999999"`
	Option1Type         *string    `json:"option_1_type" binding:"omitempty,max=32"`
	Option1Value        *string    `json:"option_1_value" binding:"omitempty,max=32"`
	Option2Type         *string    `json:"option_2_type" binding:"omitempty,max=32"`
	Option2Value        *string    `json:"option_2_value" binding:"omitempty,max=32"`
	Option3Type         *string    `json:"option_3_type" binding:"omitempty,max=32"`
	Option3Value        *string    `json:"option_3_value" binding:"omitempty,max=32"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	UserID              uuid.UUID                `json:"user_id" binding:"required"`
	SubtotalPrice       int64                    `json:"subtotal_price" binding:"min=0,max=999999999"`
	CouponDiscountPrice int64                    `json:"coupon_discount_price" binding:"min=0,max=999999999"`
	PointDiscountPrice  int64                    `json:"point_discount_price" binding:"min=0,max=999999999"`
	TotalPrice          int64                    `json:"total_price" binding:"min=0,max=999999999"`
	RecipientName       string                   `json:"recipient_name" binding:"required,max=32"`
	PhoneNumber         string                   `json:"phone_number" binding:"required,max=20"`
	Zipcode             string                   `json:"zipcode" binding:"required,max=10"`
	AddressLine1        string                   `json:"address_line1" binding:"required,max=128"`
	AddressLine2        *string                  `json:"address_line2" binding:"omitempty,max=128"`
	OrderMemo           *string                  `json:"order_memo" binding:"omitempty,max=128"`
	Items               []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest moves an order to a new lifecycle status.
type UpdateOrderStatusRequest struct {
	OrderID uuid.UUID   `json:"order_id" binding:"required"`
	Status  OrderStatus `json:"status" binding:"required,oneof=PENDING_PAYMENT PAID PREPARING SHIPPING DELIVERED CONFIRMED CANCELED PARTIALLY_CANCELED"`
}

// OrderCreatedEvent is published to Kafka after a successful checkout commit.
type OrderCreatedEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	TotalPrice int64     `json:"total_price"`
	ItemCount  int       `json:"item_count"`
	Timestamp  time.Time `json:"timestamp"`
}
