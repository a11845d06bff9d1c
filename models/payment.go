package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"

	RefundStatusComplete = "complete"
)

// Payment records one verified charge against an order. Rows are written only
// by the webhook handler after the gateway confirms the transaction; the
// unique index on GatewayTransactionID makes duplicate webhook deliveries
// collapse into one row.
type Payment struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID              uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	MerchantUID          string    `gorm:"type:varchar(64);not null" json:"merchant_uid"`
	GatewayTransactionID string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"gateway_transaction_id"`
	Status               string    `gorm:"type:varchar(20);not null" json:"status"`
	Method               string    `gorm:"type:varchar(32);not null" json:"method"`
	Amount               int64     `gorm:"not null" json:"amount"`
	PaidAt               *time.Time `json:"paid_at"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

// Refund records a gateway-confirmed whole-order cancellation.
type Refund struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID            uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	PaymentID          uuid.UUID `gorm:"type:uuid;not null;index" json:"payment_id"`
	MerchantUID        string    `gorm:"type:varchar(64);not null" json:"merchant_uid"`
	Status             string    `gorm:"type:varchar(20);not null" json:"status"`
	Amount             int64     `gorm:"not null" json:"amount"`
	RestorePointAmount int64     `gorm:"not null;default:0" json:"restore_point_amount"`
	Memo               *string   `gorm:"type:text" json:"memo"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// PointTransaction is the point-ledger table. It is migrated with the rest of
// the schema but no service operation writes to it yet.
type PointTransaction struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	OrderID      *uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	Type         string     `gorm:"type:varchar(20);not null" json:"type"`
	Amount       int64      `gorm:"not null" json:"amount"`
	BalanceAfter int64      `gorm:"not null" json:"balance_after"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// RefundWholeRequest asks for a full-amount refund of one payment.
type RefundWholeRequest struct {
	OrderID     uuid.UUID `json:"order_id" binding:"required"`
	PaymentID   uuid.UUID `json:"payment_id" binding:"required"`
	MerchantUID string    `json:"merchant_uid" binding:"required,max=64"`
	Amount      int64     `json:"amount" binding:"required,min=1,max=999999999"`
	Memo        *string   `json:"memo" binding:"omitempty,max=256"`
}

// PaymentEvent is the Kafka payload for payment lifecycle notifications.
type PaymentEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	PaymentID string    `json:"payment_id"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	Timestamp time.Time `json:"timestamp"`
}
