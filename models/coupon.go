package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CouponDiscountType distinguishes rate-based from amount-based coupons. The
// two are mutually exclusive: a percentage coupon must not carry a flat
// amount and vice versa.
type CouponDiscountType string

const (
	CouponDiscountPercentage CouponDiscountType = "percentage"
	CouponDiscountFlat       CouponDiscountType = "flat"
)

// Coupon is a discount template created by an administrator. Instances are
// handed to users as CouponWallet rows; the template itself is never consumed.
type Coupon struct {
	ID                uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Code              string             `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Description       *string            `gorm:"type:varchar(36)" json:"description"`
	DiscountType      CouponDiscountType `gorm:"type:varchar(20);not null" json:"discount_type"`
	DiscountRate      *int               `json:"discount_rate"`
	DiscountAmount    *int64             `json:"discount_amount"`
	MinOrderAmount    int64              `gorm:"not null;default:0" json:"min_order_amount"`
	MaxDiscountAmount int64              `gorm:"not null;default:0" json:"max_discount_amount"`
	ValidFrom         time.Time          `gorm:"not null" json:"valid_from"`
	ValidUntil        time.Time          `gorm:"not null" json:"valid_until"`
	IsActive          bool               `gorm:"not null;default:true" json:"is_active"`
	CreatedAt         time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt     `gorm:"index" json:"-"`
}

// CouponWallet is one user's claim on one coupon. The composite unique index
// is the guard against double-claiming: concurrent claims race to the insert
// and the loser gets a conflict.
type CouponWallet struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_wallet_user_coupon" json:"user_id"`
	CouponID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_wallet_user_coupon" json:"coupon_id"`
	IsUsed    bool       `gorm:"not null;default:false" json:"is_used"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// CreateCouponRequest is the admin payload for a new coupon template.
type CreateCouponRequest struct {
	Code              string             `json:"code" binding:"required,min=3,max=32"`
	Description       *string            `json:"description" binding:"omitempty,max=36"`
	DiscountType      CouponDiscountType `json:"discount_type" binding:"required,oneof=percentage flat"`
	DiscountRate      *int               `json:"discount_rate"`
	DiscountAmount    *int64             `json:"discount_amount"`
	MinOrderAmount    int64              `json:"min_order_amount" binding:"min=0,max=999999999"`
	MaxDiscountAmount int64              `json:"max_discount_amount" binding:"min=0,max=999999999"`
	ValidFrom         time.Time          `json:"valid_from" binding:"required"`
	ValidUntil        time.Time          `json:"valid_until" binding:"required"`
}

// DeactivateCouponRequest soft-disables a coupon; history is preserved.
type DeactivateCouponRequest struct {
	CouponID uuid.UUID `json:"coupon_id" binding:"required"`
}

// IssueWalletRequest claims a coupon for a user by its public code.
type IssueWalletRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Code   string    `json:"code" binding:"required,max=32"`
}

// UseWalletRequest redeems a wallet entry during checkout.
type UseWalletRequest struct {
	WalletID uuid.UUID `json:"coupon_wallet_id" binding:"required"`
}
