package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product (with up to three option selections) in a user's
// cart. Rows are hard-deleted on removal.
type CartItem struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	Option1Type    *string   `gorm:"type:varchar(32)" json:"option_type_1"`
	Option1Value   *string   `gorm:"type:varchar(32)" json:"option_1"`
	IsOption1Active *bool    `json:"is_option_1_active"`
	Option2Type    *string   `gorm:"type:varchar(32)" json:"option_type_2"`
	Option2Value   *string   `gorm:"type:varchar(32)" json:"option_2"`
	IsOption2Active *bool    `json:"is_option_2_active"`
	Option3Type    *string   `gorm:"type:varchar(32)" json:"option_type_3"`
	Option3Value   *string   `gorm:"type:varchar(32)" json:"option_3"`
	IsOption3Active *bool    `json:"is_option_3_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AddCartItemRequest puts a product into a user's cart.
type AddCartItemRequest struct {
	UserID       uuid.UUID `json:"user_id" binding:"required"`
	ProductID    uuid.UUID `json:"product_id" binding:"required"`
	Quantity     int       `json:"quantity" binding:"required,min=1"`
	Option1Type  *string   `json:"option_type_1" binding:"omitempty,max=32"`
	Option1Value *string   `json:"option_1" binding:"omitempty,max=32"`
	Option2Type  *string   `json:"option_type_2" binding:"omitempty,max=32"`
	Option2Value *string   `json:"option_2" binding:"omitempty,max=32"`
	Option3Type  *string   `json:"option_type_3" binding:"omitempty,max=32"`
	Option3Value *string   `json:"option_3" binding:"omitempty,max=32"`
}

// UpdateCartItemRequest changes quantity or toggles the row active flag.
type UpdateCartItemRequest struct {
	Quantity *int  `json:"quantity" binding:"omitempty,min=1"`
	IsActive *bool `json:"is_active"`
}
