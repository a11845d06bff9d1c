package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog row. PriceWhole is the list price, PriceSell the
// current selling price; both in minor currency units.
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductNumber int            `gorm:"autoIncrement;uniqueIndex" json:"product_number"`
	Name          string         `gorm:"type:varchar(128);not null" json:"name"`
	PriceWhole    int64          `gorm:"not null" json:"price_whole"`
	PriceSell     int64          `gorm:"not null" json:"price_sell"`
	DiscountRate  int            `gorm:"not null" json:"discount_rate"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	CategoryMain  string         `gorm:"type:varchar(32);not null" json:"category_main"`
	CategorySub   string         `gorm:"type:varchar(32);not null" json:"category_sub"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// CreateProductRequest adds a catalog entry.
type CreateProductRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=128"`
	PriceWhole   int64  `json:"price_whole" binding:"required,gt=0,max=99999999"`
	PriceSell    int64  `json:"price_sell" binding:"required,gt=0,max=99999999"`
	DiscountRate int    `json:"discount_rate" binding:"min=0,max=100"`
	CategoryMain string `json:"category_main" binding:"required,min=2,max=32"`
	CategorySub  string `json:"category_sub" binding:"required,min=2,max=32"`
}

// UpdateProductRequest edits a catalog entry; nil fields are left alone.
type UpdateProductRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=128"`
	PriceWhole   *int64  `json:"price_whole" binding:"omitempty,gt=0,max=99999999"`
	PriceSell    *int64  `json:"price_sell" binding:"omitempty,gt=0,max=99999999"`
	DiscountRate *int    `json:"discount_rate" binding:"omitempty,min=0,max=100"`
	CategoryMain *string `json:"category_main" binding:"omitempty,min=2,max=32"`
	CategorySub  *string `json:"category_sub" binding:"omitempty,min=2,max=32"`
	IsActive     *bool   `json:"is_active"`
}
