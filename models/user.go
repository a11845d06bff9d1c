package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account row. Password stores the bcrypt hash; it is nil for
// social-login accounts that authenticate through a provider.
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string         `gorm:"type:varchar(32);not null" json:"name"`
	Email      string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"email"`
	Password   *string        `gorm:"type:varchar(64)" json:"-"`
	Provider   *string        `gorm:"type:varchar(32)" json:"provider"`
	ProviderID *string        `gorm:"type:varchar(32)" json:"provider_id"`
	Memo       *string        `gorm:"type:text" json:"memo"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// CreateUserRequest registers a new account.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=32"`
	Email    string `json:"email" binding:"required,email,max=64"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

// UpdateUserRequest changes name and/or password; empty fields are left alone.
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=32"`
	Password *string `json:"password" binding:"omitempty,min=8,max=64"`
}
