package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rackit-dev/birdie/models"
)

// CartRepository defines the interface for cart-item data access.
type CartRepository interface {
	Create(ctx context.Context, item *models.CartItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error)
	// FindMatching looks for an existing row with the same user, product and
	// option selections so the service can reject duplicate adds.
	FindMatching(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	Update(ctx context.Context, item *models.CartItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository.
func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormCartRepository) FindMatching(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	var existing models.CartItem
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID)

	query = whereNullable(query, "option_1_value", item.Option1Value)
	query = whereNullable(query, "option_2_value", item.Option2Value)
	query = whereNullable(query, "option_3_value", item.Option3Value)

	if err := query.First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormCartRepository) Update(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func whereNullable(query *gorm.DB, column string, value *string) *gorm.DB {
	if value == nil {
		return query.Where(column + " IS NULL")
	}
	return query.Where(column+" = ?", *value)
}
