package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rackit-dev/birdie/models"
)

// CouponRepository defines the interface for coupon and coupon-wallet data
// access.
type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
	FindAll(ctx context.Context, page, limit int) ([]models.Coupon, int64, error)
	Deactivate(ctx context.Context, id uuid.UUID) error

	CreateWallet(ctx context.Context, wallet *models.CouponWallet) error
	FindWalletByID(ctx context.Context, id uuid.UUID) (*models.CouponWallet, error)
	FindWalletsByUser(ctx context.Context, userID uuid.UUID) ([]models.CouponWallet, error)
	// MarkWalletUsed stamps used_at with a conditional update; it reports how
	// many rows changed so callers can tell an already-used entry from a
	// missing one.
	MarkWalletUsed(ctx context.Context, id uuid.UUID) (int64, error)
	DeleteWallet(ctx context.Context, id uuid.UUID) error
}

// GormCouponRepository implements CouponRepository using GORM.
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository.
func NewGormCouponRepository(db *gorm.DB) CouponRepository {
	return &GormCouponRepository{db: db}
}

func (r *GormCouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *GormCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *GormCouponRepository) FindAll(ctx context.Context, page, limit int) ([]models.Coupon, int64, error) {
	var coupons []models.Coupon
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Coupon{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.
		Offset(offset).
		Limit(limit).
		Order("created_at DESC").
		Find(&coupons).Error; err != nil {
		return nil, 0, err
	}

	return coupons, total, nil
}

func (r *GormCouponRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Coupon{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormCouponRepository) CreateWallet(ctx context.Context, wallet *models.CouponWallet) error {
	return r.db.WithContext(ctx).Create(wallet).Error
}

func (r *GormCouponRepository) FindWalletByID(ctx context.Context, id uuid.UUID) (*models.CouponWallet, error) {
	var wallet models.CouponWallet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *GormCouponRepository) FindWalletsByUser(ctx context.Context, userID uuid.UUID) ([]models.CouponWallet, error) {
	var wallets []models.CouponWallet
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&wallets).Error; err != nil {
		return nil, err
	}
	return wallets, nil
}

func (r *GormCouponRepository) MarkWalletUsed(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CouponWallet{}).
		Where("id = ? AND is_used = ?", id, false).
		Updates(map[string]interface{}{
			"is_used": true,
			"used_at": gorm.Expr("NOW()"),
		})
	return result.RowsAffected, result.Error
}

func (r *GormCouponRepository) DeleteWallet(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CouponWallet{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
