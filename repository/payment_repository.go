package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rackit-dev/birdie/models"
)

// PaymentRepository defines the interface for payment and refund data access.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	FindPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	FindPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error)
	FindPaymentByTransactionID(ctx context.Context, txnID string) (*models.Payment, error)
	CreateRefund(ctx context.Context, refund *models.Refund) error
	FindRefundsByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.Refund, error)
}

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository.
func NewGormPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *GormPaymentRepository) FindPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepository) FindPaymentByOrderID(ctx context.Context, orderID uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepository) FindPaymentByTransactionID(ctx context.Context, txnID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("gateway_transaction_id = ?", txnID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormPaymentRepository) CreateRefund(ctx context.Context, refund *models.Refund) error {
	return r.db.WithContext(ctx).Create(refund).Error
}

func (r *GormPaymentRepository) FindRefundsByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.Refund, error) {
	var refunds []models.Refund
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&refunds).Error; err != nil {
		return nil, err
	}
	return refunds, nil
}
