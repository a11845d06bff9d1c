package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rackit-dev/birdie/models"
	"github.com/rackit-dev/birdie/repository"
)

// CouponListResponse is a paginated coupon listing.
type CouponListResponse struct {
	TotalCount int64           `json:"total_count"`
	Coupons    []models.Coupon `json:"coupons"`
}

// CouponService handles coupon templates and per-user wallet entries.
type CouponService struct {
	couponRepo repository.CouponRepository
	logger     *zap.Logger
}

// NewCouponService creates a new CouponService.
func NewCouponService(couponRepo repository.CouponRepository, logger *zap.Logger) *CouponService {
	return &CouponService{couponRepo: couponRepo, logger: logger}
}

// CreateCoupon validates and stores a new coupon template. The discount kind
// is exclusive: percentage coupons carry a rate, flat coupons an amount,
// never both.
func (s *CouponService) CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, *ServiceError) {
	switch req.DiscountType {
	case models.CouponDiscountPercentage:
		if req.DiscountRate == nil || *req.DiscountRate <= 0 || *req.DiscountRate > 99 {
			return nil, &ServiceError{StatusCode: 400, Message: "Percentage coupon requires discount_rate between 1 and 99"}
		}
		if req.DiscountAmount != nil {
			return nil, &ServiceError{StatusCode: 400, Message: "Percentage coupon must not set discount_amount"}
		}
	case models.CouponDiscountFlat:
		if req.DiscountAmount == nil || *req.DiscountAmount <= 0 {
			return nil, &ServiceError{StatusCode: 400, Message: "Flat coupon requires a positive discount_amount"}
		}
		if req.DiscountRate != nil {
			return nil, &ServiceError{StatusCode: 400, Message: "Flat coupon must not set discount_rate"}
		}
	default:
		return nil, &ServiceError{StatusCode: 400, Message: "discount_type must be percentage or flat"}
	}

	now := time.Now().UTC()
	if !req.ValidFrom.Before(req.ValidUntil) {
		return nil, &ServiceError{StatusCode: 400, Message: "valid_from must be before valid_until"}
	}
	if !req.ValidUntil.After(now) {
		return nil, &ServiceError{StatusCode: 400, Message: "valid_until must be in the future"}
	}

	coupon := &models.Coupon{
		Code:              strings.ToUpper(req.Code),
		Description:       req.Description,
		DiscountType:      req.DiscountType,
		DiscountRate:      req.DiscountRate,
		DiscountAmount:    req.DiscountAmount,
		MinOrderAmount:    req.MinOrderAmount,
		MaxDiscountAmount: req.MaxDiscountAmount,
		ValidFrom:         req.ValidFrom.UTC(),
		ValidUntil:        req.ValidUntil.UTC(),
		IsActive:          true,
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		if isDuplicate(err) {
			return nil, &ServiceError{StatusCode: 409, Message: "Coupon code already exists"}
		}
		s.logger.Error("Failed to create coupon", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create coupon"}
	}

	s.logger.Info("Coupon created",
		zap.String("code", coupon.Code),
		zap.String("type", string(coupon.DiscountType)),
	)
	return coupon, nil
}

// GetCoupon retrieves a coupon by id.
func (s *CouponService) GetCoupon(ctx context.Context, couponID uuid.UUID) (*models.Coupon, *ServiceError) {
	coupon, err := s.couponRepo.FindByID(ctx, couponID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Coupon not found"}
		}
		s.logger.Error("Failed to fetch coupon", zap.String("coupon_id", couponID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch coupon"}
	}
	return coupon, nil
}

// ListCoupons returns a page of coupons, newest first.
func (s *CouponService) ListCoupons(ctx context.Context, page, itemsPerPage int) (*CouponListResponse, *ServiceError) {
	coupons, total, err := s.couponRepo.FindAll(ctx, page, itemsPerPage)
	if err != nil {
		s.logger.Error("Failed to list coupons", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch coupons"}
	}
	return &CouponListResponse{TotalCount: total, Coupons: coupons}, nil
}

// DeactivateCoupon flips the active flag off; history stays intact.
func (s *CouponService) DeactivateCoupon(ctx context.Context, couponID uuid.UUID) *ServiceError {
	if err := s.couponRepo.Deactivate(ctx, couponID); err != nil {
		if isNotFound(err) {
			return &ServiceError{StatusCode: 404, Message: "Coupon not found"}
		}
		s.logger.Error("Failed to deactivate coupon", zap.String("coupon_id", couponID.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to deactivate coupon"}
	}

	s.logger.Info("Coupon deactivated", zap.String("coupon_id", couponID.String()))
	return nil
}

// IssueWallet claims a coupon for a user by code. The storage-level unique
// index on (user_id, coupon_id) is what actually prevents double claims;
// concurrent requests race to the insert and the loser gets the conflict.
func (s *CouponService) IssueWallet(ctx context.Context, req *models.IssueWalletRequest) (*models.CouponWallet, *ServiceError) {
	coupon, err := s.couponRepo.FindByCode(ctx, strings.ToUpper(req.Code))
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Coupon not found"}
		}
		s.logger.Error("Failed to fetch coupon by code", zap.String("code", req.Code), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch coupon"}
	}

	if !coupon.IsActive {
		return nil, &ServiceError{StatusCode: 400, Message: "Coupon is inactive"}
	}

	now := time.Now().UTC()
	if now.Before(coupon.ValidFrom) || now.After(coupon.ValidUntil) {
		return nil, &ServiceError{StatusCode: 400, Message: "Coupon is outside its validity window"}
	}

	wallet := &models.CouponWallet{
		UserID:   req.UserID,
		CouponID: coupon.ID,
	}

	if err := s.couponRepo.CreateWallet(ctx, wallet); err != nil {
		if isDuplicate(err) {
			return nil, &ServiceError{StatusCode: 409, Message: "Coupon already claimed by this user"}
		}
		s.logger.Error("Failed to create coupon wallet",
			zap.String("user_id", req.UserID.String()),
			zap.String("coupon_id", coupon.ID.String()),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to claim coupon"}
	}

	s.logger.Info("Coupon claimed",
		zap.String("user_id", req.UserID.String()),
		zap.String("code", coupon.Code),
	)
	return wallet, nil
}

// GetWallet retrieves one wallet entry.
func (s *CouponService) GetWallet(ctx context.Context, walletID uuid.UUID) (*models.CouponWallet, *ServiceError) {
	wallet, err := s.couponRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Coupon wallet entry not found"}
		}
		s.logger.Error("Failed to fetch coupon wallet", zap.String("wallet_id", walletID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch coupon wallet"}
	}
	return wallet, nil
}

// ListWalletsByUser returns all of a user's wallet entries.
func (s *CouponService) ListWalletsByUser(ctx context.Context, userID uuid.UUID) ([]models.CouponWallet, *ServiceError) {
	wallets, err := s.couponRepo.FindWalletsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list coupon wallets", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch coupon wallets"}
	}
	return wallets, nil
}

// UseWallet redeems a wallet entry. The conditional update only matches an
// unused row, so a second redemption of the same entry changes nothing and
// used_at keeps its original stamp.
func (s *CouponService) UseWallet(ctx context.Context, walletID uuid.UUID) (*models.CouponWallet, *ServiceError) {
	rows, err := s.couponRepo.MarkWalletUsed(ctx, walletID)
	if err != nil {
		s.logger.Error("Failed to mark coupon wallet used", zap.String("wallet_id", walletID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to use coupon"}
	}

	if rows == 0 {
		if _, err := s.couponRepo.FindWalletByID(ctx, walletID); err != nil {
			if isNotFound(err) {
				return nil, &ServiceError{StatusCode: 404, Message: "Coupon wallet entry not found"}
			}
			s.logger.Error("Failed to fetch coupon wallet", zap.String("wallet_id", walletID.String()), zap.Error(err))
			return nil, &ServiceError{StatusCode: 500, Message: "Failed to use coupon"}
		}
		return nil, &ServiceError{StatusCode: 409, Message: "Coupon has already been used"}
	}

	wallet, svcErr := s.GetWallet(ctx, walletID)
	if svcErr != nil {
		return nil, svcErr
	}

	s.logger.Info("Coupon used", zap.String("wallet_id", walletID.String()))
	return wallet, nil
}

// DeleteWallet removes a wallet entry.
func (s *CouponService) DeleteWallet(ctx context.Context, walletID uuid.UUID) *ServiceError {
	if err := s.couponRepo.DeleteWallet(ctx, walletID); err != nil {
		if isNotFound(err) {
			return &ServiceError{StatusCode: 404, Message: "Coupon wallet entry not found"}
		}
		s.logger.Error("Failed to delete coupon wallet", zap.String("wallet_id", walletID.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete coupon wallet"}
	}
	return nil
}
