package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rackit-dev/birdie/models"
	"github.com/rackit-dev/birdie/repository"
	"github.com/rackit-dev/birdie/services"
)

// --- Mock Repository ---

type mockCouponRepo struct {
	coupons map[uuid.UUID]*models.Coupon
	wallets map[uuid.UUID]*models.CouponWallet
}

func newMockCouponRepo() *mockCouponRepo {
	return &mockCouponRepo{
		coupons: make(map[uuid.UUID]*models.Coupon),
		wallets: make(map[uuid.UUID]*models.CouponWallet),
	}
}

var errDuplicateKey = errors.New(`duplicate key value violates unique constraint`)

func (m *mockCouponRepo) Create(_ context.Context, c *models.Coupon) error {
	for _, existing := range m.coupons {
		if existing.Code == c.Code {
			return errDuplicateKey
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.coupons[c.ID] = c
	return nil
}

func (m *mockCouponRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Coupon, error) {
	c, ok := m.coupons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *mockCouponRepo) FindByCode(_ context.Context, code string) (*models.Coupon, error) {
	for _, c := range m.coupons {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCouponRepo) FindAll(_ context.Context, _, _ int) ([]models.Coupon, int64, error) {
	var result []models.Coupon
	for _, c := range m.coupons {
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (m *mockCouponRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	c, ok := m.coupons[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.IsActive = false
	return nil
}

func (m *mockCouponRepo) CreateWallet(_ context.Context, w *models.CouponWallet) error {
	for _, existing := range m.wallets {
		if existing.UserID == w.UserID && existing.CouponID == w.CouponID {
			return errDuplicateKey
		}
	}
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	m.wallets[w.ID] = w
	return nil
}

func (m *mockCouponRepo) FindWalletByID(_ context.Context, id uuid.UUID) (*models.CouponWallet, error) {
	w, ok := m.wallets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return w, nil
}

func (m *mockCouponRepo) FindWalletsByUser(_ context.Context, userID uuid.UUID) ([]models.CouponWallet, error) {
	var result []models.CouponWallet
	for _, w := range m.wallets {
		if w.UserID == userID {
			result = append(result, *w)
		}
	}
	return result, nil
}

func (m *mockCouponRepo) MarkWalletUsed(_ context.Context, id uuid.UUID) (int64, error) {
	w, ok := m.wallets[id]
	if !ok || w.IsUsed {
		return 0, nil
	}
	now := time.Now().UTC()
	w.IsUsed = true
	w.UsedAt = &now
	return 1, nil
}

func (m *mockCouponRepo) DeleteWallet(_ context.Context, id uuid.UUID) error {
	if _, ok := m.wallets[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.wallets, id)
	return nil
}

var _ repository.CouponRepository = (*mockCouponRepo)(nil)

// --- Helpers ---

func newCouponService(repo repository.CouponRepository) *services.CouponService {
	logger := zap.NewNop()
	return services.NewCouponService(repo, logger)
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func percentageCouponRequest(code string) *models.CreateCouponRequest {
	now := time.Now().UTC()
	return &models.CreateCouponRequest{
		Code:         code,
		DiscountType: models.CouponDiscountPercentage,
		DiscountRate: intPtr(10),
		ValidFrom:    now.Add(-time.Hour),
		ValidUntil:   now.Add(24 * time.Hour),
	}
}

// --- Tests ---

func TestCreateCoupon(t *testing.T) {
	ctx := context.Background()

	t.Run("percentage coupon created with uppercased code", func(t *testing.T) {
		svc := newCouponService(newMockCouponRepo())

		coupon, svcErr := svc.CreateCoupon(ctx, percentageCouponRequest("welcome10"))

		assert.Nil(t, svcErr)
		assert.Equal(t, "WELCOME10", coupon.Code)
		assert.True(t, coupon.IsActive)
		assert.Equal(t, models.CouponDiscountPercentage, coupon.DiscountType)
	})

	t.Run("percentage coupon requires a rate", func(t *testing.T) {
		svc := newCouponService(newMockCouponRepo())

		req := percentageCouponRequest("NORATE")
		req.DiscountRate = nil

		_, svcErr := svc.CreateCoupon(ctx, req)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
	})

	t.Run("percentage rate above 99 rejected", func(t *testing.T) {
		svc := newCouponService(newMockCouponRepo())

		req := percentageCouponRequest("FULLOFF")
		req.DiscountRate = intPtr(100)

		_, svcErr := svc.CreateCoupon(ctx, req)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
	})

	t.Run("percentage coupon must not carry a flat amount", func(t *testing.T) {
		svc := newCouponService(newMockCouponRepo())

		req := percentageCouponRequest("BOTH")
		req.DiscountAmount = int64Ptr(5000)

		_, svcErr := svc.CreateCoupon(ctx, req)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
	})

	t.Run("flat coupon requires a positive amount", func(t *testing.T) {
		svc := newCouponService(newMockCouponRepo())

		req := percentageCouponRequest("FLAT")
		req.DiscountType = models.CouponDiscountFlat
		req.DiscountRate = nil
		req.DiscountAmount = nil

		_, svcErr := svc.CreateCoupon(ctx, req)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
	})

	t.Run("flat coupon must not carry a rate", func(t *testing.T) {
		svc := newCouponService(newMockCouponRepo())

		req := percentageCouponRequest("FLAT2")
		req.DiscountType = models.CouponDiscountFlat
		req.DiscountAmount = int64Ptr(3000)

		_, svcErr := svc.CreateCoupon(ctx, req)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
	})

	t.Run("valid_from must precede valid_until", func(t *testing.T) {
		svc := newCouponService(newMockCouponRepo())

		req := percentageCouponRequest("BACKWARDS")
		req.ValidFrom, req.ValidUntil = req.ValidUntil, req.ValidFrom

		_, svcErr := svc.CreateCoupon(ctx, req)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
	})

	t.Run("expired window rejected", func(t *testing.T) {
		svc := newCouponService(newMockCouponRepo())

		req := percentageCouponRequest("EXPIRED")
		req.ValidFrom = time.Now().UTC().Add(-48 * time.Hour)
		req.ValidUntil = time.Now().UTC().Add(-24 * time.Hour)

		_, svcErr := svc.CreateCoupon(ctx, req)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
	})

	t.Run("duplicate code rejected with 409", func(t *testing.T) {
		svc := newCouponService(newMockCouponRepo())

		_, svcErr := svc.CreateCoupon(ctx, percentageCouponRequest("TWICE"))
		assert.Nil(t, svcErr)

		_, svcErr = svc.CreateCoupon(ctx, percentageCouponRequest("twice"))
		assert.NotNil(t, svcErr)
		assert.Equal(t, 409, svcErr.StatusCode)
	})
}

func TestIssueWallet(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*services.CouponService, *models.Coupon) {
		t.Helper()
		svc := newCouponService(newMockCouponRepo())
		coupon, svcErr := svc.CreateCoupon(ctx, percentageCouponRequest("SPRING"))
		assert.Nil(t, svcErr)
		return svc, coupon
	}

	t.Run("claim succeeds and code lookup is case-insensitive", func(t *testing.T) {
		svc, coupon := setup(t)
		userID := uuid.New()

		wallet, svcErr := svc.IssueWallet(ctx, &models.IssueWalletRequest{UserID: userID, Code: "spring"})

		assert.Nil(t, svcErr)
		assert.Equal(t, userID, wallet.UserID)
		assert.Equal(t, coupon.ID, wallet.CouponID)
		assert.False(t, wallet.IsUsed)
		assert.Nil(t, wallet.UsedAt)
	})

	t.Run("unknown code returns 404", func(t *testing.T) {
		svc, _ := setup(t)

		_, svcErr := svc.IssueWallet(ctx, &models.IssueWalletRequest{UserID: uuid.New(), Code: "NOPE"})
		assert.NotNil(t, svcErr)
		assert.Equal(t, 404, svcErr.StatusCode)
	})

	t.Run("inactive coupon cannot be claimed", func(t *testing.T) {
		svc, coupon := setup(t)

		svcErr := svc.DeactivateCoupon(ctx, coupon.ID)
		assert.Nil(t, svcErr)

		_, svcErr = svc.IssueWallet(ctx, &models.IssueWalletRequest{UserID: uuid.New(), Code: "SPRING"})
		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
		assert.Contains(t, svcErr.Message, "inactive")
	})

	t.Run("coupon outside its validity window cannot be claimed", func(t *testing.T) {
		repo := newMockCouponRepo()
		svc := newCouponService(repo)

		future := &models.Coupon{
			ID:           uuid.New(),
			Code:         "LATER",
			DiscountType: models.CouponDiscountPercentage,
			DiscountRate: intPtr(5),
			ValidFrom:    time.Now().UTC().Add(24 * time.Hour),
			ValidUntil:   time.Now().UTC().Add(48 * time.Hour),
			IsActive:     true,
		}
		repo.coupons[future.ID] = future

		_, svcErr := svc.IssueWallet(ctx, &models.IssueWalletRequest{UserID: uuid.New(), Code: "LATER"})
		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
		assert.Contains(t, strings.ToLower(svcErr.Message), "validity")
	})

	t.Run("second claim by the same user returns 409", func(t *testing.T) {
		svc, _ := setup(t)
		userID := uuid.New()

		_, svcErr := svc.IssueWallet(ctx, &models.IssueWalletRequest{UserID: userID, Code: "SPRING"})
		assert.Nil(t, svcErr)

		_, svcErr = svc.IssueWallet(ctx, &models.IssueWalletRequest{UserID: userID, Code: "SPRING"})
		assert.NotNil(t, svcErr)
		assert.Equal(t, 409, svcErr.StatusCode)
	})

	t.Run("different users can claim the same coupon", func(t *testing.T) {
		svc, _ := setup(t)

		_, svcErr := svc.IssueWallet(ctx, &models.IssueWalletRequest{UserID: uuid.New(), Code: "SPRING"})
		assert.Nil(t, svcErr)

		_, svcErr = svc.IssueWallet(ctx, &models.IssueWalletRequest{UserID: uuid.New(), Code: "SPRING"})
		assert.Nil(t, svcErr)
	})
}

func TestUseWallet(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*services.CouponService, *models.CouponWallet) {
		t.Helper()
		svc := newCouponService(newMockCouponRepo())
		_, svcErr := svc.CreateCoupon(ctx, percentageCouponRequest("CHECKOUT"))
		assert.Nil(t, svcErr)
		wallet, svcErr := svc.IssueWallet(ctx, &models.IssueWalletRequest{UserID: uuid.New(), Code: "CHECKOUT"})
		assert.Nil(t, svcErr)
		return svc, wallet
	}

	t.Run("redemption stamps used_at once", func(t *testing.T) {
		svc, wallet := setup(t)

		used, svcErr := svc.UseWallet(ctx, wallet.ID)
		assert.Nil(t, svcErr)
		assert.True(t, used.IsUsed)
		assert.NotNil(t, used.UsedAt)

		firstUsedAt := *used.UsedAt

		_, svcErr = svc.UseWallet(ctx, wallet.ID)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 409, svcErr.StatusCode)

		again, getErr := svc.GetWallet(ctx, wallet.ID)
		assert.Nil(t, getErr)
		assert.Equal(t, firstUsedAt, *again.UsedAt)
	})

	t.Run("unknown wallet returns 404", func(t *testing.T) {
		svc, _ := setup(t)

		_, svcErr := svc.UseWallet(ctx, uuid.New())
		assert.NotNil(t, svcErr)
		assert.Equal(t, 404, svcErr.StatusCode)
	})
}

func TestDeleteWallet(t *testing.T) {
	ctx := context.Background()
	svc := newCouponService(newMockCouponRepo())

	_, svcErr := svc.CreateCoupon(ctx, percentageCouponRequest("GONE"))
	assert.Nil(t, svcErr)
	wallet, svcErr := svc.IssueWallet(ctx, &models.IssueWalletRequest{UserID: uuid.New(), Code: "GONE"})
	assert.Nil(t, svcErr)

	assert.Nil(t, svc.DeleteWallet(ctx, wallet.ID))

	_, svcErr = svc.GetWallet(ctx, wallet.ID)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)

	delErr := svc.DeleteWallet(ctx, wallet.ID)
	assert.NotNil(t, delErr)
	assert.Equal(t, 404, delErr.StatusCode)
}
