package services_test

import (
	"context"
	"errors"
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

type mockPaymentRepo struct {
	payments map[uuid.UUID]*models.Payment
	refunds  map[uuid.UUID]*models.Refund
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{
		payments: make(map[uuid.UUID]*models.Payment),
		refunds:  make(map[uuid.UUID]*models.Refund),
	}
}

func (m *mockPaymentRepo) CreatePayment(_ context.Context, p *models.Payment) error {
	for _, existing := range m.payments {
		if existing.GatewayTransactionID == p.GatewayTransactionID {
			return errDuplicateKey
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	m.payments[p.ID] = p
	return nil
}

func (m *mockPaymentRepo) FindPaymentByID(_ context.Context, id uuid.UUID) (*models.Payment, error) {
	p, ok := m.payments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockPaymentRepo) FindPaymentByOrderID(_ context.Context, orderID uuid.UUID) (*models.Payment, error) {
	for _, p := range m.payments {
		if p.OrderID == orderID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentRepo) FindPaymentByTransactionID(_ context.Context, txnID string) (*models.Payment, error) {
	for _, p := range m.payments {
		if p.GatewayTransactionID == txnID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentRepo) CreateRefund(_ context.Context, r *models.Refund) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	m.refunds[r.ID] = r
	return nil
}

func (m *mockPaymentRepo) FindRefundsByOrderID(_ context.Context, orderID uuid.UUID) ([]models.Refund, error) {
	var result []models.Refund
	for _, r := range m.refunds {
		if r.OrderID == orderID {
			result = append(result, *r)
		}
	}
	return result, nil
}

var _ repository.PaymentRepository = (*mockPaymentRepo)(nil)

// --- Mock Gateway ---

type mockGateway struct {
	verifyErr     error
	eventType     string
	transactionID string

	payment  *services.GatewayPayment
	fetchErr error

	cancellation *services.GatewayCancellation
	cancelErr    error
	cancelCalls  int
	fetchCalls   int
}

func (m *mockGateway) VerifyWebhook(_ []byte, _ string, _ bool) (string, string, error) {
	if m.verifyErr != nil {
		return "", "", m.verifyErr
	}
	return m.eventType, m.transactionID, nil
}

func (m *mockGateway) FetchPayment(_ context.Context, _ string) (*services.GatewayPayment, error) {
	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.payment, nil
}

func (m *mockGateway) CancelPayment(_ context.Context, _ string, _ int64) (*services.GatewayCancellation, error) {
	m.cancelCalls++
	if m.cancelErr != nil {
		return nil, m.cancelErr
	}
	return m.cancellation, nil
}

var _ services.PaymentGateway = (*mockGateway)(nil)

// --- Helpers ---

type paymentFixture struct {
	svc         *services.PaymentService
	orderRepo   *mockOrderRepo
	paymentRepo *mockPaymentRepo
	gateway     *mockGateway
	producer    *mockProducer
	order       *models.Order
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	orderRepo := newMockOrderRepo()
	paymentRepo := newMockPaymentRepo()
	gateway := &mockGateway{}
	producer := &mockProducer{}

	order := &models.Order{
		UserID:        uuid.New(),
		Status:        models.OrderStatusPendingPayment,
		SubtotalPrice: 7500,
		TotalPrice:    7500,
	}
	err := orderRepo.CreateWithItems(context.Background(), order, nil)
	assert.NoError(t, err)

	svc := services.NewPaymentService(orderRepo, paymentRepo, gateway, producer, zap.NewNop())
	return &paymentFixture{
		svc:         svc,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		producer:    producer,
		order:       order,
	}
}

func (f *paymentFixture) succeededPayment(txnID string) {
	f.gateway.eventType = "payment_intent.succeeded"
	f.gateway.transactionID = txnID
	f.gateway.payment = &services.GatewayPayment{
		TransactionID: txnID,
		MerchantUID:   "muid_20260829_0001",
		OrderID:       f.order.ID.String(),
		Method:        "card",
		Amount:        7500,
		PaidAt:        time.Now().UTC(),
	}
}

// --- Tests ---

func TestHandleWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid signature rejected before anything is written", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.gateway.verifyErr = errors.New("signature mismatch")

		_, svcErr := f.svc.HandleWebhook(ctx, []byte("{}"), "t=1,v1=bad", false)

		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
		assert.Empty(t, f.paymentRepo.payments)
		assert.Zero(t, f.gateway.fetchCalls)
	})

	t.Run("unhandled event types are acknowledged as ignored", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.gateway.eventType = "payment_intent.created"

		result, svcErr := f.svc.HandleWebhook(ctx, []byte("{}"), "sig", false)

		assert.Nil(t, svcErr)
		assert.Equal(t, "ignored", result.Status)
		assert.Empty(t, f.paymentRepo.payments)
	})

	t.Run("succeeded payment recorded from gateway detail", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.succeededPayment("pi_3Qx001")

		result, svcErr := f.svc.HandleWebhook(ctx, []byte("{}"), "sig", false)

		assert.Nil(t, svcErr)
		assert.Equal(t, "recorded", result.Status)
		assert.NotNil(t, result.PaymentID)

		payment := f.paymentRepo.payments[*result.PaymentID]
		assert.Equal(t, f.order.ID, payment.OrderID)
		assert.Equal(t, "pi_3Qx001", payment.GatewayTransactionID)
		assert.Equal(t, models.PaymentStatusSuccess, payment.Status)
		assert.Equal(t, int64(7500), payment.Amount)
		assert.NotNil(t, payment.PaidAt)

		assert.Len(t, f.producer.messages, 1)
	})

	t.Run("duplicate delivery collapses into one payment row", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.succeededPayment("pi_3Qx002")

		first, svcErr := f.svc.HandleWebhook(ctx, []byte("{}"), "sig", false)
		assert.Nil(t, svcErr)
		assert.Equal(t, "recorded", first.Status)

		second, svcErr := f.svc.HandleWebhook(ctx, []byte("{}"), "sig", false)
		assert.Nil(t, svcErr)
		assert.Equal(t, "already_recorded", second.Status)
		assert.Equal(t, *first.PaymentID, *second.PaymentID)
		assert.Len(t, f.paymentRepo.payments, 1)
	})

	t.Run("payment referencing an unknown order rejected", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.succeededPayment("pi_3Qx003")
		f.gateway.payment.OrderID = uuid.New().String()

		_, svcErr := f.svc.HandleWebhook(ctx, []byte("{}"), "sig", false)

		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
		assert.Empty(t, f.paymentRepo.payments)
	})

	t.Run("payment detail without a parsable order id rejected", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.succeededPayment("pi_3Qx004")
		f.gateway.payment.OrderID = "not-a-uuid"

		_, svcErr := f.svc.HandleWebhook(ctx, []byte("{}"), "sig", false)

		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
		assert.Empty(t, f.paymentRepo.payments)
	})

	t.Run("gateway fetch failure rejected", func(t *testing.T) {
		f := newPaymentFixture(t)
		f.succeededPayment("pi_3Qx005")
		f.gateway.fetchErr = errors.New("api unavailable")

		_, svcErr := f.svc.HandleWebhook(ctx, []byte("{}"), "sig", false)

		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
		assert.Empty(t, f.paymentRepo.payments)
	})
}

func TestRefundWhole(t *testing.T) {
	ctx := context.Background()

	recorded := func(t *testing.T) (*paymentFixture, *models.Payment) {
		t.Helper()
		f := newPaymentFixture(t)
		f.succeededPayment("pi_3Qr001")
		result, svcErr := f.svc.HandleWebhook(ctx, []byte("{}"), "sig", false)
		assert.Nil(t, svcErr)
		f.gateway.cancellation = &services.GatewayCancellation{Status: "succeeded"}
		return f, f.paymentRepo.payments[*result.PaymentID]
	}

	refundRequest := func(f *paymentFixture, p *models.Payment) *models.RefundWholeRequest {
		return &models.RefundWholeRequest{
			OrderID:     f.order.ID,
			PaymentID:   p.ID,
			MerchantUID: p.MerchantUID,
			Amount:      p.Amount,
		}
	}

	t.Run("whole refund records the refund and cancels the order", func(t *testing.T) {
		f, payment := recorded(t)

		refund, svcErr := f.svc.RefundWhole(ctx, refundRequest(f, payment))

		assert.Nil(t, svcErr)
		assert.Equal(t, models.RefundStatusComplete, refund.Status)
		assert.Equal(t, payment.Amount, refund.Amount)
		assert.Equal(t, int64(0), refund.RestorePointAmount)
		assert.Equal(t, models.OrderStatusCanceled, f.order.Status)
		assert.Len(t, f.paymentRepo.refunds, 1)
	})

	t.Run("unknown order returns 404", func(t *testing.T) {
		f, payment := recorded(t)

		req := refundRequest(f, payment)
		req.OrderID = uuid.New()

		_, svcErr := f.svc.RefundWhole(ctx, req)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 404, svcErr.StatusCode)
	})

	t.Run("unknown payment returns 404", func(t *testing.T) {
		f, payment := recorded(t)

		req := refundRequest(f, payment)
		req.PaymentID = uuid.New()

		_, svcErr := f.svc.RefundWhole(ctx, req)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 404, svcErr.StatusCode)
	})

	t.Run("payment bound to a different order rejected", func(t *testing.T) {
		f, payment := recorded(t)

		other := &models.Order{UserID: uuid.New(), Status: models.OrderStatusPendingPayment}
		assert.NoError(t, f.orderRepo.CreateWithItems(ctx, other, nil))

		req := refundRequest(f, payment)
		req.OrderID = other.ID

		_, svcErr := f.svc.RefundWhole(ctx, req)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
		assert.Zero(t, f.gateway.cancelCalls)
	})

	t.Run("non-refundable payment status rejected with 422", func(t *testing.T) {
		f, payment := recorded(t)
		payment.Status = models.PaymentStatusFailed

		_, svcErr := f.svc.RefundWhole(ctx, refundRequest(f, payment))
		assert.NotNil(t, svcErr)
		assert.Equal(t, 422, svcErr.StatusCode)
		assert.Zero(t, f.gateway.cancelCalls)
	})

	t.Run("partial amount rejected before the gateway is called", func(t *testing.T) {
		f, payment := recorded(t)

		req := refundRequest(f, payment)
		req.Amount = payment.Amount - 100

		_, svcErr := f.svc.RefundWhole(ctx, req)
		assert.NotNil(t, svcErr)
		assert.Equal(t, 400, svcErr.StatusCode)
		assert.Zero(t, f.gateway.cancelCalls)
		assert.Empty(t, f.paymentRepo.refunds)
	})

	t.Run("gateway error surfaces as 502 with no refund row", func(t *testing.T) {
		f, payment := recorded(t)
		f.gateway.cancelErr = errors.New("refund api down")

		_, svcErr := f.svc.RefundWhole(ctx, refundRequest(f, payment))
		assert.NotNil(t, svcErr)
		assert.Equal(t, 502, svcErr.StatusCode)
		assert.Empty(t, f.paymentRepo.refunds)
		assert.Equal(t, models.OrderStatusPendingPayment, f.order.Status)
	})

	t.Run("non-succeeded gateway outcome surfaces as 502", func(t *testing.T) {
		f, payment := recorded(t)
		f.gateway.cancellation = &services.GatewayCancellation{Status: "pending"}

		_, svcErr := f.svc.RefundWhole(ctx, refundRequest(f, payment))
		assert.NotNil(t, svcErr)
		assert.Equal(t, 502, svcErr.StatusCode)
		assert.Contains(t, svcErr.Message, "pending")
		assert.Empty(t, f.paymentRepo.refunds)
	})
}

func TestGetPaymentByOrder(t *testing.T) {
	ctx := context.Background()
	f := newPaymentFixture(t)
	f.succeededPayment("pi_3Qg001")

	_, svcErr := f.svc.HandleWebhook(ctx, []byte("{}"), "sig", false)
	assert.Nil(t, svcErr)

	payment, svcErr := f.svc.GetPaymentByOrder(ctx, f.order.ID)
	assert.Nil(t, svcErr)
	assert.Equal(t, "pi_3Qg001", payment.GatewayTransactionID)

	_, svcErr = f.svc.GetPaymentByOrder(ctx, uuid.New())
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}
