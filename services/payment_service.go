package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rackit-dev/birdie/kafka"
	"github.com/rackit-dev/birdie/models"
	"github.com/rackit-dev/birdie/repository"
)

const eventPaymentSucceeded = "payment_intent.succeeded"

// WebhookResult tells the gateway what happened with its delivery. Unhandled
// event kinds are acknowledged as "ignored"; duplicate deliveries of an
// already-recorded transaction come back as "already_recorded".
type WebhookResult struct {
	Status    string     `json:"status"`
	PaymentID *uuid.UUID `json:"payment_id,omitempty"`
}

// PaymentService handles webhook ingestion and refunds.
type PaymentService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	gateway     PaymentGateway
	producer    kafka.ProducerAPI
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService. The producer may be nil.
func NewPaymentService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	gateway PaymentGateway,
	producer kafka.ProducerAPI,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		producer:    producer,
		logger:      logger,
	}
}

// HandleWebhook verifies an inbound gateway delivery and, for a paid
// transaction, records the payment. Amounts are taken from a follow-up
// gateway fetch, never from the delivered payload, so a forged client-side
// amount cannot land in the Payment table.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string, test bool) (*WebhookResult, *ServiceError) {
	eventType, transactionID, err := s.gateway.VerifyWebhook(payload, signature, test)
	if err != nil {
		s.logger.Warn("Webhook signature verification failed", zap.Bool("test", test), zap.Error(err))
		return nil, &ServiceError{StatusCode: 400, Message: "Webhook verification failed: " + err.Error()}
	}

	if eventType != eventPaymentSucceeded {
		s.logger.Info("Ignoring webhook event", zap.String("event_type", eventType))
		return &WebhookResult{Status: "ignored"}, nil
	}

	if existing, err := s.paymentRepo.FindPaymentByTransactionID(ctx, transactionID); err == nil {
		s.logger.Info("Duplicate webhook delivery",
			zap.String("transaction_id", transactionID),
			zap.String("payment_id", existing.ID.String()),
		)
		return &WebhookResult{Status: "already_recorded", PaymentID: &existing.ID}, nil
	}

	detail, err := s.gateway.FetchPayment(ctx, transactionID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Failed to fetch payment detail: " + err.Error()}
	}

	orderID, err := uuid.Parse(detail.OrderID)
	if err != nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Payment detail carries no valid order id"}
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 400, Message: "Order referenced by payment not found"}
		}
		s.logger.Error("Failed to load order for webhook", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load order"}
	}

	paidAt := detail.PaidAt
	payment := &models.Payment{
		OrderID:              order.ID,
		MerchantUID:          detail.MerchantUID,
		GatewayTransactionID: detail.TransactionID,
		Status:               models.PaymentStatusSuccess,
		Method:               detail.Method,
		Amount:               detail.Amount,
		PaidAt:               &paidAt,
	}

	if err := s.paymentRepo.CreatePayment(ctx, payment); err != nil {
		// A concurrent delivery can beat us to the insert; the unique index
		// on the transaction id turns that into a duplicate error.
		if isDuplicate(err) {
			if existing, ferr := s.paymentRepo.FindPaymentByTransactionID(ctx, transactionID); ferr == nil {
				return &WebhookResult{Status: "already_recorded", PaymentID: &existing.ID}, nil
			}
			return &WebhookResult{Status: "already_recorded"}, nil
		}
		s.logger.Error("Failed to record payment",
			zap.String("order_id", order.ID.String()),
			zap.String("transaction_id", transactionID),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to record payment"}
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", payment.ID.String()),
		zap.String("order_id", order.ID.String()),
		zap.Int64("amount", payment.Amount),
		zap.String("method", payment.Method),
	)

	s.publishPaymentEvent("payment.succeeded", payment)

	return &WebhookResult{Status: "recorded", PaymentID: &payment.ID}, nil
}

// RefundWhole refunds a payment in full. Preconditions are checked in order
// and the gateway is only called once they all pass; a gateway outcome other
// than "succeeded" is surfaced as an explicit upstream failure, never
// swallowed.
func (s *PaymentService) RefundWhole(ctx context.Context, req *models.RefundWholeRequest) (*models.Refund, *ServiceError) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to load order for refund", zap.String("order_id", req.OrderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load order"}
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, req.PaymentID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Payment not found"}
		}
		s.logger.Error("Failed to load payment for refund", zap.String("payment_id", req.PaymentID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to load payment"}
	}

	if payment.OrderID != order.ID {
		return nil, &ServiceError{StatusCode: 400, Message: "Payment does not belong to this order"}
	}
	if payment.Status != models.PaymentStatusSuccess {
		return nil, &ServiceError{StatusCode: 422, Message: "Payment is not in a refundable state"}
	}
	if req.Amount != payment.Amount {
		return nil, &ServiceError{StatusCode: 400, Message: "Refund amount must equal the original payment amount"}
	}

	cancellation, err := s.gateway.CancelPayment(ctx, payment.GatewayTransactionID, req.Amount)
	if err != nil {
		s.logger.Error("Gateway cancellation failed",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 502, Message: "Gateway cancellation failed: " + err.Error()}
	}
	if cancellation.Status != "succeeded" {
		s.logger.Error("Gateway cancellation not succeeded",
			zap.String("payment_id", payment.ID.String()),
			zap.String("gateway_status", cancellation.Status),
		)
		return nil, &ServiceError{StatusCode: 502, Message: "Gateway cancellation returned status " + cancellation.Status}
	}

	refund := &models.Refund{
		OrderID:            order.ID,
		PaymentID:          payment.ID,
		MerchantUID:        req.MerchantUID,
		Status:             models.RefundStatusComplete,
		Amount:             req.Amount,
		RestorePointAmount: 0,
		Memo:               req.Memo,
	}

	if err := s.paymentRepo.CreateRefund(ctx, refund); err != nil {
		s.logger.Error("Failed to record refund",
			zap.String("order_id", order.ID.String()),
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err),
		)
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to record refund"}
	}

	if err := s.orderRepo.UpdateStatus(ctx, order.ID, models.OrderStatusCanceled); err != nil {
		s.logger.Error("Failed to mark order canceled after refund",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("Refund completed",
		zap.String("refund_id", refund.ID.String()),
		zap.String("order_id", order.ID.String()),
		zap.Int64("amount", refund.Amount),
	)

	s.publishPaymentEvent("refund.completed", payment)

	return refund, nil
}

// GetPaymentByOrder returns the payment recorded for an order.
func (s *PaymentService) GetPaymentByOrder(ctx context.Context, orderID uuid.UUID) (*models.Payment, *ServiceError) {
	payment, err := s.paymentRepo.FindPaymentByOrderID(ctx, orderID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "Payment not found"}
		}
		s.logger.Error("Failed to fetch payment", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch payment"}
	}
	return payment, nil
}

func (s *PaymentService) publishPaymentEvent(eventType string, payment *models.Payment) {
	if s.producer == nil {
		return
	}

	event := models.PaymentEvent{
		Type:      eventType,
		OrderID:   payment.OrderID.String(),
		PaymentID: payment.ID.String(),
		Amount:    payment.Amount,
		Method:    payment.Method,
		Timestamp: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("Failed to marshal payment event", zap.Error(err))
		return
	}

	if err := s.producer.Publish(event.OrderID, data); err != nil {
		s.logger.Error("Failed to publish payment event",
			zap.String("type", eventType),
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
	}
}
