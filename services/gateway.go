package services

import (
	"context"
	"time"
)

// GatewayPayment is the trusted payment detail fetched from the gateway after
// a webhook delivery. The delivered payload's amounts are never used directly;
// only what the gateway reports through its API counts.
type GatewayPayment struct {
	TransactionID string
	MerchantUID   string
	OrderID       string
	Method        string
	Amount        int64
	PaidAt        time.Time
}

// GatewayCancellation is the outcome of a cancel (refund) call.
type GatewayCancellation struct {
	Status string
}

// PaymentGateway abstracts the payment provider so the webhook and refund
// flows can be tested against a mock.
type PaymentGateway interface {
	// VerifyWebhook checks the payload signature against the production or
	// test secret and returns the event type plus the gateway transaction id
	// the event refers to (empty for events that carry none).
	VerifyWebhook(payload []byte, signature string, test bool) (eventType string, transactionID string, err error)
	// FetchPayment retrieves the full payment detail for a transaction.
	FetchPayment(ctx context.Context, transactionID string) (*GatewayPayment, error)
	// CancelPayment requests a refund of the full amount.
	CancelPayment(ctx context.Context, transactionID string, amount int64) (*GatewayCancellation, error)
}
