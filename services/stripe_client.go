package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/refund"
	"github.com/stripe/stripe-go/v80/webhook"
)

// StripeGateway implements PaymentGateway against the Stripe API. The webhook
// secret differs between the production and test endpoints; the API key is
// shared.
type StripeGateway struct {
	WebhookSecret     string
	WebhookSecretTest string
}

// NewStripeGateway configures the Stripe SDK and returns the gateway client.
func NewStripeGateway(apiKey, webhookSecret, webhookSecretTest string) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{
		WebhookSecret:     webhookSecret,
		WebhookSecretTest: webhookSecretTest,
	}
}

func (g *StripeGateway) VerifyWebhook(payload []byte, signature string, test bool) (string, string, error) {
	secret := g.WebhookSecret
	if test {
		secret = g.WebhookSecretTest
	}

	event, err := webhook.ConstructEvent(payload, signature, secret)
	if err != nil {
		return "", "", err
	}

	var transactionID string
	if event.Type == "payment_intent.succeeded" {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return "", "", err
		}
		transactionID = pi.ID
	}

	return string(event.Type), transactionID, nil
}

func (g *StripeGateway) FetchPayment(ctx context.Context, transactionID string) (*GatewayPayment, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(transactionID, params)
	if err != nil {
		return nil, err
	}

	method := "card"
	if len(pi.PaymentMethodTypes) > 0 {
		method = pi.PaymentMethodTypes[0]
	}

	return &GatewayPayment{
		TransactionID: pi.ID,
		MerchantUID:   pi.Metadata["merchant_uid"],
		OrderID:       pi.Metadata["order_id"],
		Method:        method,
		Amount:        pi.Amount,
		PaidAt:        time.Unix(pi.Created, 0).UTC(),
	}, nil
}

func (g *StripeGateway) CancelPayment(ctx context.Context, transactionID string, amount int64) (*GatewayCancellation, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(transactionID),
		Amount:        stripe.Int64(amount),
	}
	params.Context = ctx

	ref, err := refund.New(params)
	if err != nil {
		return nil, err
	}

	return &GatewayCancellation{Status: string(ref.Status)}, nil
}
