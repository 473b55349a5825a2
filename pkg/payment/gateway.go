package payment

import (
	"context"
	"errors"
)

var ErrInvalidSignature = errors.New("invalid webhook signature")

// Gateway is the hosted payment provider as seen by the checkout and fulfillment services.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	ParseWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error)
}

type CheckoutRequest struct {
	ProductName    string
	Description    string
	UnitAmount     int64
	Currency       string
	CustomerEmail  string
	SuccessURL     string
	CancelURL      string
	Metadata       map[string]string
	IdempotencyKey string
}

type CheckoutSession struct {
	ID  string
	URL string
}

// CompletedCheckout is the subset of a checkout session the fulfillment needs.
type CompletedCheckout struct {
	SessionID     string            `json:"id"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	PaymentStatus string            `json:"payment_status"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

// Settled reports whether the provider considers the money collected.
func (c *CompletedCheckout) Settled() bool {
	return c.PaymentStatus == "paid" || c.PaymentStatus == "no_payment_required"
}

type WebhookEvent struct {
	ID   string
	Type string
	// Checkout is set for checkout.session.* events only.
	Checkout *CompletedCheckout
}
