package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

const testSecret = "whsec_test"

const completedPayload = `{
  "id": "evt_1",
  "object": "event",
  "api_version": "2020-08-27",
  "type": "checkout.session.completed",
  "data": {
    "object": {
      "id": "cs_test_1",
      "object": "checkout.session",
      "amount_total": 4500,
      "currency": "eur",
      "payment_status": "paid",
      "customer_email": "runner@example.com",
      "metadata": {"event_id": "1", "ticket_id": "2", "user_id": "user-1"}
    }
  }
}`

func sign(payload []byte, secret string) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{Payload: payload, Secret: secret}).Header
}

func TestParseWebhook_Valid(t *testing.T) {
	g := &StripeGateway{webhookSecret: testSecret}
	payload := []byte(completedPayload)

	evt, err := g.ParseWebhook(payload, sign(payload, testSecret))

	require.NoError(t, err)
	assert.Equal(t, "evt_1", evt.ID)
	assert.Equal(t, EventCheckoutCompleted, evt.Type)
	require.NotNil(t, evt.Checkout)
	assert.Equal(t, "cs_test_1", evt.Checkout.SessionID)
	assert.Equal(t, int64(4500), evt.Checkout.AmountTotal)
	assert.True(t, evt.Checkout.Settled())
	assert.Equal(t, "2", evt.Checkout.Metadata["ticket_id"])
}

func TestParseWebhook_WrongSecret(t *testing.T) {
	g := &StripeGateway{webhookSecret: testSecret}
	payload := []byte(completedPayload)

	evt, err := g.ParseWebhook(payload, sign(payload, "whsec_other"))

	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Nil(t, evt)
}

func TestParseWebhook_MissingHeader(t *testing.T) {
	g := &StripeGateway{webhookSecret: testSecret}

	_, err := g.ParseWebhook([]byte(completedPayload), "")

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseWebhook_TamperedBody(t *testing.T) {
	g := &StripeGateway{webhookSecret: testSecret}
	header := sign([]byte(completedPayload), testSecret)

	_, err := g.ParseWebhook([]byte(`{"id":"evt_2","type":"checkout.session.completed"}`), header)

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestParseWebhook_OtherEventType(t *testing.T) {
	g := &StripeGateway{webhookSecret: testSecret}
	payload := []byte(`{"id":"evt_3","object":"event","type":"charge.refunded","data":{"object":{"id":"ch_1"}}}`)

	evt, err := g.ParseWebhook(payload, sign(payload, testSecret))

	require.NoError(t, err)
	assert.Equal(t, "charge.refunded", evt.Type)
	assert.Nil(t, evt.Checkout)
}

func TestCreateCheckoutSession_BuildsParams(t *testing.T) {
	var got *stripe.CheckoutSessionParams
	g := &StripeGateway{newSession: func(p *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		got = p
		return &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/c/pay/cs_1"}, nil
	}}

	s, err := g.CreateCheckoutSession(context.Background(), CheckoutRequest{
		ProductName:   "Overbound Paris - Elite",
		UnitAmount:    4500,
		Currency:      "EUR",
		CustomerEmail: "runner@example.com",
		SuccessURL:    "https://example.com/ok",
		CancelURL:     "https://example.com/ko",
		Metadata:      map[string]string{"event_id": "1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_1", s.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_1", s.URL)
	require.NotNil(t, got)
	assert.Equal(t, "payment", *got.Mode)
	assert.Equal(t, "eur", *got.LineItems[0].PriceData.Currency)
	assert.Equal(t, int64(4500), *got.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "runner@example.com", *got.CustomerEmail)
	assert.Equal(t, "1", got.Metadata["event_id"])
}

func TestCreateCheckoutSession_ProviderError(t *testing.T) {
	g := &StripeGateway{newSession: func(p *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
		return nil, errors.New("card_declined")
	}}

	_, err := g.CreateCheckoutSession(context.Background(), CheckoutRequest{Currency: "eur"})

	assert.ErrorContains(t, err, "card_declined")
}
