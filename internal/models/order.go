package models

import "time"

type FulfillmentStatus string

const (
	FulfillmentFulfilled FulfillmentStatus = "fulfilled"
	// FulfillmentOversold marks a paid order that found the event full; it needs a refund.
	FulfillmentOversold FulfillmentStatus = "oversold"
	// FulfillmentUnfulfillable marks a paid order whose event or ticket no longer exists; it needs a refund.
	FulfillmentUnfulfillable FulfillmentStatus = "unfulfillable"
)

type Order struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	StripeSessionID   string            `gorm:"uniqueIndex;not null" json:"stripe_session_id"`
	UserID            *string           `gorm:"index" json:"user_id,omitempty"`
	Email             string            `json:"email"`
	EventID           uint              `gorm:"not null;index" json:"event_id"`
	TicketID          uint              `gorm:"not null" json:"ticket_id"`
	PromoCodeID       *uint             `json:"promo_code_id,omitempty"`
	AmountTotal       int64             `gorm:"not null" json:"amount_total"`
	Currency          string            `gorm:"type:varchar(3);not null" json:"currency"`
	PaymentStatus     string            `gorm:"type:varchar(30);not null" json:"payment_status"`
	FulfillmentStatus FulfillmentStatus `gorm:"type:varchar(20);not null;default:'fulfilled'" json:"fulfillment_status"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}
