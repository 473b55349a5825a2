package notify

import (
	"context"
	"time"
)

// Confirmation carries everything needed to tell an attendee their
// registration is confirmed. It is also the registration.confirmed message body.
type Confirmation struct {
	RegistrationID uint      `json:"registration_id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name,omitempty"`
	EventTitle     string    `json:"event_title"`
	EventDate      time.Time `json:"event_date"`
	EventLocation  string    `json:"event_location"`
	TicketName     string    `json:"ticket_name"`
	QRCodeToken    string    `json:"qr_code_token"`
	AmountTotal    int64     `json:"amount_total"`
	Currency       string    `json:"currency"`
	PendingReview  bool      `json:"pending_review"`
}

// Notifier dispatches a confirmation without blocking the caller.
// Failures are logged, never returned.
type Notifier interface {
	RegistrationConfirmed(ctx context.Context, c Confirmation)
}

type Multi []Notifier

func (m Multi) RegistrationConfirmed(ctx context.Context, c Confirmation) {
	for _, n := range m {
		n.RegistrationConfirmed(ctx, c)
	}
}

type Nop struct{}

func (Nop) RegistrationConfirmed(context.Context, Confirmation) {}
