package service

import (
	"errors"
	"strconv"
	"strings"

	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/payment"
)

// Keys attached to a checkout session and read back by fulfillment.
const (
	metaUserID      = "user_id"
	metaEmail       = "email"
	metaFullName    = "full_name"
	metaEventID     = "event_id"
	metaTicketID    = "ticket_id"
	metaPromoCodeID = "promo_code_id"
)

var errBadMetadata = errors.New("checkout metadata incomplete")

// CheckoutCompletion is a settled payment ready to be turned into an order.
type CheckoutCompletion struct {
	SessionID     string
	UserID        string
	Email         string
	FullName      string
	EventID       uint
	TicketID      uint
	PromoCodeID   *uint
	AmountTotal   int64
	Currency      string
	PaymentStatus string
}

func checkoutMetadata(account Account, eventID, ticketID uint, promoID *uint) map[string]string {
	m := map[string]string{
		metaUserID:   account.UserID,
		metaEmail:    account.Email,
		metaEventID:  strconv.FormatUint(uint64(eventID), 10),
		metaTicketID: strconv.FormatUint(uint64(ticketID), 10),
	}
	if account.FullName != "" {
		m[metaFullName] = account.FullName
	}
	if promoID != nil {
		m[metaPromoCodeID] = strconv.FormatUint(uint64(*promoID), 10)
	}
	return m
}

func completionFromCheckout(co *payment.CompletedCheckout) (CheckoutCompletion, error) {
	md := co.Metadata
	eventID, err := parseID(md[metaEventID])
	if err != nil {
		return CheckoutCompletion{}, errBadMetadata
	}
	ticketID, err := parseID(md[metaTicketID])
	if err != nil {
		return CheckoutCompletion{}, errBadMetadata
	}

	email := md[metaEmail]
	if email == "" {
		email = co.CustomerEmail
	}
	if email == "" || co.SessionID == "" {
		return CheckoutCompletion{}, errBadMetadata
	}

	c := CheckoutCompletion{
		SessionID:     co.SessionID,
		UserID:        md[metaUserID],
		Email:         strings.ToLower(email),
		FullName:      md[metaFullName],
		EventID:       eventID,
		TicketID:      ticketID,
		AmountTotal:   co.AmountTotal,
		Currency:      co.Currency,
		PaymentStatus: co.PaymentStatus,
	}
	if raw := md[metaPromoCodeID]; raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return CheckoutCompletion{}, errBadMetadata
		}
		c.PromoCodeID = &id
	}
	return c, nil
}

func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, errBadMetadata
	}
	return uint(v), nil
}
