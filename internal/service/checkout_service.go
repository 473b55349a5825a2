package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/repository"
	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/payment"
)

// Account identifies the authenticated caller.
type Account struct {
	UserID   string
	Email    string
	FullName string
}

type CheckoutInput struct {
	EventID   uint
	TicketID  uint
	PromoCode string
}

type CheckoutResult struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

type CheckoutURLs struct {
	Success string
	Cancel  string
}

type CheckoutService interface {
	CreateCheckout(ctx context.Context, account Account, in CheckoutInput) (*CheckoutResult, error)
}

type checkoutService struct {
	eventRepo   repository.EventRepository
	ticketRepo  repository.TicketRepository
	regRepo     repository.RegistrationRepository
	promos      PromoService
	fulfillment FulfillmentService
	gateway     payment.Gateway
	urls        CheckoutURLs
}

func NewCheckoutService(
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	regRepo repository.RegistrationRepository,
	promos PromoService,
	fulfillment FulfillmentService,
	gateway payment.Gateway,
	urls CheckoutURLs,
) CheckoutService {
	return &checkoutService{
		eventRepo:   eventRepo,
		ticketRepo:  ticketRepo,
		regRepo:     regRepo,
		promos:      promos,
		fulfillment: fulfillment,
		gateway:     gateway,
		urls:        urls,
	}
}

// CreateCheckout gates on availability and opens a hosted payment page.
// Nothing is written locally; the webhook does that once the payment settles.
func (s *checkoutService) CreateCheckout(ctx context.Context, account Account, in CheckoutInput) (*CheckoutResult, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, in.TicketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket %d: %w", in.TicketID, err)
	}
	event, err := s.eventRepo.FindByID(ctx, in.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find event %d: %w", in.EventID, err)
	}
	if ticket.EventID != event.ID {
		return nil, ErrTicketNotFound
	}
	if !event.Status.Purchasable() {
		return nil, ErrSalesClosed
	}

	db := s.regRepo.GetDB()
	registered, err := s.regRepo.CountByEvent(ctx, db, event.ID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	if newAvailability(event, registered).Available == 0 {
		return nil, ErrEventFull
	}
	if ticket.MaxParticipants != nil {
		sold, err := s.regRepo.CountByTicket(ctx, db, ticket.ID)
		if err != nil {
			return nil, fmt.Errorf("count ticket registrations: %w", err)
		}
		if sold >= int64(*ticket.MaxParticipants) {
			return nil, ErrTicketSoldOut
		}
	}

	amount := ticket.Price
	var promoID *uint
	if in.PromoCode != "" {
		quote, err := s.promos.Validate(ctx, in.PromoCode, event.ID, &ticket.ID)
		if err != nil {
			return nil, err
		}
		amount = *quote.FinalAmount
		promoID = &quote.Code.ID
	}

	if amount == 0 {
		return s.checkoutFree(ctx, account, event, ticket, promoID)
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		ProductName:    fmt.Sprintf("%s - %s", event.Title, ticket.Name),
		Description:    ticket.Description,
		UnitAmount:     amount,
		Currency:       ticket.Currency,
		CustomerEmail:  account.Email,
		SuccessURL:     s.urls.Success,
		CancelURL:      s.urls.Cancel,
		Metadata:       checkoutMetadata(account, event.ID, ticket.ID, promoID),
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		log.Printf("[Checkout] payment provider error for event %d ticket %d: %v", event.ID, ticket.ID, err)
		return nil, ErrPaymentUnavailable
	}
	return &CheckoutResult{SessionID: sess.ID, URL: sess.URL}, nil
}

// checkoutFree skips the payment provider when a promo code covers the full price.
func (s *checkoutService) checkoutFree(ctx context.Context, account Account, event *models.Event, ticket *models.Ticket, promoID *uint) (*CheckoutResult, error) {
	sessionID := "free_" + uuid.NewString()
	res, err := s.fulfillment.Fulfill(ctx, CheckoutCompletion{
		SessionID:     sessionID,
		UserID:        account.UserID,
		Email:         account.Email,
		FullName:      account.FullName,
		EventID:       event.ID,
		TicketID:      ticket.ID,
		PromoCodeID:   promoID,
		AmountTotal:   0,
		Currency:      ticket.Currency,
		PaymentStatus: "no_payment_required",
	})
	if err != nil {
		return nil, err
	}
	switch res.Outcome {
	case OutcomeOversold:
		return nil, ErrEventFull
	case OutcomeUnfulfillable:
		return nil, ErrTicketNotFound
	}
	return &CheckoutResult{
		SessionID: sessionID,
		URL:       strings.ReplaceAll(s.urls.Success, "{CHECKOUT_SESSION_ID}", sessionID),
	}, nil
}
