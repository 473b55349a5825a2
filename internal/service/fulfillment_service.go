package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/notify"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/repository"
	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/payment"
)

type Outcome string

const (
	OutcomeFulfilled Outcome = "fulfilled"
	OutcomeOversold  Outcome = "oversold"
	// OutcomeUnfulfillable means the event or ticket was deleted while the session was open.
	OutcomeUnfulfillable Outcome = "unfulfillable"
	// OutcomeDuplicate means the session was already fulfilled by an earlier delivery.
	OutcomeDuplicate Outcome = "duplicate"
	// OutcomeIgnored covers events that carry nothing to fulfill.
	OutcomeIgnored Outcome = "ignored"
)

type FulfillmentResult struct {
	Outcome      Outcome
	Order        *models.Order
	Registration *models.Registration
}

type FulfillmentService interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*FulfillmentResult, error)
	Fulfill(ctx context.Context, c CheckoutCompletion) (*FulfillmentResult, error)
}

type fulfillmentService struct {
	orderRepo  repository.OrderRepository
	eventRepo  repository.EventRepository
	ticketRepo repository.TicketRepository
	regRepo    repository.RegistrationRepository
	promoRepo  repository.PromoCodeRepository
	gateway    payment.Gateway
	notifier   notify.Notifier
	runTx      txRunner
	tracer     trace.Tracer
}

func NewFulfillmentService(
	orderRepo repository.OrderRepository,
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	regRepo repository.RegistrationRepository,
	promoRepo repository.PromoCodeRepository,
	gateway payment.Gateway,
	notifier notify.Notifier,
) FulfillmentService {
	return &fulfillmentService{
		orderRepo:  orderRepo,
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
		regRepo:    regRepo,
		promoRepo:  promoRepo,
		gateway:    gateway,
		notifier:   notifier,
		runTx:      gormTx(orderRepo.GetDB()),
		tracer:     otel.Tracer("race-registration/fulfillment"),
	}
}

// HandleWebhook verifies the signature before anything else. Only settled
// checkout sessions reach the database.
func (s *fulfillmentService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*FulfillmentResult, error) {
	ev, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return nil, err
	}

	switch ev.Type {
	case payment.EventCheckoutCompleted, payment.EventCheckoutAsyncPaymentPassed:
	default:
		return &FulfillmentResult{Outcome: OutcomeIgnored}, nil
	}
	if ev.Checkout == nil || !ev.Checkout.Settled() {
		log.Printf("[Webhook] %s %s not settled yet, waiting", ev.Type, ev.ID)
		return &FulfillmentResult{Outcome: OutcomeIgnored}, nil
	}

	completion, err := completionFromCheckout(ev.Checkout)
	if err != nil {
		// retrying will not fix the payload
		log.Printf("[Webhook] session %s skipped: %v (metadata=%v)", ev.Checkout.SessionID, err, ev.Checkout.Metadata)
		return &FulfillmentResult{Outcome: OutcomeIgnored}, nil
	}
	return s.Fulfill(ctx, completion)
}

// Fulfill records the order and, capacity permitting, the registration in one
// transaction. The event row is locked so concurrent fulfillments for the same
// event see each other's registrations.
func (s *fulfillmentService) Fulfill(ctx context.Context, c CheckoutCompletion) (*FulfillmentResult, error) {
	ctx, span := s.tracer.Start(ctx, "fulfillment.Fulfill", trace.WithAttributes(
		attribute.String("checkout.session_id", c.SessionID),
		attribute.Int64("event.id", int64(c.EventID)),
		attribute.Int64("ticket.id", int64(c.TicketID)),
	))
	defer span.End()

	res := &FulfillmentResult{}
	var event *models.Event
	var ticket *models.Ticket

	err := s.runTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.orderRepo.FindBySessionID(ctx, tx, c.SessionID); err == nil {
			res.Outcome = OutcomeDuplicate
			return nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find order: %w", err)
		}

		var err error
		event, ticket, err = s.lookup(ctx, tx, c)
		if err != nil {
			return err
		}

		order := &models.Order{
			StripeSessionID:   c.SessionID,
			UserID:            optional(c.UserID),
			Email:             c.Email,
			EventID:           c.EventID,
			TicketID:          c.TicketID,
			PromoCodeID:       c.PromoCodeID,
			AmountTotal:       c.AmountTotal,
			Currency:          c.Currency,
			PaymentStatus:     c.PaymentStatus,
			FulfillmentStatus: models.FulfillmentFulfilled,
		}
		full := false
		if event == nil || ticket == nil {
			order.FulfillmentStatus = models.FulfillmentUnfulfillable
			res.Outcome = OutcomeUnfulfillable
		} else {
			full, err = s.full(ctx, tx, event, ticket)
			if err != nil {
				return err
			}
			if full {
				order.FulfillmentStatus = models.FulfillmentOversold
			}
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		res.Order = order

		if res.Outcome == OutcomeUnfulfillable {
			return nil
		}
		if full {
			res.Outcome = OutcomeOversold
			return nil
		}

		if c.PromoCodeID != nil {
			ok, err := s.promoRepo.IncrementUsage(ctx, tx, *c.PromoCodeID)
			if err != nil {
				return fmt.Errorf("increment promo usage: %w", err)
			}
			if !ok {
				// the buyer already paid the discounted price
				log.Printf("[Fulfillment] promo %d over its usage limit on session %s", *c.PromoCodeID, c.SessionID)
			}
		}

		approval := models.ApprovalApproved
		if ticket.RequiresDocument {
			approval = models.ApprovalPending
		}
		transferToken := uuid.NewString()
		reg := &models.Registration{
			EventID:        event.ID,
			TicketID:       ticket.ID,
			UserID:         optional(c.UserID),
			Email:          c.Email,
			OrderID:        &order.ID,
			QRCodeToken:    uuid.NewString(),
			TransferToken:  &transferToken,
			ApprovalStatus: approval,
		}
		if err := s.regRepo.Create(ctx, tx, reg); err != nil {
			return fmt.Errorf("create registration: %w", err)
		}
		res.Registration = reg
		res.Outcome = OutcomeFulfilled
		return nil
	})
	if err != nil {
		// a concurrent delivery of the same session won the insert
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("[Fulfillment] session %s fulfilled concurrently", c.SessionID)
			return &FulfillmentResult{Outcome: OutcomeDuplicate}, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("fulfillment.outcome", string(res.Outcome)))

	switch res.Outcome {
	case OutcomeDuplicate:
		log.Printf("[Fulfillment] session %s already fulfilled, skipping", c.SessionID)
	case OutcomeUnfulfillable:
		log.Printf("[Fulfillment] session %s paid %d %s but event %d / ticket %d no longer exist: order %d needs a refund",
			c.SessionID, c.AmountTotal, c.Currency, c.EventID, c.TicketID, res.Order.ID)
	case OutcomeOversold:
		log.Printf("[Fulfillment] session %s paid %d %s but event %d is full: order %d needs a refund",
			c.SessionID, c.AmountTotal, c.Currency, c.EventID, res.Order.ID)
	case OutcomeFulfilled:
		log.Printf("[Fulfillment] session %s -> order %d, registration %d", c.SessionID, res.Order.ID, res.Registration.ID)
		s.notifier.RegistrationConfirmed(ctx, notify.Confirmation{
			RegistrationID: res.Registration.ID,
			Email:          c.Email,
			FullName:       c.FullName,
			EventTitle:     event.Title,
			EventDate:      event.Date,
			EventLocation:  event.Location,
			TicketName:     ticket.Name,
			QRCodeToken:    res.Registration.QRCodeToken,
			AmountTotal:    c.AmountTotal,
			Currency:       c.Currency,
			PendingReview:  res.Registration.ApprovalStatus == models.ApprovalPending,
		})
	}
	return res, nil
}

// lookup locks the event and loads its ticket. Either is nil when it no longer
// exists, or when the ticket belongs to another event.
func (s *fulfillmentService) lookup(ctx context.Context, tx *gorm.DB, c CheckoutCompletion) (*models.Event, *models.Ticket, error) {
	event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, c.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("lock event %d: %w", c.EventID, err)
	}
	ticket, err := s.ticketRepo.FindByID(ctx, c.TicketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return event, nil, nil
		}
		return nil, nil, fmt.Errorf("find ticket %d: %w", c.TicketID, err)
	}
	if ticket.EventID != event.ID {
		return event, nil, nil
	}
	return event, ticket, nil
}

// full reports whether the event, or the ticket's own quota, has no seat left.
func (s *fulfillmentService) full(ctx context.Context, tx *gorm.DB, event *models.Event, ticket *models.Ticket) (bool, error) {
	registered, err := s.regRepo.CountByEvent(ctx, tx, event.ID)
	if err != nil {
		return false, fmt.Errorf("count registrations: %w", err)
	}
	if registered >= int64(event.Capacity) {
		return true, nil
	}
	if ticket.MaxParticipants == nil {
		return false, nil
	}
	sold, err := s.regRepo.CountByTicket(ctx, tx, ticket.ID)
	if err != nil {
		return false, fmt.Errorf("count ticket registrations: %w", err)
	}
	return sold >= int64(*ticket.MaxParticipants), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
