package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/repository"
)

// PromoQuote is the outcome of a successful code validation.
// Prices are only filled in when a ticket was given.
type PromoQuote struct {
	Code           *models.PromotionalCode
	OriginalAmount *int64
	DiscountAmount *int64
	FinalAmount    *int64
}

type PromoService interface {
	Validate(ctx context.Context, code string, eventID uint, ticketID *uint) (*PromoQuote, error)
	CreateCode(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error
	UpdateCode(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error
	DeleteCode(ctx context.Context, id uint) error
	GetCode(ctx context.Context, id uint) (*models.PromotionalCode, error)
	ListCodes(ctx context.Context) ([]models.PromotionalCode, error)
}

type promoService struct {
	repo       repository.PromoCodeRepository
	eventRepo  repository.EventRepository
	ticketRepo repository.TicketRepository
	now        func() time.Time
}

func NewPromoService(repo repository.PromoCodeRepository, eventRepo repository.EventRepository, ticketRepo repository.TicketRepository) PromoService {
	return &promoService{repo: repo, eventRepo: eventRepo, ticketRepo: ticketRepo, now: time.Now}
}

// Validate checks, in order: existence, validity window, usage limit, event restriction.
func (s *promoService) Validate(ctx context.Context, code string, eventID uint, ticketID *uint) (*PromoQuote, error) {
	promo, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, fmt.Errorf("find promo code: %w", err)
	}
	if err := checkPromo(promo, eventID, s.now()); err != nil {
		return nil, err
	}

	quote := &PromoQuote{Code: promo}
	if ticketID == nil {
		return quote, nil
	}

	ticket, err := s.ticketRepo.FindByID(ctx, *ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket %d: %w", *ticketID, err)
	}
	if ticket.EventID != eventID {
		return nil, ErrTicketNotFound
	}
	final := ApplyDiscount(ticket.Price, promo)
	discount := ticket.Price - final
	quote.OriginalAmount = &ticket.Price
	quote.DiscountAmount = &discount
	quote.FinalAmount = &final
	return quote, nil
}

func checkPromo(promo *models.PromotionalCode, eventID uint, now time.Time) error {
	if promo.ValidFrom != nil && now.Before(*promo.ValidFrom) {
		return ErrPromoNotYetActive
	}
	if promo.ValidUntil != nil && now.After(*promo.ValidUntil) {
		return ErrPromoExpired
	}
	if promo.Exhausted() {
		return ErrPromoExhausted
	}
	if !promo.AppliesTo(eventID) {
		return ErrPromoNotApplicable
	}
	return nil
}

// ApplyDiscount returns the price in minor units after the code's discount,
// rounded half-up and never below zero.
func ApplyDiscount(price int64, promo *models.PromotionalCode) int64 {
	p := decimal.NewFromInt(price)
	var final decimal.Decimal
	switch {
	case promo.DiscountPercent != nil:
		off := p.Mul(decimal.NewFromInt(int64(*promo.DiscountPercent))).Div(decimal.NewFromInt(100))
		final = p.Sub(off).Round(0)
	case promo.DiscountAmount != nil:
		final = p.Sub(decimal.NewFromInt(*promo.DiscountAmount))
	default:
		final = p
	}
	if final.IsNegative() {
		return 0
	}
	return final.IntPart()
}

func (s *promoService) CreateCode(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error {
	if err := s.prepare(ctx, code, eventIDs); err != nil {
		return err
	}
	code.UsedCount = 0
	if err := s.repo.Create(ctx, code, eventIDs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPromoDuplicate
		}
		return fmt.Errorf("create promo code: %w", err)
	}
	return nil
}

func (s *promoService) UpdateCode(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error {
	existing, err := s.GetCode(ctx, code.ID)
	if err != nil {
		return err
	}
	if err := s.prepare(ctx, code, eventIDs); err != nil {
		return err
	}
	code.UsedCount = existing.UsedCount
	code.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, code, eventIDs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPromoDuplicate
		}
		return fmt.Errorf("update promo code %d: %w", code.ID, err)
	}
	return nil
}

// prepare normalizes the code and enforces the discount and window invariants.
func (s *promoService) prepare(ctx context.Context, code *models.PromotionalCode, eventIDs []uint) error {
	code.Code = strings.ToUpper(strings.TrimSpace(code.Code))

	hasPercent := code.DiscountPercent != nil
	hasAmount := code.DiscountAmount != nil
	if hasPercent == hasAmount {
		return ErrPromoDiscountKind
	}
	if hasPercent && (*code.DiscountPercent < 1 || *code.DiscountPercent > 100) {
		return ErrPromoDiscountKind
	}
	if hasAmount && *code.DiscountAmount <= 0 {
		return ErrPromoDiscountKind
	}
	if code.ValidFrom != nil && code.ValidUntil != nil && !code.ValidUntil.After(*code.ValidFrom) {
		return ErrPromoInvalidWindow
	}

	for _, id := range eventIDs {
		if _, err := s.eventRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("find event %d: %w", id, err)
		}
	}
	return nil
}

func (s *promoService) DeleteCode(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPromoNotFound
		}
		return fmt.Errorf("delete promo code %d: %w", id, err)
	}
	return nil
}

func (s *promoService) GetCode(ctx context.Context, id uint) (*models.PromotionalCode, error) {
	code, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, fmt.Errorf("find promo code %d: %w", id, err)
	}
	return code, nil
}

func (s *promoService) ListCodes(ctx context.Context) ([]models.PromotionalCode, error) {
	return s.repo.FindAll(ctx)
}
