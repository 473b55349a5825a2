package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/repository"
	"gorm.io/gorm"
)

type TicketService interface {
	CreateTicket(ctx context.Context, ticket *models.Ticket) error
	UpdateTicket(ctx context.Context, ticket *models.Ticket) error
	DeleteTicket(ctx context.Context, id uint) error
	GetTicket(ctx context.Context, id uint) (*models.Ticket, error)
	ListTickets(ctx context.Context, eventID uint) ([]models.Ticket, error)
}

type ticketService struct {
	repo      repository.TicketRepository
	eventRepo repository.EventRepository
	regRepo   repository.RegistrationRepository
}

func NewTicketService(repo repository.TicketRepository, eventRepo repository.EventRepository, regRepo repository.RegistrationRepository) TicketService {
	return &ticketService{repo: repo, eventRepo: eventRepo, regRepo: regRepo}
}

func (s *ticketService) CreateTicket(ctx context.Context, ticket *models.Ticket) error {
	if err := s.ensureEvent(ctx, ticket.EventID); err != nil {
		return err
	}
	ticket.Currency = normalizeCurrency(ticket.Currency)
	if err := s.repo.Create(ctx, ticket); err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (s *ticketService) UpdateTicket(ctx context.Context, ticket *models.Ticket) error {
	existing, err := s.GetTicket(ctx, ticket.ID)
	if err != nil {
		return err
	}
	// a ticket never moves to another event
	ticket.EventID = existing.EventID
	ticket.CreatedAt = existing.CreatedAt
	ticket.Currency = normalizeCurrency(ticket.Currency)
	if err := s.repo.Update(ctx, ticket); err != nil {
		return fmt.Errorf("update ticket %d: %w", ticket.ID, err)
	}
	return nil
}

func (s *ticketService) DeleteTicket(ctx context.Context, id uint) error {
	n, err := s.regRepo.CountByTicket(ctx, s.regRepo.GetDB(), id)
	if err != nil {
		return fmt.Errorf("count registrations: %w", err)
	}
	if n > 0 {
		return ErrTicketInUse
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketNotFound
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrTicketInUse
		}
		return fmt.Errorf("delete ticket %d: %w", id, err)
	}
	return nil
}

func (s *ticketService) GetTicket(ctx context.Context, id uint) (*models.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("find ticket %d: %w", id, err)
	}
	return ticket, nil
}

func (s *ticketService) ListTickets(ctx context.Context, eventID uint) ([]models.Ticket, error) {
	if err := s.ensureEvent(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.FindByEventID(ctx, eventID)
}

func (s *ticketService) ensureEvent(ctx context.Context, eventID uint) error {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("find event %d: %w", eventID, err)
	}
	return nil
}

func normalizeCurrency(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "" {
		return "eur"
	}
	return c
}
