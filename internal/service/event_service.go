package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/repository"
	"gorm.io/gorm"
)

type Availability struct {
	EventID    uint  `json:"event_id"`
	Capacity   int   `json:"capacity"`
	Registered int64 `json:"registered"`
	Available  int64 `json:"available"`
}

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	UpdateEvent(ctx context.Context, event *models.Event) error
	DeleteEvent(ctx context.Context, id uint) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context, includeDrafts bool) ([]models.Event, error)
	Availability(ctx context.Context, id uint) (*Availability, error)
}

type eventService struct {
	repo    repository.EventRepository
	regRepo repository.RegistrationRepository
}

func NewEventService(repo repository.EventRepository, regRepo repository.RegistrationRepository) EventService {
	return &eventService{repo: repo, regRepo: regRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.Status == "" {
		event.Status = models.EventDraft
	}
	if !event.Status.Valid() {
		return ErrInvalidStatus
	}
	if err := s.repo.Create(ctx, event); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugTaken
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) UpdateEvent(ctx context.Context, event *models.Event) error {
	if !event.Status.Valid() {
		return ErrInvalidStatus
	}
	existing, err := s.GetEvent(ctx, event.ID)
	if err != nil {
		return err
	}
	event.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, event); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugTaken
		}
		return fmt.Errorf("update event %d: %w", event.ID, err)
	}
	return nil
}

// DeleteEvent refuses to drop an event that already has registrations. Its
// tickets and promo code restrictions go with it.
func (s *eventService) DeleteEvent(ctx context.Context, id uint) error {
	n, err := s.regRepo.CountByEvent(ctx, s.regRepo.GetDB(), id)
	if err != nil {
		return fmt.Errorf("count registrations: %w", err)
	}
	if n > 0 {
		return ErrEventInUse
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		// a registration landed after the count
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrEventInUse
		}
		return fmt.Errorf("delete event %d: %w", id, err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find event %d: %w", id, err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, includeDrafts bool) ([]models.Event, error) {
	return s.repo.FindAll(ctx, includeDrafts)
}

// Availability is a best-effort read; checkout uses it as a gate and
// fulfillment re-checks under lock.
func (s *eventService) Availability(ctx context.Context, id uint) (*Availability, error) {
	event, err := s.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	registered, err := s.regRepo.CountByEvent(ctx, s.regRepo.GetDB(), id)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	return newAvailability(event, registered), nil
}

func newAvailability(event *models.Event, registered int64) *Availability {
	available := int64(event.Capacity) - registered
	if available < 0 {
		available = 0
	}
	return &Availability{
		EventID:    event.ID,
		Capacity:   event.Capacity,
		Registered: registered,
		Available:  available,
	}
}
