package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/dto"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/service"
)

func TestListEvents_PublicExcludesDrafts(t *testing.T) {
	var gotDrafts bool
	svc := &mockEventService{
		listFn: func(ctx context.Context, includeDrafts bool) ([]models.Event, error) {
			gotDrafts = includeDrafts
			return []models.Event{{ID: 1, Title: "Overbound Paris", Status: models.EventOnSale}}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/v1/events", nil)

	err := NewEventHandler(svc).ListEvents(c)

	require.NoError(t, err)
	assert.False(t, gotDrafts)
	var resp []dto.EventResponse
	decode(t, rec, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, "Overbound Paris", resp[0].Title)
}

func TestGetEvent_HidesDraft(t *testing.T) {
	svc := &mockEventService{
		getFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return &models.Event{ID: id, Status: models.EventDraft}, nil
		},
	}
	c, _ := newContext(http.MethodGet, "/api/v1/events/3", nil)
	withParam(c, "id", "3")

	err := NewEventHandler(svc).GetEvent(c)

	requireHTTPError(t, err, http.StatusNotFound)
}

func TestGetEvent_InvalidID(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/api/v1/events/abc", nil)
	withParam(c, "id", "abc")

	err := NewEventHandler(&mockEventService{}).GetEvent(c)

	requireHTTPError(t, err, http.StatusBadRequest)
}

func TestGetAvailability(t *testing.T) {
	svc := &mockEventService{
		getFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return &models.Event{ID: id, Status: models.EventOnSale}, nil
		},
		availabilityFn: func(ctx context.Context, id uint) (*service.Availability, error) {
			return &service.Availability{EventID: id, Capacity: 100, Registered: 98, Available: 2}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/v1/events/7/availability", nil)
	withParam(c, "id", "7")

	err := NewEventHandler(svc).GetAvailability(c)

	require.NoError(t, err)
	var resp service.Availability
	decode(t, rec, &resp)
	assert.Equal(t, uint(7), resp.EventID)
	assert.Equal(t, int64(2), resp.Available)
}

func TestGetAvailability_NotFound(t *testing.T) {
	svc := &mockEventService{
		getFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return nil, service.ErrEventNotFound
		},
	}
	c, _ := newContext(http.MethodGet, "/api/v1/events/7/availability", nil)
	withParam(c, "id", "7")

	err := NewEventHandler(svc).GetAvailability(c)

	he := requireHTTPError(t, err, http.StatusNotFound)
	assert.Equal(t, service.ErrEventNotFound.Error(), he.Message)
}

func TestGetAvailability_HidesDraft(t *testing.T) {
	called := false
	svc := &mockEventService{
		getFn: func(ctx context.Context, id uint) (*models.Event, error) {
			return &models.Event{ID: id, Status: models.EventDraft}, nil
		},
		availabilityFn: func(ctx context.Context, id uint) (*service.Availability, error) {
			called = true
			return &service.Availability{EventID: id}, nil
		},
	}
	c, _ := newContext(http.MethodGet, "/api/v1/events/7/availability", nil)
	withParam(c, "id", "7")

	err := NewEventHandler(svc).GetAvailability(c)

	requireHTTPError(t, err, http.StatusNotFound)
	assert.False(t, called)
}

func TestCreateEvent(t *testing.T) {
	var created *models.Event
	svc := &mockEventService{
		createFn: func(ctx context.Context, event *models.Event) error {
			event.ID = 12
			created = event
			return nil
		},
	}
	body := `{"title":"Overbound Lyon","slug":"lyon-2026","date":"2026-06-01T09:00:00Z","location":"Lyon","capacity":300}`
	c, rec := newContext(http.MethodPost, "/api/v1/admin/events", strings.NewReader(body))

	err := NewEventHandler(svc).CreateEvent(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 300, created.Capacity)
	assert.Equal(t, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC), created.Date.UTC())
}

func TestCreateEvent_ValidationError(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/api/v1/admin/events", strings.NewReader(`{"title":"x"}`))

	err := NewEventHandler(&mockEventService{}).CreateEvent(c)

	requireHTTPError(t, err, http.StatusBadRequest)
}

func TestCreateEvent_SlugTaken(t *testing.T) {
	svc := &mockEventService{
		createFn: func(ctx context.Context, event *models.Event) error { return service.ErrSlugTaken },
	}
	body := `{"title":"Overbound Lyon","slug":"lyon-2026","date":"2026-06-01T09:00:00Z","location":"Lyon","capacity":300}`
	c, _ := newContext(http.MethodPost, "/api/v1/admin/events", strings.NewReader(body))

	err := NewEventHandler(svc).CreateEvent(c)

	he := requireHTTPError(t, err, http.StatusConflict)
	assert.Equal(t, service.ErrSlugTaken.Error(), he.Message)
}

func TestDeleteEvent_InUse(t *testing.T) {
	svc := &mockEventService{
		deleteFn: func(ctx context.Context, id uint) error { return service.ErrEventInUse },
	}
	c, _ := newContext(http.MethodDelete, "/api/v1/admin/events/4", nil)
	withParam(c, "id", "4")

	err := NewEventHandler(svc).DeleteEvent(c)

	requireHTTPError(t, err, http.StatusConflict)
}

func TestListTickets(t *testing.T) {
	svc := &mockTicketService{
		listFn: func(ctx context.Context, eventID uint) ([]models.Ticket, error) {
			return []models.Ticket{{ID: 1, EventID: eventID, Name: "Elite", Price: 6500, Currency: "eur"}}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/v1/events/2/tickets", nil)
	withParam(c, "id", "2")

	err := NewTicketHandler(svc).ListTickets(c)

	require.NoError(t, err)
	var resp []dto.TicketResponse
	decode(t, rec, &resp)
	require.Len(t, resp, 1)
	assert.Equal(t, uint(2), resp[0].EventID)
	assert.Equal(t, int64(6500), resp[0].Price)
}

func TestCreateTicket_UsesPathEvent(t *testing.T) {
	var created *models.Ticket
	svc := &mockTicketService{
		createFn: func(ctx context.Context, ticket *models.Ticket) error {
			created = ticket
			return nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/v1/admin/events/5/tickets", strings.NewReader(`{"name":"Open","price":4500}`))
	withParam(c, "id", "5")

	err := NewTicketHandler(svc).CreateTicket(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint(5), created.EventID)
}

func TestDeleteTicket_InUse(t *testing.T) {
	svc := &mockTicketService{
		deleteFn: func(ctx context.Context, id uint) error { return service.ErrTicketInUse },
	}
	c, _ := newContext(http.MethodDelete, "/api/v1/admin/tickets/9", nil)
	withParam(c, "id", "9")

	err := NewTicketHandler(svc).DeleteTicket(c)

	requireHTTPError(t, err, http.StatusConflict)
}
