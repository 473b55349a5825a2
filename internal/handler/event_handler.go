package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/auth"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/dto"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/middleware"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/service"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(api *echo.Group, authn echo.MiddlewareFunc) {
	events := api.Group("/events")
	events.GET("", h.ListEvents)
	events.GET("/:id", h.GetEvent)
	events.GET("/:id/availability", h.GetAvailability)

	admin := api.Group("/admin/events", authn, middleware.RequireCapability(auth.CapManageEvents))
	admin.GET("", h.ListAllEvents)
	admin.POST("", h.CreateEvent)
	admin.PUT("/:id", h.UpdateEvent)
	admin.DELETE("/:id", h.DeleteEvent)
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	return h.list(c, false)
}

func (h *EventHandler) ListAllEvents(c echo.Context) error {
	return h.list(c, true)
}

func (h *EventHandler) list(c echo.Context, includeDrafts bool) error {
	events, err := h.svc.ListEvents(c.Request().Context(), includeDrafts)
	if err != nil {
		return err
	}

	resp := make([]dto.EventResponse, len(events))
	for i := range events {
		resp[i] = dto.ToEventResponse(&events[i])
	}
	return c.JSON(http.StatusOK, resp)
}

// GetEvent hides drafts from the public listing.
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	event, err := h.publicEvent(c, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// publicEvent answers drafts as not found.
func (h *EventHandler) publicEvent(c echo.Context, id uint) (*models.Event, error) {
	event, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		return nil, mapError(err)
	}
	if event.Status == models.EventDraft {
		return nil, mapError(service.ErrEventNotFound)
	}
	return event, nil
}

func (h *EventHandler) GetAvailability(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.publicEvent(c, id); err != nil {
		return err
	}

	avail, err := h.svc.Availability(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, avail)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.EventRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	event := eventFromRequest(&req)
	if err := h.svc.CreateEvent(c.Request().Context(), event); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.EventRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	event := eventFromRequest(&req)
	event.ID = id
	if event.Status == "" {
		event.Status = models.EventDraft
	}
	if err := h.svc.UpdateEvent(c.Request().Context(), event); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteEvent(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func eventFromRequest(req *dto.EventRequest) *models.Event {
	return &models.Event{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Status:      models.EventStatus(req.Status),
		ImageURL:    req.ImageURL,
	}
}
