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

type TicketHandler struct {
	svc service.TicketService
}

func NewTicketHandler(svc service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

func (h *TicketHandler) RegisterRoutes(api *echo.Group, authn echo.MiddlewareFunc) {
	api.GET("/events/:id/tickets", h.ListTickets)

	admin := api.Group("/admin", authn, middleware.RequireCapability(auth.CapManageTickets))
	admin.POST("/events/:id/tickets", h.CreateTicket)
	admin.PUT("/tickets/:id", h.UpdateTicket)
	admin.DELETE("/tickets/:id", h.DeleteTicket)
}

func (h *TicketHandler) ListTickets(c echo.Context) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	tickets, err := h.svc.ListTickets(c.Request().Context(), eventID)
	if err != nil {
		return mapError(err)
	}
	resp := make([]dto.TicketResponse, len(tickets))
	for i := range tickets {
		resp[i] = dto.ToTicketResponse(&tickets[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TicketHandler) CreateTicket(c echo.Context) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TicketRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	ticket := ticketFromRequest(&req)
	ticket.EventID = eventID
	if err := h.svc.CreateTicket(c.Request().Context(), ticket); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToTicketResponse(ticket))
}

func (h *TicketHandler) UpdateTicket(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TicketRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	ticket := ticketFromRequest(&req)
	ticket.ID = id
	if err := h.svc.UpdateTicket(c.Request().Context(), ticket); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToTicketResponse(ticket))
}

func (h *TicketHandler) DeleteTicket(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteTicket(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func ticketFromRequest(req *dto.TicketRequest) *models.Ticket {
	return &models.Ticket{
		RaceID:           req.RaceID,
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Currency:         req.Currency,
		MaxParticipants:  req.MaxParticipants,
		RequiresDocument: req.RequiresDocument,
		DocumentType:     req.DocumentType,
	}
}
