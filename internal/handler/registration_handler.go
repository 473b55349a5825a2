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

type RegistrationHandler struct {
	svc service.RegistrationService
}

func NewRegistrationHandler(svc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) RegisterRoutes(api *echo.Group, authn echo.MiddlewareFunc) {
	api.GET("/me/registrations", h.ListMine, authn)

	regs := api.Group("/registrations", authn)
	regs.POST("/claim", h.Claim)
	regs.POST("/:id/transfer", h.IssueTransfer)
	regs.PUT("/:id/document", h.UploadDocument)

	api.POST("/admin/checkin", h.CheckIn, authn, middleware.RequireCapability(auth.CapCheckIn))

	review := api.Group("/admin", authn, middleware.RequireCapability(auth.CapReviewDocuments))
	review.GET("/events/:id/registrations", h.ListForEvent)
	review.PUT("/registrations/:id/approval", h.SetApproval)
}

func (h *RegistrationHandler) ListMine(c echo.Context) error {
	regs, err := h.svc.ListMine(c.Request().Context(), middleware.AccountOf(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRegistrationResponses(regs, true))
}

func (h *RegistrationHandler) IssueTransfer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	token, err := h.svc.IssueTransfer(c.Request().Context(), middleware.AccountOf(c), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.TransferResponse{RegistrationID: id, TransferToken: token})
}

func (h *RegistrationHandler) Claim(c echo.Context) error {
	var req dto.ClaimRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	reg, err := h.svc.Claim(c.Request().Context(), middleware.AccountOf(c), req.TransferToken)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRegistrationResponse(reg, true))
}

func (h *RegistrationHandler) UploadDocument(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.DocumentRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	reg, err := h.svc.UploadDocument(c.Request().Context(), middleware.AccountOf(c), id, req.DocumentURL)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRegistrationResponse(reg, true))
}

func (h *RegistrationHandler) CheckIn(c echo.Context) error {
	var req dto.CheckInRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	reg, err := h.svc.CheckIn(c.Request().Context(), req.QRCodeToken)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRegistrationResponse(reg, false))
}

func (h *RegistrationHandler) ListForEvent(c echo.Context) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var approval *models.ApprovalStatus
	if q := c.QueryParam("approval"); q != "" {
		s := models.ApprovalStatus(q)
		if !s.Valid() {
			return mapError(service.ErrInvalidApprovalStatus)
		}
		approval = &s
	}

	regs, err := h.svc.ListForEvent(c.Request().Context(), eventID, approval)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRegistrationResponses(regs, false))
}

func (h *RegistrationHandler) SetApproval(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ApprovalRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	reg, err := h.svc.SetApproval(c.Request().Context(), id, models.ApprovalStatus(req.Status))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToRegistrationResponse(reg, false))
}
