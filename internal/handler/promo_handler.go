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

type PromoHandler struct {
	svc service.PromoService
}

func NewPromoHandler(svc service.PromoService) *PromoHandler {
	return &PromoHandler{svc: svc}
}

func (h *PromoHandler) RegisterRoutes(api *echo.Group, authn echo.MiddlewareFunc) {
	api.POST("/promo-codes/validate", h.Validate, authn)

	admin := api.Group("/admin/promo-codes", authn, middleware.RequireCapability(auth.CapManagePromoCodes))
	admin.GET("", h.List)
	admin.GET("/:id", h.Get)
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

func (h *PromoHandler) Validate(c echo.Context) error {
	var req dto.ValidatePromoRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	quote, err := h.svc.Validate(c.Request().Context(), req.Code, req.EventID, req.TicketID)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPromoValidationResponse(quote))
}

func (h *PromoHandler) List(c echo.Context) error {
	codes, err := h.svc.ListCodes(c.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]dto.PromoCodeResponse, len(codes))
	for i := range codes {
		resp[i] = dto.ToPromoCodeResponse(&codes[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PromoHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	code, err := h.svc.GetCode(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPromoCodeResponse(code))
}

func (h *PromoHandler) Create(c echo.Context) error {
	var req dto.PromoCodeRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	code := promoFromRequest(&req)
	if err := h.svc.CreateCode(c.Request().Context(), code, req.EventIDs); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToPromoCodeResponse(code))
}

func (h *PromoHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.PromoCodeRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	code := promoFromRequest(&req)
	code.ID = id
	if err := h.svc.UpdateCode(c.Request().Context(), code, req.EventIDs); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPromoCodeResponse(code))
}

func (h *PromoHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteCode(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func promoFromRequest(req *dto.PromoCodeRequest) *models.PromotionalCode {
	return &models.PromotionalCode{
		Code:            req.Code,
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		DiscountAmount:  req.DiscountAmount,
		ValidFrom:       req.ValidFrom,
		ValidUntil:      req.ValidUntil,
		UsageLimit:      req.UsageLimit,
	}
}
