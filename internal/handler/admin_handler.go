package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/auth"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/dto"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/middleware"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/repository"
)

// AdminHandler serves read-only back-office listings straight from the
// repositories.
type AdminHandler struct {
	orders repository.OrderRepository
	logs   repository.RequestLogRepository
}

func NewAdminHandler(orders repository.OrderRepository, logs repository.RequestLogRepository) *AdminHandler {
	return &AdminHandler{orders: orders, logs: logs}
}

func (h *AdminHandler) RegisterRoutes(api *echo.Group, authn echo.MiddlewareFunc) {
	admin := api.Group("/admin", authn)
	admin.GET("/orders", h.ListOrders, middleware.RequireCapability(auth.CapViewOrders))
	admin.GET("/request-logs", h.ListRequestLogs, middleware.RequireCapability(auth.CapViewLogs))
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	page, size := pageParams(c)

	var status *models.FulfillmentStatus
	switch s := models.FulfillmentStatus(c.QueryParam("status")); s {
	case "":
	case models.FulfillmentFulfilled, models.FulfillmentOversold, models.FulfillmentUnfulfillable:
		status = &s
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Statut invalide.")
	}

	orders, total, err := h.orders.List(c.Request().Context(), page, size, status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Page[models.Order]{Items: orders, Total: total, Page: page, Size: size})
}

func (h *AdminHandler) ListRequestLogs(c echo.Context) error {
	page, size := pageParams(c)

	logs, total, err := h.logs.List(c.Request().Context(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.Page[models.RequestLog]{Items: logs, Total: total, Page: page, Size: size})
}
