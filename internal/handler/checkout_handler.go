package handler

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/dto"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/middleware"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/service"
	"github.com/FlorianPALVADEAU/Overbound-sub003/pkg/payment"
)

const (
	maxWebhookBody  = 65536
	signatureHeader = "Stripe-Signature"
)

type CheckoutHandler struct {
	checkout    service.CheckoutService
	fulfillment service.FulfillmentService
}

func NewCheckoutHandler(checkout service.CheckoutService, fulfillment service.FulfillmentService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, fulfillment: fulfillment}
}

func (h *CheckoutHandler) RegisterRoutes(api *echo.Group, authn echo.MiddlewareFunc) {
	api.POST("/checkout", h.CreateCheckout, authn)
	api.POST("/webhooks/stripe", h.StripeWebhook)
}

func (h *CheckoutHandler) CreateCheckout(c echo.Context) error {
	var req dto.CheckoutRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.checkout.CreateCheckout(c.Request().Context(), middleware.AccountOf(c), service.CheckoutInput{
		EventID:   req.EventID,
		TicketID:  req.TicketID,
		PromoCode: req.PromoCode,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, res)
}

type webhookResponse struct {
	Received bool            `json:"received"`
	Outcome  service.Outcome `json:"outcome"`
}

// StripeWebhook rejects unsigned or tampered payloads with 400 before any
// database work. Anything else that fails returns 500 so Stripe retries.
func (h *CheckoutHandler) StripeWebhook(c echo.Context) error {
	req := c.Request()
	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), req.Body, maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Corps de requête trop volumineux.")
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Corps de requête illisible.")
	}

	res, err := h.fulfillment.HandleWebhook(req.Context(), body, req.Header.Get(signatureHeader))
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			log.Printf("[Webhook] rejected from %s: %v", c.RealIP(), err)
			return echo.NewHTTPError(http.StatusBadRequest, "Signature invalide.")
		}
		return err
	}
	return c.JSON(http.StatusOK, webhookResponse{Received: true, Outcome: res.Outcome})
}
