package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/service"
)

var statusBySentinel = []struct {
	err  error
	code int
}{
	{service.ErrEventNotFound, http.StatusNotFound},
	{service.ErrTicketNotFound, http.StatusNotFound},
	{service.ErrRegistrationNotFound, http.StatusNotFound},
	{service.ErrOrderNotFound, http.StatusNotFound},
	{service.ErrPromoNotFound, http.StatusNotFound},
	{service.ErrTransferNotFound, http.StatusNotFound},

	{service.ErrSalesClosed, http.StatusConflict},
	{service.ErrEventFull, http.StatusConflict},
	{service.ErrTicketSoldOut, http.StatusConflict},
	{service.ErrTicketInUse, http.StatusConflict},
	{service.ErrEventInUse, http.StatusConflict},
	{service.ErrSlugTaken, http.StatusConflict},
	{service.ErrPromoExhausted, http.StatusConflict},
	{service.ErrPromoDuplicate, http.StatusConflict},
	{service.ErrTransferAlreadyClaimed, http.StatusConflict},
	{service.ErrAlreadyOwner, http.StatusConflict},
	{service.ErrAlreadyCheckedIn, http.StatusConflict},
	{service.ErrRegistrationRejected, http.StatusConflict},
	{service.ErrTransferAfterCheckIn, http.StatusConflict},

	{service.ErrNotOwner, http.StatusForbidden},
	{service.ErrPromoNotApplicable, http.StatusForbidden},

	{service.ErrPromoExpired, http.StatusBadRequest},
	{service.ErrPromoNotYetActive, http.StatusBadRequest},
	{service.ErrPromoDiscountKind, http.StatusBadRequest},
	{service.ErrPromoInvalidWindow, http.StatusBadRequest},
	{service.ErrInvalidStatus, http.StatusBadRequest},
	{service.ErrInvalidApprovalStatus, http.StatusBadRequest},
	{service.ErrDocumentNotRequired, http.StatusBadRequest},

	{service.ErrPaymentUnavailable, http.StatusBadGateway},
}

// mapError turns service sentinels into HTTP errors. Unknown errors pass
// through untouched and end up as a generic 500.
func mapError(err error) error {
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			if s.code >= http.StatusInternalServerError {
				return echo.NewHTTPError(s.code, s.err.Error()).SetInternal(err)
			}
			return echo.NewHTTPError(s.code, s.err.Error())
		}
	}
	return err
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Identifiant invalide.")
	}
	return uint(id), nil
}

func pageParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}
