package middleware

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/repository"
)

// RequestLog persists one row per API request once the response is written.
func RequestLog(repo repository.RequestLogRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler write the final status first
				c.Error(err)
			}

			entry := &models.RequestLog{
				Method:    c.Request().Method,
				Path:      c.Request().URL.Path,
				Status:    c.Response().Status,
				LatencyMs: time.Since(start).Milliseconds(),
				IP:        c.RealIP(),
			}
			if user := CurrentUser(c); user != nil {
				entry.UserID = &user.ID
			}

			ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), 2*time.Second)
			defer cancel()
			if cerr := repo.Create(ctx, entry); cerr != nil {
				log.Printf("[RequestLog] %s %s: %v", entry.Method, entry.Path, cerr)
			}
			return nil
		}
	}
}
