package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/auth"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/models"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/repository"
	"github.com/FlorianPALVADEAU/Overbound-sub003/internal/service"
)

const (
	userContextKey = "user"
	// SessionCookie carries the access token for browser clients.
	SessionCookie = "sb-access-token"
)

var (
	errUnauthenticated = echo.NewHTTPError(http.StatusUnauthorized, "Authentification requise.")
	errForbidden       = echo.NewHTTPError(http.StatusForbidden, "Accès refusé.")
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authenticate resolves the caller from a bearer token or the session cookie
// and provisions their profile on first sight.
func Authenticate(parser TokenParser, profiles repository.ProfileRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFrom(c.Request())
			if raw == "" {
				return errUnauthenticated
			}
			claims, err := parser.Parse(raw)
			if err != nil {
				return errUnauthenticated
			}

			profile, err := profiles.FindOrCreate(c.Request().Context(), &models.Profile{
				ID:       claims.Subject,
				Email:    strings.ToLower(claims.Email),
				FullName: claims.FullName(),
			})
			if err != nil {
				log.Printf("[Auth] profile for %s: %v", claims.Subject, err)
				return err
			}

			c.Set(userContextKey, profile)
			return next(c)
		}
	}
}

func tokenFrom(r *http.Request) string {
	if h := r.Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if ck, err := r.Cookie(SessionCookie); err == nil {
		return ck.Value
	}
	return ""
}

// RequireCapability must run after Authenticate.
func RequireCapability(capability auth.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return errUnauthenticated
			}
			if !auth.Can(user.Role, capability) {
				return errForbidden
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated profile, or nil on public routes.
func CurrentUser(c echo.Context) *models.Profile {
	p, _ := c.Get(userContextKey).(*models.Profile)
	return p
}

func SetCurrentUser(c echo.Context, p *models.Profile) {
	c.Set(userContextKey, p)
}

// AccountOf converts the authenticated profile into the service-level caller.
func AccountOf(c echo.Context) service.Account {
	p := CurrentUser(c)
	if p == nil {
		return service.Account{}
	}
	return service.Account{UserID: p.ID, Email: p.Email, FullName: p.FullName}
}
