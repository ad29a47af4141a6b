package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/postbook/postbook/internal/authz"
	"github.com/postbook/postbook/internal/identity"
)

const principalKey = "principal"

type BearerAuth struct {
	Secret []byte
}

// RequireAuth validates the bearer token and stores the extracted principal
// in the request context. Missing, malformed or expired credentials are
// rejected here, before any capability or ownership check runs.
func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		claims, err := identity.ParseAccessToken(strings.TrimPrefix(header, prefix), m.Secret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		c.Set(principalKey, authz.Principal{
			ID:     id,
			Email:  claims.Email,
			Roles:  claims.Roles,
			Claims: claims.Claims,
		})
		return next(c)
	}
}

// Principal returns the principal stored by RequireAuth.
func Principal(c echo.Context) (authz.Principal, bool) {
	p, ok := c.Get(principalKey).(authz.Principal)
	return p, ok
}

// RequireCapability consults the capability table for the named operation.
func RequireCapability(op string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := Principal(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			if !authz.Allowed(op, p) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
