package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gabrielAlencar33564/weather/internal/auth"
)

// respond maps a policy decision onto the HTTP layer: Allow continues
// the chain, DenyUnauthenticated becomes a 401, the two role/ownership
// denials become 403 with their fixed messages.  The same (claim,
// target) pair always yields the same status+message.
func respond(c echo.Context, d auth.Decision, next echo.HandlerFunc) error {
	switch d {
	case auth.Allow:
		return next(c)
	case auth.DenyUnauthenticated:
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": d.Message()})
	default:
		return c.JSON(http.StatusForbidden, echo.Map{"error": d.Message()})
	}
}

// RequireAdmin gates admin-only routes.  It assumes JWTAuth ran earlier
// in the chain.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return respond(c, auth.CheckAdmin(ClaimFrom(c)), next)
		}
	}
}

// RequireOwner gates routes addressing a single account by path id.
// Admins pass, owners pass, everyone else gets the fixed not-owner
// message.  Kept separate from RequireAdmin so routes compose the two
// checks explicitly instead of relying on a merged policy.
func RequireOwner(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return respond(c, auth.CheckOwner(ClaimFrom(c), c.Param(param)), next)
		}
	}
}
