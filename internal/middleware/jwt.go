package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gabrielAlencar33564/weather/internal/auth"
	"github.com/gabrielAlencar33564/weather/internal/utils"
)

// claimKey is the context key under which the verified session claim is
// stored for downstream middleware and handlers.
const claimKey = "claim"

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the decoded claim into the request context.  A
// missing, malformed or expired token short-circuits with 401 and the
// fixed unauthorized message.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.MsgUnauthorized})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			claim, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": auth.MsgUnauthorized})
			}

			c.Set(claimKey, claim)
			return next(c)
		}
	}
}

// ClaimFrom retrieves the verified claim placed in the context by
// JWTAuth.  Returns nil when the request was not authenticated.
func ClaimFrom(c echo.Context) *auth.Claim {
	if claim, ok := c.Get(claimKey).(*auth.Claim); ok {
		return claim
	}
	return nil
}
