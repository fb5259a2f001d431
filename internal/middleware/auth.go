package middleware

import (
	"marketplace-settlement/internal/auth"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const IdentityKey = "identity"

// BearerAuth parses an Authorization header when present and stores the
// claims on the request context. A missing header passes through so
// handlers can decide whether identity is required; a present but invalid
// token is rejected outright.
func BearerAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return next(c)
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			claims, err := auth.ParseToken(jwtSecret, tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(IdentityKey, claims)
			return next(c)
		}
	}
}

// Identity returns the parsed claims for the request, or nil for anonymous
// callers.
func Identity(c echo.Context) *auth.Claims {
	claims, _ := c.Get(IdentityKey).(*auth.Claims)
	return claims
}
