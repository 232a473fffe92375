package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/restaurant-reservation/internal/utils"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the caller identity into the request context. The provided
// secret must match the one used when issuing tokens. Handlers behind
// this middleware read the identity via c.Get("user_id") / c.Get("email");
// that binding is the only trusted source of "who is calling".
//
// Per request the gate is a straight line: no token -> rejected;
// token present -> verify signature and expiry -> accepted or rejected.
// Every rejection is 403; there is no retry or refresh, a rejected
// client re-authenticates via login.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			id, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				// bad signature, expired or malformed: all collapse here
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
			}

			c.Set("user_id", id.UserID)
			c.Set("email", id.Email)
			return next(c)
		}
	}
}
