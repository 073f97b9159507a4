package handlers

import (
	"github.com/blogbliss/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// userIDFromContext returns the verified caller's ID set by the auth
// middleware. ok is false on routes where authentication is optional and no
// valid token was presented.
func userIDFromContext(c echo.Context) (uint, bool) {
	id, ok := c.Get(middleware.UserIDKey).(uint)
	return id, ok
}
