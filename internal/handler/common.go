package handler // handler defines http handlers

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user's id that JWTAuth stored in the
// context.  It only fails when a handler was wired without the middleware,
// which is a routing bug rather than a client error.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get("user_id").(uint64); ok && id != 0 {
		return id, nil
	}
	return 0, errors.New("invalid user_id in context")
}
