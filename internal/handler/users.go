package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quizforge/quizforge-go/internal/model"
	"github.com/quizforge/quizforge-go/internal/repository"
)

// UserHandler exposes the admin-only user directory endpoints.
type UserHandler struct {
	Users repository.UserStore
}

func NewUserHandler(users repository.UserStore) *UserHandler {
	return &UserHandler{Users: users}
}

// List handles GET /v1/users and returns every user, sanitized.  The route
// is gated by RequireRole(admin); regular users get a 403 from the
// middleware before this runs.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.FindAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
	}
	views := make([]model.UserView, len(users))
	for i, u := range users {
		views[i] = u.View()
	}
	return c.JSON(http.StatusOK, views)
}
