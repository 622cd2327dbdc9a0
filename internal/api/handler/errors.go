package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blogworks/blog-api/internal/core/domain"
)

// errorBody is the error envelope rendered on every non-2xx response.
type errorBody struct {
	Message string             `json:"message"`
	Errors  []domain.Violation `json:"errors,omitempty"`
}

// respondError renders err with message as the top-level description.
// Validation failures carry their field violations; domain sentinels
// map to deterministic status codes; anything else is a 500 with a
// generic body, the real cause left to the central error handler's log.
func respondError(c echo.Context, message string, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, errorBody{Message: message, Errors: ve.Violations})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorBody{Message: "invalid username or password"})
	case errors.Is(err, domain.ErrTooManyAttempts):
		return c.JSON(http.StatusTooManyRequests, errorBody{Message: "too many login attempts, try again later"})
	case errors.Is(err, domain.ErrUserExists):
		return c.JSON(http.StatusConflict, errorBody{Message: message})
	case errors.Is(err, domain.ErrPostNotFound):
		return c.JSON(http.StatusNotFound, errorBody{Message: "post not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, errorBody{Message: "user not found"})
	case errors.Is(err, domain.ErrNotPostAuthor):
		return c.JSON(http.StatusForbidden, errorBody{Message: "logged in user must match post author"})
	}

	return err
}
