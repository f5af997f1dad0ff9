package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/navmark/navmark/internal/application"
	"github.com/navmark/navmark/pkg/response"
)

// statusFor maps application sentinels onto HTTP statuses. Unknown errors are
// treated as internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrUsernameNotFound),
		errors.Is(err, application.ErrEmailNotFound),
		errors.Is(err, application.ErrBookmarkNotFound),
		errors.Is(err, application.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, application.ErrAccountDisabled),
		errors.Is(err, application.ErrSuperAdmin),
		errors.Is(err, application.ErrBookmarkLimit),
		errors.Is(err, application.ErrImportOverLimit):
		return http.StatusForbidden
	case errors.Is(err, application.ErrIncorrectPassword),
		errors.Is(err, application.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, application.ErrUsernameTaken),
		errors.Is(err, application.ErrEmailTaken),
		errors.Is(err, application.ErrCategoryExists),
		errors.Is(err, application.ErrInvalidURL),
		errors.Is(err, application.ErrTitleRequired),
		errors.Is(err, application.ErrURLRequired),
		errors.Is(err, application.ErrInvalidResetCode):
		return http.StatusBadRequest
	default:
		var pe *application.PolicyError
		if errors.As(err, &pe) {
			return http.StatusBadRequest
		}
		return http.StatusInternalServerError
	}
}

// fail writes a service error through the envelope, hiding internal details.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	response.Error(c, status, msg, nil)
}
