package delivery

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eunwoo0701/cafe-delight/internal/domain"
)

// mapErrorToStatus translates domain errors into HTTP status codes. Anything
// unrecognized is an internal error; its detail is never sent to the client.
func mapErrorToStatus(err error) int {
	var insufficient *domain.InsufficientStockError
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCart):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.As(err, &insufficient):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotPurchased):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrProductReferenced):
		return http.StatusConflict
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "invalid") ||
		strings.Contains(errMsg, "cannot be empty") ||
		strings.Contains(errMsg, "must be") ||
		strings.Contains(errMsg, "must contain") ||
		strings.Contains(errMsg, "cannot be negative") ||
		strings.Contains(errMsg, "required") ||
		strings.Contains(errMsg, "incorrect") ||
		strings.Contains(errMsg, "please") {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// respondError sends the mapped status with the error's own message for
// client-facing failures, and a generic message for everything else.
func respondError(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	ErrorResponse(c, status, message)
}
