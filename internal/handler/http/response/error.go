package response

import (
	"errors"
	"net/http"

	"github.com/medroster/roster-backend-go/internal/domain/attendance"
	"github.com/medroster/roster-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, attendance.ErrNoUsableRows):
		BadRequest(w, "No usable attendance rows in input", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
