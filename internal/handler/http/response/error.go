package response

import (
	"errors"
	"net/http"

	"github.com/staffsync/attendance-backend-go/internal/domain/attendance"
	"github.com/staffsync/attendance-backend-go/internal/domain/report"
	"github.com/staffsync/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Attendance domain errors
	switch {
	case errors.Is(err, attendance.ErrEmptyName):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrDuplicateSignIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadySignedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNoSignInFound):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrSignOutBeforeSignIn):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrUnknownKind):
		BadRequest(w, err.Error(), nil)

	// Default: storage or other unexpected failure
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
