package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/worktracker/internal/api/shared"
	"github.com/phrazzld/worktracker/internal/domain"
	"github.com/phrazzld/worktracker/internal/service"
)

// MapErrorToStatusCode maps service and domain errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrIntegrity):
		return http.StatusConflict
	case errors.Is(err, service.ErrAssigneeNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, shared.ErrMalformedBody):
		return http.StatusBadRequest
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// GetSafeErrorMessage returns a message for err that is safe to show to
// clients. Internal details never leave this function.
func GetSafeErrorMessage(err error) string {
	var validationErr *domain.ValidationError
	var validatorErrs validator.ValidationErrors

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, service.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, service.ErrDuplicateEmail):
		return "Email already registered"
	case errors.Is(err, service.ErrAssigneeNotFound):
		return "Assignee does not exist"
	case errors.Is(err, service.ErrIntegrity):
		return "Request conflicts with existing data"
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	case errors.As(err, &validatorErrs):
		return SanitizeValidationError(validatorErrs)
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.Is(err, shared.ErrMalformedBody):
		return "Invalid request format"
	}
	return "An unexpected error occurred"
}

// SanitizeValidationError describes the first failed validator rule without
// echoing the submitted value.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation failed"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Invalid %s: is required", fe.Field())
	case "max":
		return fmt.Sprintf("Invalid %s: must be at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("Invalid %s: must be greater than %s", fe.Field(), fe.Param())
	case "task_title":
		return fmt.Sprintf("Invalid %s: must be 2-50 letters or spaces", fe.Field())
	case "task_status":
		return fmt.Sprintf("Invalid %s: must be one of TODO, IN_PROGRESS, DONE", fe.Field())
	}
	return fmt.Sprintf("Invalid %s", fe.Field())
}

// HandleAPIError writes the status and sanitized message for err and logs
// the underlying error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
