package response

import (
	"errors"
	"net/http"

	"github.com/hr-insights/etl-backend-go/internal/domain/auth"
	"github.com/hr-insights/etl-backend-go/internal/domain/employee"
	"github.com/hr-insights/etl-backend-go/internal/kpi"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErr *employee.ValidationError
	if errors.As(err, &validationErr) {
		BadRequest(w, validationErr.Error(), validationErr.Details)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeExists):
		Conflict(w, "Employee with this id already exists")
	case errors.Is(err, employee.ErrNoFieldsToUpdate):
		BadRequest(w, "No fields to update", nil)

	// Analytics domain errors
	case errors.Is(err, kpi.ErrUnknownTable):
		NotFound(w, "Unknown KPI table")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
