package response

import (
	"errors"
	"net/http"

	"github.com/dheyaloali/dheya-backend-go/internal/domain/attendance"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/auth"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/employee"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/product"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/sales"
	"github.com/dheyaloali/dheya-backend-go/internal/domain/user"
	"github.com/dheyaloali/dheya-backend-go/internal/pkg/validator"
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
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrOutsideCheckInWindow):
		BadRequest(w, "Check-in is outside the allowed window", nil)
	case errors.Is(err, attendance.ErrInvalidTransition):
		Conflict(w, "The attendance action is not allowed in the current state")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Sales domain errors
	case errors.Is(err, sales.ErrNotAssigned):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, sales.ErrNoAssignmentToday):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, sales.ErrQuantityOutOfRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, sales.ErrAssignmentNotFound):
		NotFound(w, "Assignment not found")

	// Collaborator domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, product.ErrProductNotFound):
		NotFound(w, "Product not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
