package response

import (
	"errors"
	"net/http"

	"github.com/sitecrew/sitecrew-backend-go/internal/domain/attendance"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payment"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/payout"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/site"
	"github.com/sitecrew/sitecrew-backend-go/internal/domain/worker"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/jwt"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/period"
	"github.com/sitecrew/sitecrew-backend-go/internal/pkg/validator"
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
	// Auth
	case errors.Is(err, jwt.ErrOwnerClaimMissing):
		Unauthorized(w, "Invalid token")

	// Site domain errors
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site not found")
	case errors.Is(err, site.ErrForbidden):
		Forbidden(w, "Not allowed to access this site")

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrWorkerNotInSite):
		NotFound(w, "Worker not found for this site")
	case errors.Is(err, worker.ErrWorkerCodeExists):
		Conflict(w, "Worker code already exists")

	// Attendance & payment domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payment.ErrPaymentNotFound):
		NotFound(w, "Payment not found")

	// Period & calculation errors
	case errors.Is(err, period.ErrInvalidDate), errors.Is(err, period.ErrInvalidRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payout.ErrInvalidArgument):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
