package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activity"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/activityreport"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/auth"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/employee"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/notification"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/performance"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/progress"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/submission"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/domain/user"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/calendar"
	"github.com/rsi-mutabaah/mutabaah-backend-go/internal/pkg/validator"
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
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrRefreshTokenRevoked),
		errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired), errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrEmployeeProfileRequired):
		Forbidden(w, "Account is not linked to an employee")
	case errors.Is(err, auth.ErrGoogleLoginDisabled):
		NotFound(w, err.Error())
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, auth.ErrGoogleSignInFailed):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrGoogleEmailUnverified), errors.Is(err, auth.ErrAccountNotProvisioned):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrGoogleAccountMismatch), errors.Is(err, user.ErrGoogleAccountLinked):
		Conflict(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, "You cannot access this employee")
	case errors.Is(err, employee.ErrInvalidActivation):
		BadRequest(w, "Cannot activate a month that has not started", nil)
	case errors.Is(err, employee.ErrReadingOutsideRange):
		BadRequest(w, "Reading date cannot be in the future", nil)

	// Catalog and calendar
	case errors.Is(err, activity.ErrActivityNotFound):
		NotFound(w, "Activity not found")
	case errors.Is(err, calendar.ErrInvalidMonthKey):
		BadRequest(w, "Month must be in YYYY-MM format", nil)

	// Progress and report errors
	case errors.Is(err, progress.ErrMonthNotActivated),
		errors.Is(err, progress.ErrMonthLocked):
		Forbidden(w, err.Error())
	case errors.Is(err, progress.ErrDayOutOfRange),
		errors.Is(err, progress.ErrFutureDay),
		errors.Is(err, progress.ErrNotChecklist),
		errors.Is(err, activityreport.ErrWrongActivityKind):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, activityreport.ErrDuplicateDate),
		errors.Is(err, activityreport.ErrVersionConflict):
		Conflict(w, err.Error())
	case errors.Is(err, activityreport.ErrEntryNotFound):
		NotFound(w, "Report entry not found")
	case errors.Is(err, activityreport.ErrWriteTimeout):
		GatewayTimeout(w, err.Error())

	// Submission errors
	case errors.Is(err, submission.ErrSubmissionNotFound):
		NotFound(w, "Submission not found")
	case errors.Is(err, submission.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, submission.ErrReviewerMismatch):
		Forbidden(w, err.Error())
	case errors.Is(err, submission.ErrUnsavedChanges),
		errors.Is(err, submission.ErrWindowNotOpen),
		errors.Is(err, submission.ErrNoMentorAssigned):
		BadRequest(w, err.Error(), nil)

	// Performance errors
	case errors.Is(err, performance.ErrWeekNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, performance.ErrFuturePeriod):
		BadRequest(w, err.Error(), nil)

	// Notification errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrInvalidNotificationType):
		BadRequest(w, "Invalid notification type", nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
