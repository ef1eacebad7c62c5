package v1

import (
	"errors"
	"net/http"

	"github.com/budget-buddy/backend/internal/auth"
	"github.com/budget-buddy/backend/internal/models"
	"github.com/budget-buddy/backend/internal/report"
)

// httpMessage is the error and confirmation body shape of the auth,
// expense, recurring and budget endpoints.
type httpMessage struct {
	Message string `json:"message"`
}

// httpError is the error body shape of the report endpoints.
type httpError struct {
	Error string `json:"error"`
}

// status returns the appropriate status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, report.ErrNoData) {
		return http.StatusNotFound
	}

	if errors.Is(err, auth.ErrInvalidToken) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// Auth errors
var (
	errFieldsRequired = errors.New("all fields are required")
	errUserNotFound   = errors.New("user not found")
	errInvalidOTP     = errors.New("invalid OTP")
	errInvalidEmail   = errors.New("invalid email")
	errInvalidPasswd  = errors.New("invalid password")
	errNoToken        = errors.New("no token provided")
)

// Expense errors
var (
	errUserIDRequired  = errors.New("userId is required")
	errInvalidCategory = errors.New("the specified category is invalid")
	errInvalidAmount   = errors.New("amount must be a positive number")
)

// Recurring registry errors
var (
	errActionRequired   = errors.New("action and userId are required")
	errInvalidAction    = errors.New("invalid action")
	errIDRequired       = errors.New("id is required")
	errInvalidFrequency = errors.New("the specified frequency is invalid")
	errInvalidStatus    = errors.New("the specified status is invalid")
	errInvalidDate      = errors.New("dates must be formatted as YYYY-MM-DD")
)

// Report errors
var (
	errInvalidDateRange  = errors.New("invalid date range")
	errExportParamsUnset = errors.New("startDate, endDate and userId are required")
)
