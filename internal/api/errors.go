package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"goodsmile/clinic/internal/bangla"
	"goodsmile/clinic/internal/billing"
	"goodsmile/clinic/internal/ledger"
	"goodsmile/clinic/internal/schedule"
	"goodsmile/clinic/internal/session"
	"goodsmile/clinic/internal/store"
)

// AppError carries the HTTP status and code an error should be reported with.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, status int, err error) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

func passwordMessage(remaining int) string {
	return fmt.Sprintf("ভুল পাসওয়ার্ড। %s টি চেষ্টা বাকি আছে।", bangla.Digits(strconv.Itoa(remaining)))
}

func badRequest(message string, err error) *AppError {
	return NewAppError("invalid_argument", message, http.StatusBadRequest, err)
}

// classify maps package errors onto their HTTP shape.
func (h *Handler) classify(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var verrs validator.ValidationErrors
	var perr *session.PasswordError
	switch {
	case errors.As(err, &perr):
		return NewAppError("invalid_password", passwordMessage(perr.Remaining), http.StatusUnauthorized, err)
	case errors.As(err, &verrs):
		return NewAppError("validation_failed", validationMessage(verrs), http.StatusBadRequest, err)
	case errors.Is(err, billing.ErrInvalidArgument),
		errors.Is(err, ledger.ErrInvalidPeriod),
		errors.Is(err, schedule.ErrInvalidSlot):
		return badRequest(err.Error(), err)
	case errors.Is(err, schedule.ErrClosedDay):
		return NewAppError("clinic_closed", h.policy.ClosedDayMessage(), http.StatusUnprocessableEntity, err)
	case errors.Is(err, schedule.ErrOutsideHours):
		return NewAppError("outside_hours", h.policy.HoursMessage(), http.StatusUnprocessableEntity, err)
	case errors.Is(err, store.ErrNotFound):
		return NewAppError("not_found", "record not found", http.StatusNotFound, err)
	case errors.Is(err, session.ErrInvalidPassword):
		return NewAppError("invalid_password", "ভুল পাসওয়ার্ড", http.StatusUnauthorized, err)
	case errors.Is(err, session.ErrLockedOut):
		return NewAppError("locked_out", "অনেকবার ভুল চেষ্টা, কিছুক্ষণ পর আবার চেষ্টা করুন", http.StatusTooManyRequests, err)
	case errors.Is(err, session.ErrInvalidToken):
		return NewAppError("unauthorized", "invalid token", http.StatusUnauthorized, err)
	default:
		return NewAppError("internal", "internal server error", http.StatusInternalServerError, err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	appErr := h.classify(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	respondError(w, appErr.HTTPStatus, appErr.Code, appErr.Message)
}
