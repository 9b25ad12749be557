package httpserver

import (
	"errors"
	"net/http"

	fundingerrors "clearfund/contexts/funding/domain/errors"
	identityerrors "clearfund/contexts/identity-access/identity-service/domain/errors"
)

// fundingStatus maps funding domain sentinels onto HTTP status and a stable
// machine-readable code. Token failures surface here too because every
// funding route authenticates first.
func fundingStatus(err error) (int, string) {
	switch {
	case errors.Is(err, fundingerrors.ErrDonationNotFound):
		return http.StatusNotFound, "donation_not_found"
	case errors.Is(err, fundingerrors.ErrRequestNotFound):
		return http.StatusNotFound, "budget_request_not_found"
	case errors.Is(err, fundingerrors.ErrAllocationNotFound):
		return http.StatusNotFound, "allocation_not_found"
	case errors.Is(err, fundingerrors.ErrInvalidAmount):
		return http.StatusBadRequest, "invalid_amount"
	case errors.Is(err, fundingerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, fundingerrors.ErrInsufficientFunds):
		return http.StatusBadRequest, "insufficient_funds"
	case errors.Is(err, fundingerrors.ErrRequestLocked):
		return http.StatusConflict, "request_locked"
	case errors.Is(err, fundingerrors.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, fundingerrors.ErrAccessDenied):
		return http.StatusForbidden, "access_denied"
	case errors.Is(err, fundingerrors.ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, identityerrors.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid_token"
	case errors.Is(err, fundingerrors.ErrStorageFailure):
		return http.StatusInternalServerError, "storage_failure"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func identityStatus(err error) (int, string) {
	switch {
	case errors.Is(err, identityerrors.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found"
	case errors.Is(err, identityerrors.ErrEmailTaken):
		return http.StatusConflict, "email_taken"
	case errors.Is(err, identityerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, identityerrors.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid_token"
	case errors.Is(err, identityerrors.ErrWeakPassword):
		return http.StatusBadRequest, "weak_password"
	case errors.Is(err, identityerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, identityerrors.ErrStorageFailure):
		return http.StatusInternalServerError, "storage_failure"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
