package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/api-sage/bank-account-ledger/internal/commons"
	"github.com/api-sage/bank-account-ledger/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps domain failures onto HTTP statuses: missing accounts are
// 404, rejected withdrawals 409, unresolvable rates 502, anything else 500.
func writeError[T any](w http.ResponseWriter, message string, err error) {
	writeJSON(w, statusForError(err), commons.ErrorResponse[T](message, err.Error()))
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConversionUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
