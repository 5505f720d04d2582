package domain

import "errors"

var (
	// ErrAccountNotFound is returned when an operation references an account
	// id that does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientFunds is returned by withdrawals that would leave the
	// balance negative. Retrying without caller intervention cannot succeed.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrCurrencyMismatch is returned by Money arithmetic across currencies.
	// The ledger service always converts before arithmetic, so hitting this
	// through a public operation indicates a programming defect.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrConversionUnavailable is returned when no exchange rate exists for a
	// currency pair. No mutation is applied and no operation is recorded.
	ErrConversionUnavailable = errors.New("conversion rate unavailable")
)
