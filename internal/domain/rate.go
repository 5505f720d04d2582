package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Rate is one exchange-rate row: how many units of ToCurrency one unit of
// FromCurrency buys on RateDate.
type Rate struct {
	ID           int64
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
	RateDate     time.Time
	CreatedAt    time.Time
}

// CurrencyConverter resolves a monetary amount into a target currency. It is
// injected into the ledger service rather than looked up globally so tests can
// substitute providers per call site. Implementations must be deterministic
// within a single ledger operation: one lookup per conversion, no re-fetching
// mid-operation.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount Money, targetCurrency string) (Money, error)
}
