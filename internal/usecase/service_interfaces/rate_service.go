package service_interfaces

import (
	"context"

	"github.com/api-sage/bank-account-ledger/internal/domain"
)

// RateService resolves exchange rates and converts amounts between
// currencies. It doubles as the ledger's injected CurrencyConverter.
type RateService interface {
	domain.CurrencyConverter
	GetRates(ctx context.Context) ([]domain.Rate, error)
}
