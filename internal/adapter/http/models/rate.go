package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/bank-account-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type ConvertAmountRequest struct {
	Amount       string `json:"amount" validate:"required"`
	FromCurrency string `json:"fromCurrency" validate:"required,len=3,alpha"`
	ToCurrency   string `json:"toCurrency" validate:"required,len=3,alpha"`
}

func (r ConvertAmountRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return errors.New("amount must be numeric")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be greater than zero")
	}

	return nil
}

type ConvertAmountResponse struct {
	Amount          string `json:"amount"`
	FromCurrency    string `json:"fromCurrency"`
	ToCurrency      string `json:"toCurrency"`
	ConvertedAmount string `json:"convertedAmount"`
}

type RateResponse struct {
	ID           int64  `json:"id"`
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
	Rate         string `json:"rate"`
	RateDate     string `json:"rateDate"`
	CreatedAt    string `json:"createdAt"`
}

func NewRateResponse(rate domain.Rate) RateResponse {
	return RateResponse{
		ID:           rate.ID,
		FromCurrency: rate.FromCurrency,
		ToCurrency:   rate.ToCurrency,
		Rate:         rate.Rate.String(),
		RateDate:     rate.RateDate.Format("2006-01-02"),
		CreatedAt:    rate.CreatedAt.Format(time.RFC3339),
	}
}
