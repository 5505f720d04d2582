package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyScale is the fractional precision kept for every monetary amount.
// Four decimal places so that converted amounts survive rounding.
const MoneyScale int32 = 4

// Money pairs a decimal amount with an ISO-4217 currency code. It is a value
// type: every operation returns a new Money and never mutates the receiver.
// Arithmetic requires matching currencies; callers convert first via a
// CurrencyConverter.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// NewMoney builds a Money from an amount and a 3-letter currency code,
// rounding the amount to MoneyScale.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	ccy, err := normalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: amount.Round(MoneyScale), Currency: ccy}, nil
}

// MoneyFromString parses a decimal string into a Money.
func MoneyFromString(amount, currency string) (Money, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return NewMoney(parsed, currency)
}

// ZeroMoney returns a zero amount in the given currency.
func ZeroMoney(currency string) (Money, error) {
	return NewMoney(decimal.Zero, currency)
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Add(other.Amount).Round(MoneyScale), Currency: m.Currency}, nil
}

func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount.Sub(other.Amount).Round(MoneyScale), Currency: m.Currency}, nil
}

// Negate flips the sign of the amount, keeping the currency.
func (m Money) Negate() Money {
	return Money{Amount: m.Amount.Neg(), Currency: m.Currency}
}

func (m Money) IsPositive() bool { return m.Amount.IsPositive() }

func (m Money) IsNegative() bool { return m.Amount.IsNegative() }

func (m Money) IsZero() bool { return m.Amount.IsZero() }

// Cmp compares two amounts of the same currency: -1 if m < other, 0 if equal,
// +1 if m > other.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	return m.Amount.Cmp(other.Amount), nil
}

// Equal reports whether both amount and currency match.
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return m.Amount.StringFixed(MoneyScale) + " " + m.Currency
}

func (m Money) sameCurrency(other Money) error {
	if m.Currency != other.Currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return nil
}

func normalizeCurrency(currency string) (string, error) {
	ccy := strings.ToUpper(strings.TrimSpace(currency))
	if len(ccy) != 3 {
		return "", fmt.Errorf("invalid currency code %q", currency)
	}
	for _, ch := range ccy {
		if ch < 'A' || ch > 'Z' {
			return "", fmt.Errorf("invalid currency code %q", currency)
		}
	}
	return ccy, nil
}
