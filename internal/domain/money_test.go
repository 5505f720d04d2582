package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyNormalizesCurrencyAndScale(t *testing.T) {
	m, err := NewMoney(decimal.RequireFromString("10.123456"), " usd ")
	require.NoError(t, err)

	assert.Equal(t, "USD", m.Currency)
	assert.Equal(t, "10.1235", m.Amount.StringFixed(MoneyScale))
}

func TestNewMoneyRejectsInvalidCurrency(t *testing.T) {
	for _, currency := range []string{"", "EU", "EURO", "E1R"} {
		_, err := NewMoney(decimal.NewFromInt(1), currency)
		assert.Error(t, err, "currency %q", currency)
	}
}

func TestMoneyFromString(t *testing.T) {
	m, err := MoneyFromString(" 123.45 ", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "123.4500 EUR", m.String())

	_, err = MoneyFromString("not-a-number", "EUR")
	assert.Error(t, err)
}

func TestMoneyAddAndSubSameCurrency(t *testing.T) {
	a, _ := MoneyFromString("200.00", "EUR")
	b, _ := MoneyFromString("50.00", "EUR")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "250.0000 EUR", sum.String())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, "150.0000 EUR", diff.String())

	// the operands are untouched
	assert.Equal(t, "200.0000 EUR", a.String())
	assert.Equal(t, "50.0000 EUR", b.String())
}

func TestMoneyArithmeticRejectsMixedCurrencies(t *testing.T) {
	a, _ := MoneyFromString("10", "EUR")
	b, _ := MoneyFromString("10", "USD")

	_, err := a.Add(b)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = a.Sub(b)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)

	_, err = a.Cmp(b)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoneyNegate(t *testing.T) {
	m, _ := MoneyFromString("42.50", "GBP")
	n := m.Negate()

	assert.Equal(t, "-42.5000 GBP", n.String())
	assert.True(t, n.IsNegative())
	assert.True(t, n.Negate().Equal(m))
}

func TestMoneySignPredicates(t *testing.T) {
	zero, _ := ZeroMoney("EUR")
	pos, _ := MoneyFromString("0.0001", "EUR")

	assert.True(t, zero.IsZero())
	assert.False(t, zero.IsPositive())
	assert.False(t, zero.IsNegative())
	assert.True(t, pos.IsPositive())
	assert.True(t, pos.Negate().IsNegative())
}

func TestMoneyCmp(t *testing.T) {
	small, _ := MoneyFromString("1", "EUR")
	big, _ := MoneyFromString("2", "EUR")

	cmp, err := small.Cmp(big)
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	cmp, err = big.Cmp(small)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)

	cmp, err = small.Cmp(small)
	require.NoError(t, err)
	assert.Equal(t, 0, cmp)
}
