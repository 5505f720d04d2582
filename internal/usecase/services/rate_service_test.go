package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/bank-account-ledger/internal/adapter/repository/memory"
	"github.com/api-sage/bank-account-ledger/internal/domain"
	"github.com/api-sage/bank-account-ledger/internal/usecase/services"
	"github.com/go-redis/redismock/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertSameCurrencyIsIdentity(t *testing.T) {
	// no rates seeded: an identity conversion must never hit the store
	svc := services.NewRateService(memory.NewStore(), nil, 0)

	amount := money(t, "42.10", "EUR")
	converted, err := svc.Convert(context.Background(), amount, "eur")
	require.NoError(t, err)
	assert.True(t, converted.Equal(amount))
}

func TestConvertAppliesStoredRate(t *testing.T) {
	store := memory.NewStore()
	store.SeedRate(domain.Rate{
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		Rate:         decimal.RequireFromString("0.85"),
		RateDate:     time.Now().UTC(),
	})
	svc := services.NewRateService(store, nil, 0)

	converted, err := svc.Convert(context.Background(), money(t, "100.00", "USD"), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "85.0000 EUR", converted.String())
}

func TestConvertUnknownPair(t *testing.T) {
	svc := services.NewRateService(memory.NewStore(), nil, 0)

	_, err := svc.Convert(context.Background(), money(t, "100.00", "USD"), "JPY")
	assert.ErrorIs(t, err, domain.ErrConversionUnavailable)
}

func TestConvertRejectsNonPositiveRate(t *testing.T) {
	store := memory.NewStore()
	store.SeedRate(domain.Rate{
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		Rate:         decimal.Zero,
		RateDate:     time.Now().UTC(),
	})
	svc := services.NewRateService(store, nil, 0)

	_, err := svc.Convert(context.Background(), money(t, "100.00", "USD"), "EUR")
	assert.ErrorIs(t, err, domain.ErrConversionUnavailable)
}

func TestConvertServesFromCacheWithoutStoreLookup(t *testing.T) {
	cache, mock := redismock.NewClientMock()
	mock.ExpectGet("rate:USD:EUR").SetVal("0.5")

	// empty store: a store lookup would fail, proving the hit came from cache
	svc := services.NewRateService(memory.NewStore(), cache, time.Minute)

	converted, err := svc.Convert(context.Background(), money(t, "100.00", "USD"), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "50.0000 EUR", converted.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConvertPopulatesCacheOnMiss(t *testing.T) {
	cache, mock := redismock.NewClientMock()
	mock.ExpectGet("rate:USD:EUR").RedisNil()
	mock.ExpectSet("rate:USD:EUR", "0.85", time.Minute).SetVal("OK")

	store := memory.NewStore()
	store.SeedRate(domain.Rate{
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		Rate:         decimal.RequireFromString("0.85"),
		RateDate:     time.Now().UTC(),
	})
	svc := services.NewRateService(store, cache, time.Minute)

	converted, err := svc.Convert(context.Background(), money(t, "100.00", "USD"), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "85.0000 EUR", converted.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConvertFallsBackWhenCacheErrors(t *testing.T) {
	cache, mock := redismock.NewClientMock()
	mock.ExpectGet("rate:USD:EUR").SetErr(assert.AnError)
	mock.ExpectSet("rate:USD:EUR", "0.85", time.Minute).SetErr(assert.AnError)

	store := memory.NewStore()
	store.SeedRate(domain.Rate{
		FromCurrency: "USD",
		ToCurrency:   "EUR",
		Rate:         decimal.RequireFromString("0.85"),
		RateDate:     time.Now().UTC(),
	})
	svc := services.NewRateService(store, cache, time.Minute)

	converted, err := svc.Convert(context.Background(), money(t, "100.00", "USD"), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "85.0000 EUR", converted.String())
}

func TestGetRates(t *testing.T) {
	store := memory.NewStore()
	store.SeedRate(domain.Rate{FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.85")})
	store.SeedRate(domain.Rate{FromCurrency: "EUR", ToCurrency: "GBP", Rate: decimal.RequireFromString("0.87")})
	svc := services.NewRateService(store, nil, 0)

	rates, err := svc.GetRates(context.Background())
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "EUR", rates[0].FromCurrency)
	assert.Equal(t, "USD", rates[1].FromCurrency)
}
