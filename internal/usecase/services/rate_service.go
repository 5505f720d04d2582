package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/bank-account-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-account-ledger/internal/commons"
	"github.com/api-sage/bank-account-ledger/internal/domain"
	"github.com/api-sage/bank-account-ledger/internal/logger"
	"github.com/api-sage/bank-account-ledger/internal/usecase/service_interfaces"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

// Verify that RateService implements the service_interfaces.RateService interface
var _ service_interfaces.RateService = (*RateService)(nil)

const rateCacheKeyPrefix = "rate:"

// RateService serves exchange rates from the rates table with an optional
// Redis read-through cache in front. It implements domain.CurrencyConverter
// for the ledger: one rate lookup per conversion, so a conversion is
// deterministic within a single ledger operation.
type RateService struct {
	rateRepo repo_interfaces.RateRepository
	cache    redis.Cmdable // nil disables caching
	cacheTTL time.Duration
}

func NewRateService(rateRepo repo_interfaces.RateRepository, cache redis.Cmdable, cacheTTL time.Duration) *RateService {
	return &RateService{
		rateRepo: rateRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Convert returns amount denominated in targetCurrency. Converting into the
// amount's own currency is an identity operation and performs no lookup.
func (s *RateService) Convert(ctx context.Context, amount domain.Money, targetCurrency string) (domain.Money, error) {
	target := strings.ToUpper(strings.TrimSpace(targetCurrency))
	if amount.Currency == target {
		return amount, nil
	}

	rate, err := s.lookupRate(ctx, amount.Currency, target)
	if err != nil {
		return domain.Money{}, err
	}

	return domain.NewMoney(amount.Amount.Mul(rate), target)
}

func (s *RateService) GetRates(ctx context.Context) ([]domain.Rate, error) {
	rates, err := s.rateRepo.GetRates(ctx)
	if err != nil {
		logger.Error("rate service list rates failed", err, nil)
		return nil, err
	}
	return rates, nil
}

func (s *RateService) lookupRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	key := rateCacheKeyPrefix + from + ":" + to

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			if parsed, perr := decimal.NewFromString(cached); perr == nil {
				return parsed, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Warn("rate cache read failed, falling back to store", logger.Fields{
				"pair":  from + "/" + to,
				"cause": err.Error(),
			})
		}
	}

	rate, err := s.rateRepo.GetRate(ctx, from, to)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return decimal.Decimal{}, fmt.Errorf("%w: %s/%s", domain.ErrConversionUnavailable, from, to)
		}
		logger.Error("rate service rate lookup failed", err, logger.Fields{"pair": from + "/" + to})
		return decimal.Decimal{}, err
	}
	if rate.Rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, fmt.Errorf("%w: non-positive %s/%s rate", domain.ErrConversionUnavailable, from, to)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rate.Rate.String(), s.cacheTTL).Err(); err != nil {
			logger.Warn("rate cache write failed", logger.Fields{
				"pair":  from + "/" + to,
				"cause": err.Error(),
			})
		}
	}

	return rate.Rate, nil
}
