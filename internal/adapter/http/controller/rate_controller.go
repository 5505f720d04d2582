package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/api-sage/bank-account-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-account-ledger/internal/commons"
	"github.com/api-sage/bank-account-ledger/internal/domain"
	"github.com/go-chi/chi/v5"
)

// RateService is the slice of the rate subsystem the rate endpoints need.
type RateService interface {
	domain.CurrencyConverter
	GetRates(ctx context.Context) ([]domain.Rate, error)
}

type RateController struct {
	service RateService
}

func NewRateController(service RateService) *RateController {
	return &RateController{service: service}
}

func (c *RateController) RegisterRoutes(r chi.Router) {
	r.Route("/rates", func(r chi.Router) {
		r.Get("/", c.listRates)
		r.Post("/convert", c.convertAmount)
	})
}

func (c *RateController) listRates(w http.ResponseWriter, r *http.Request) {
	rates, err := c.service.GetRates(r.Context())
	if err != nil {
		writeError[[]models.RateResponse](w, "failed to list rates", err)
		return
	}

	resp := make([]models.RateResponse, 0, len(rates))
	for _, rate := range rates {
		resp = append(resp, models.NewRateResponse(rate))
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("rates fetched successfully", resp))
}

func (c *RateController) convertAmount(w http.ResponseWriter, r *http.Request) {
	var req models.ConvertAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ConvertAmountResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ConvertAmountResponse]("validation failed", err.Error()))
		return
	}

	amount, err := domain.MoneyFromString(req.Amount, req.FromCurrency)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.ConvertAmountResponse]("validation failed", err.Error()))
		return
	}

	converted, err := c.service.Convert(r.Context(), amount, req.ToCurrency)
	if err != nil {
		writeError[models.ConvertAmountResponse](w, "failed to convert amount", err)
		return
	}

	resp := models.ConvertAmountResponse{
		Amount:          amount.Amount.StringFixed(domain.MoneyScale),
		FromCurrency:    amount.Currency,
		ToCurrency:      converted.Currency,
		ConvertedAmount: converted.Amount.StringFixed(domain.MoneyScale),
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("amount converted successfully", resp))
}
