package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/api-sage/bank-account-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-account-ledger/internal/commons"
	"github.com/api-sage/bank-account-ledger/internal/domain"
	"github.com/go-chi/chi/v5"
)

// LedgerService is the slice of the ledger engine the account endpoints need.
type LedgerService interface {
	CreateAccount(ctx context.Context, initial domain.Money) (domain.Account, error)
	GetAccount(ctx context.Context, id int64) (domain.Account, error)
	GetAllAccounts(ctx context.Context) ([]domain.Account, error)
	Deposit(ctx context.Context, accountID int64, amount domain.Money) error
	Withdraw(ctx context.Context, accountID int64, amount domain.Money) error
	UpdateAccountBalance(ctx context.Context, accountID int64, target domain.Money) (domain.Account, error)
	DeleteAccount(ctx context.Context, accountID int64) error
	GetStatement(ctx context.Context, accountID int64) ([]domain.Operation, error)
}

type AccountController struct {
	service LedgerService
}

func NewAccountController(service LedgerService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(r chi.Router) {
	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", c.createAccount)
		r.Get("/", c.listAccounts)
		r.Route("/{accountId}", func(r chi.Router) {
			r.Get("/", c.getAccount)
			r.Put("/", c.updateAccount)
			r.Delete("/", c.deleteAccount)
			r.Post("/deposit", c.deposit)
			r.Post("/withdraw", c.withdraw)
			r.Get("/statement", c.statement)
		})
	})
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	initial, err := req.InitialMoney()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	account, err := c.service.CreateAccount(r.Context(), initial)
	if err != nil {
		writeError[models.AccountResponse](w, "failed to create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, commons.SuccessResponse("account created successfully", models.NewAccountResponse(account)))
}

func (c *AccountController) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := c.service.GetAllAccounts(r.Context())
	if err != nil {
		writeError[[]models.AccountResponse](w, "failed to list accounts", err)
		return
	}

	resp := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, models.NewAccountResponse(account))
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("accounts fetched successfully", resp))
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	account, err := c.service.GetAccount(r.Context(), id)
	if err != nil {
		writeError[models.AccountResponse](w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("account fetched successfully", models.NewAccountResponse(account)))
}

func (c *AccountController) updateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req models.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	target, err := req.Money()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	account, err := c.service.UpdateAccountBalance(r.Context(), id, target)
	if err != nil {
		writeError[models.AccountResponse](w, "failed to update account balance", err)
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("account balance updated successfully", models.NewAccountResponse(account)))
}

func (c *AccountController) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	if err := c.service.DeleteAccount(r.Context(), id); err != nil {
		writeError[struct{}](w, "failed to delete account", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *AccountController) deposit(w http.ResponseWriter, r *http.Request) {
	c.applyAmount(w, r, "funds deposited successfully", c.service.Deposit)
}

func (c *AccountController) withdraw(w http.ResponseWriter, r *http.Request) {
	c.applyAmount(w, r, "funds withdrawn successfully", c.service.Withdraw)
}

func (c *AccountController) applyAmount(
	w http.ResponseWriter,
	r *http.Request,
	successMessage string,
	apply func(ctx context.Context, accountID int64, amount domain.Money) error,
) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req models.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	amount, err := req.Money()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	if err := apply(r.Context(), id, amount); err != nil {
		writeError[models.AccountResponse](w, "failed to apply operation", err)
		return
	}

	account, err := c.service.GetAccount(r.Context(), id)
	if err != nil {
		writeError[models.AccountResponse](w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse(successMessage, models.NewAccountResponse(account)))
}

func (c *AccountController) statement(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	operations, err := c.service.GetStatement(r.Context(), id)
	if err != nil {
		writeError[[]models.OperationResponse](w, "failed to get statement", err)
		return
	}

	resp := make([]models.OperationResponse, 0, len(operations))
	for _, op := range operations {
		resp = append(resp, models.NewOperationResponse(op))
	}

	writeJSON(w, http.StatusOK, commons.SuccessResponse("statement fetched successfully", resp))
}

func accountID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "accountId"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", "accountId must be a positive integer"))
		return 0, false
	}
	return id, true
}
