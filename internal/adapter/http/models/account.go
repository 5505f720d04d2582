package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/bank-account-ledger/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

type CreateAccountRequest struct {
	InitialAmount string `json:"initialAmount,omitempty"`
	Currency      string `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`
}

func (r CreateAccountRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	if strings.TrimSpace(r.InitialAmount) == "" {
		return nil
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(r.InitialAmount))
	if err != nil {
		return errors.New("initialAmount must be numeric")
	}
	if amount.IsNegative() {
		return errors.New("initialAmount cannot be negative")
	}
	if strings.TrimSpace(r.Currency) == "" {
		return errors.New("currency is required when initialAmount is set")
	}

	return nil
}

// InitialMoney translates the request into a domain amount. An absent initial
// amount becomes the zero Money value, which the ledger treats as "create
// empty in the default currency".
func (r CreateAccountRequest) InitialMoney() (domain.Money, error) {
	if strings.TrimSpace(r.InitialAmount) == "" {
		return domain.Money{}, nil
	}
	return domain.MoneyFromString(r.InitialAmount, r.Currency)
}

type AmountRequest struct {
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3,alpha"`
}

func (r AmountRequest) Validate() error {
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

func (r AmountRequest) Money() (domain.Money, error) {
	return domain.MoneyFromString(r.Amount, r.Currency)
}

type UpdateAccountRequest struct {
	TargetAmount string `json:"targetAmount" validate:"required"`
	Currency     string `json:"currency" validate:"required,len=3,alpha"`
}

func (r UpdateAccountRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}

	target, err := decimal.NewFromString(strings.TrimSpace(r.TargetAmount))
	if err != nil {
		return errors.New("targetAmount must be numeric")
	}
	if target.IsNegative() {
		return errors.New("targetAmount cannot be negative")
	}

	return nil
}

func (r UpdateAccountRequest) Money() (domain.Money, error) {
	return domain.MoneyFromString(r.TargetAmount, r.Currency)
}

type AccountResponse struct {
	ID        int64  `json:"id"`
	Balance   string `json:"balance"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"createdAt"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Balance:   account.Balance.Amount.StringFixed(domain.MoneyScale),
		Currency:  account.Balance.Currency,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
	}
}

type OperationResponse struct {
	Reference    string `json:"reference"`
	Type         string `json:"type"`
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	OccurredAt   string `json:"occurredAt"`
	BalanceAfter string `json:"balanceAfter"`
}

func NewOperationResponse(op domain.Operation) OperationResponse {
	return OperationResponse{
		Reference:    op.Reference,
		Type:         op.Type.String(),
		Amount:       op.Funds.Amount.StringFixed(domain.MoneyScale),
		Currency:     op.Funds.Currency,
		OccurredAt:   op.OccurredAt.Format(time.RFC3339),
		BalanceAfter: op.BalanceAfter.Amount.StringFixed(domain.MoneyScale),
	}
}
