package service_interfaces

import (
	"context"

	"github.com/api-sage/bank-account-ledger/internal/domain"
)

// LedgerService is the sole authority for balance mutation and operation
// recording.
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
