package repo_interfaces

import (
	"context"

	"github.com/api-sage/bank-account-ledger/internal/domain"
)

type AccountRepository interface {
	// Create persists a new account and returns it with its assigned id.
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id int64) (domain.Account, error)
	GetAll(ctx context.Context) ([]domain.Account, error)
}
