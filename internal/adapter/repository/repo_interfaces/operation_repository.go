package repo_interfaces

import (
	"context"

	"github.com/api-sage/bank-account-ledger/internal/domain"
)

type OperationRepository interface {
	// ListByAccountID returns the account's operations ordered by occurrence
	// time ascending. An unknown account yields an empty slice, not an error.
	ListByAccountID(ctx context.Context, accountID int64) ([]domain.Operation, error)
}
