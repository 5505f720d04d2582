package repo_interfaces

import (
	"context"

	"github.com/api-sage/bank-account-ledger/internal/domain"
)

// LedgerTx is the set of writes available inside a single atomic ledger
// mutation. Implementations guarantee that the account row loaded through
// AccountForUpdate stays protected against concurrent writers until the
// enclosing unit of work completes.
type LedgerTx interface {
	AccountForUpdate(ctx context.Context, id int64) (domain.Account, error)
	UpdateBalance(ctx context.Context, id int64, balance domain.Money) error
	AppendOperation(ctx context.Context, op domain.Operation) (domain.Operation, error)
	DeleteOperations(ctx context.Context, accountID int64) error
	DeleteAccount(ctx context.Context, accountID int64) error
}

// UnitOfWork runs fn inside one transaction: either every write fn performs is
// applied, or none is. fn returning an error rolls everything back. Work on
// different accounts must not block each other.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx LedgerTx) error) error
}
