package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/bank-account-ledger/internal/domain"
)

type OperationRepository struct {
	db *sql.DB
}

func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

func (r *OperationRepository) ListByAccountID(ctx context.Context, accountID int64) ([]domain.Operation, error) {
	const query = `
SELECT id, account_id, reference, type, amount, currency, occurred_at, balance_after, balance_currency
FROM operations
WHERE account_id = $1
ORDER BY occurred_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("list operations for account %d: %w", accountID, err)
	}
	defer rows.Close()

	operations := make([]domain.Operation, 0)
	for rows.Next() {
		var (
			op     domain.Operation
			opType int
		)
		if err := rows.Scan(
			&op.ID,
			&op.AccountID,
			&op.Reference,
			&opType,
			&op.Funds.Amount,
			&op.Funds.Currency,
			&op.OccurredAt,
			&op.BalanceAfter.Amount,
			&op.BalanceAfter.Currency,
		); err != nil {
			return nil, fmt.Errorf("scan operation row: %w", err)
		}
		op.Type = domain.OperationType(opType)
		operations = append(operations, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate operation rows: %w", err)
	}

	return operations, nil
}
