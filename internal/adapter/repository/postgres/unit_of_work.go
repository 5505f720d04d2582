package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/bank-account-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-account-ledger/internal/commons"
	"github.com/api-sage/bank-account-ledger/internal/domain"
)

var _ repo_interfaces.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork wraps each ledger mutation in a read-committed transaction.
// Row-level locking via AccountForUpdate keeps concurrent writers off the same
// account while letting work on different accounts proceed in parallel.
type UnitOfWork struct {
	db *sql.DB
}

func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(tx repo_interfaces.LedgerTx) error) error {
	dbTx, err := u.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin ledger tx: %w", err)
	}

	if err := fn(&ledgerTx{tx: dbTx}); err != nil {
		_ = dbTx.Rollback()
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit ledger tx: %w", err)
	}

	return nil
}

type ledgerTx struct {
	tx *sql.Tx
}

func (t *ledgerTx) AccountForUpdate(ctx context.Context, id int64) (domain.Account, error) {
	const query = `
SELECT id, balance, currency, created_at
FROM accounts
WHERE id = $1
FOR UPDATE`

	account, err := scanAccount(t.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, commons.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("lock account %d: %w", id, err)
	}

	return account, nil
}

func (t *ledgerTx) UpdateBalance(ctx context.Context, id int64, balance domain.Money) error {
	const query = `UPDATE accounts SET balance = $1 WHERE id = $2`

	result, err := t.tx.ExecContext(ctx, query, balance.Amount, id)
	if err != nil {
		return fmt.Errorf("update balance for account %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update balance rows affected: %w", err)
	}
	if affected == 0 {
		return commons.ErrRecordNotFound
	}

	return nil
}

func (t *ledgerTx) AppendOperation(ctx context.Context, op domain.Operation) (domain.Operation, error) {
	const query = `
INSERT INTO operations (account_id, reference, type, amount, currency, occurred_at, balance_after, balance_currency)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

	if err := t.tx.QueryRowContext(
		ctx,
		query,
		op.AccountID,
		op.Reference,
		int(op.Type),
		op.Funds.Amount,
		op.Funds.Currency,
		op.OccurredAt,
		op.BalanceAfter.Amount,
		op.BalanceAfter.Currency,
	).Scan(&op.ID); err != nil {
		return domain.Operation{}, fmt.Errorf("append operation for account %d: %w", op.AccountID, err)
	}

	return op, nil
}

func (t *ledgerTx) DeleteOperations(ctx context.Context, accountID int64) error {
	const query = `DELETE FROM operations WHERE account_id = $1`

	if _, err := t.tx.ExecContext(ctx, query, accountID); err != nil {
		return fmt.Errorf("delete operations for account %d: %w", accountID, err)
	}

	return nil
}

func (t *ledgerTx) DeleteAccount(ctx context.Context, accountID int64) error {
	const query = `DELETE FROM accounts WHERE id = $1`

	result, err := t.tx.ExecContext(ctx, query, accountID)
	if err != nil {
		return fmt.Errorf("delete account %d: %w", accountID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account rows affected: %w", err)
	}
	if affected == 0 {
		return commons.ErrRecordNotFound
	}

	return nil
}
