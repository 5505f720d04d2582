package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/bank-account-ledger/internal/commons"
	"github.com/api-sage/bank-account-ledger/internal/domain"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (balance, currency, created_at)
VALUES ($1, $2, $3)
RETURNING id`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.Balance.Amount,
		account.Balance.Currency,
		account.CreatedAt,
	).Scan(&account.ID); err != nil {
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	const query = `
SELECT id, balance, currency, created_at
FROM accounts
WHERE id = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, commons.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("get account %d: %w", id, err)
	}

	return account, nil
}

func (r *AccountRepository) GetAll(ctx context.Context) ([]domain.Account, error) {
	const query = `
SELECT id, balance, currency, created_at
FROM accounts
ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.Balance.Amount,
		&account.Balance.Currency,
		&account.CreatedAt,
	); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}
