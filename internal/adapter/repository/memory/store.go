// Package memory holds an in-memory implementation of the ledger stores.
// It backs the test suite and demo setups; the Postgres adapter is the
// production store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/api-sage/bank-account-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-account-ledger/internal/commons"
	"github.com/api-sage/bank-account-ledger/internal/domain"
)

var (
	_ repo_interfaces.AccountRepository   = (*Store)(nil)
	_ repo_interfaces.OperationRepository = (*Store)(nil)
	_ repo_interfaces.RateRepository      = (*Store)(nil)
	_ repo_interfaces.UnitOfWork          = (*Store)(nil)
)

// Store keeps accounts, operations and rates in process memory behind one
// mutex. Unit-of-work rollback is implemented by staging all writes on copies
// and swapping them in only when the callback succeeds. The store-wide lock is
// coarser than the row locks the Postgres adapter takes, which is acceptable
// for a test double.
type Store struct {
	mu              sync.RWMutex
	nextAccountID   int64
	nextOperationID int64
	accounts        map[int64]domain.Account
	operations      []domain.Operation
	rates           map[string]domain.Rate
}

func NewStore() *Store {
	return &Store{
		nextAccountID:   1,
		nextOperationID: 1,
		accounts:        make(map[int64]domain.Account),
		rates:           make(map[string]domain.Rate),
	}
}

func (s *Store) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account.ID = s.nextAccountID
	s.nextAccountID++
	s.accounts[account.ID] = account
	return account, nil
}

func (s *Store) GetByID(_ context.Context, id int64) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return account, nil
}

func (s *Store) GetAll(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (s *Store) ListByAccountID(_ context.Context, accountID int64) ([]domain.Operation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	operations := make([]domain.Operation, 0)
	for _, op := range s.operations {
		if op.AccountID == accountID {
			operations = append(operations, op)
		}
	}
	sort.Slice(operations, func(i, j int) bool {
		if operations[i].OccurredAt.Equal(operations[j].OccurredAt) {
			return operations[i].ID < operations[j].ID
		}
		return operations[i].OccurredAt.Before(operations[j].OccurredAt)
	})
	return operations, nil
}

// SeedRate registers an exchange rate for later lookups.
func (s *Store) SeedRate(rate domain.Rate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rates[rateKey(rate.FromCurrency, rate.ToCurrency)] = rate
}

func (s *Store) GetRate(_ context.Context, fromCurrency string, toCurrency string) (domain.Rate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rate, ok := s.rates[rateKey(fromCurrency, toCurrency)]
	if !ok {
		return domain.Rate{}, commons.ErrRecordNotFound
	}
	return rate, nil
}

func (s *Store) GetRates(_ context.Context) ([]domain.Rate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rates := make([]domain.Rate, 0, len(s.rates))
	for _, rate := range s.rates {
		rates = append(rates, rate)
	}
	sort.Slice(rates, func(i, j int) bool {
		if rates[i].FromCurrency == rates[j].FromCurrency {
			return rates[i].ToCurrency < rates[j].ToCurrency
		}
		return rates[i].FromCurrency < rates[j].FromCurrency
	})
	return rates, nil
}

func (s *Store) Do(_ context.Context, fn func(tx repo_interfaces.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &storeTx{
		accounts:        make(map[int64]domain.Account, len(s.accounts)),
		operations:      append([]domain.Operation(nil), s.operations...),
		nextOperationID: s.nextOperationID,
	}
	for id, account := range s.accounts {
		tx.accounts[id] = account
	}

	if err := fn(tx); err != nil {
		return err
	}

	s.accounts = tx.accounts
	s.operations = tx.operations
	s.nextOperationID = tx.nextOperationID
	return nil
}

func rateKey(from, to string) string {
	return from + "/" + to
}

type storeTx struct {
	accounts        map[int64]domain.Account
	operations      []domain.Operation
	nextOperationID int64
}

func (t *storeTx) AccountForUpdate(_ context.Context, id int64) (domain.Account, error) {
	account, ok := t.accounts[id]
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return account, nil
}

func (t *storeTx) UpdateBalance(_ context.Context, id int64, balance domain.Money) error {
	account, ok := t.accounts[id]
	if !ok {
		return commons.ErrRecordNotFound
	}
	account.Balance = balance
	t.accounts[id] = account
	return nil
}

func (t *storeTx) AppendOperation(_ context.Context, op domain.Operation) (domain.Operation, error) {
	op.ID = t.nextOperationID
	t.nextOperationID++
	t.operations = append(t.operations, op)
	return op, nil
}

func (t *storeTx) DeleteOperations(_ context.Context, accountID int64) error {
	kept := t.operations[:0]
	for _, op := range t.operations {
		if op.AccountID != accountID {
			kept = append(kept, op)
		}
	}
	t.operations = kept
	return nil
}

func (t *storeTx) DeleteAccount(_ context.Context, accountID int64) error {
	if _, ok := t.accounts[accountID]; !ok {
		return commons.ErrRecordNotFound
	}
	delete(t.accounts, accountID)
	return nil
}
