package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/api-sage/bank-account-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/bank-account-ledger/internal/commons"
	"github.com/api-sage/bank-account-ledger/internal/domain"
	"github.com/api-sage/bank-account-ledger/internal/logger"
	"github.com/api-sage/bank-account-ledger/internal/usecase/service_interfaces"
	"github.com/google/uuid"
)

// Verify that LedgerService implements the service_interfaces.LedgerService interface
var _ service_interfaces.LedgerService = (*LedgerService)(nil)

// LedgerService enforces the ledger invariants: every balance change is
// applied together with exactly one immutable operation record, amounts are
// converted into the account's native currency before arithmetic, and a
// withdrawal never leaves the balance negative.
type LedgerService struct {
	accountRepo     repo_interfaces.AccountRepository
	operationRepo   repo_interfaces.OperationRepository
	uow             repo_interfaces.UnitOfWork
	converter       domain.CurrencyConverter
	defaultCurrency string
}

func NewLedgerService(
	accountRepo repo_interfaces.AccountRepository,
	operationRepo repo_interfaces.OperationRepository,
	uow repo_interfaces.UnitOfWork,
	converter domain.CurrencyConverter,
	defaultCurrency string,
) *LedgerService {
	return &LedgerService{
		accountRepo:     accountRepo,
		operationRepo:   operationRepo,
		uow:             uow,
		converter:       converter,
		defaultCurrency: defaultCurrency,
	}
}

// CreateAccount persists a zero-balance account and, when the initial amount
// is positive, applies it through Deposit so the account starts with exactly
// one DEPOSIT operation. The account's native currency is the initial
// amount's currency, or the configured default when no amount is supplied.
func (s *LedgerService) CreateAccount(ctx context.Context, initial domain.Money) (domain.Account, error) {
	logger.Info("ledger create account request", logger.Fields{
		"initialAmount": initial.String(),
	})

	currency := s.defaultCurrency
	if initial.IsPositive() && initial.Currency != "" {
		currency = initial.Currency
	}

	zero, err := domain.ZeroMoney(currency)
	if err != nil {
		return domain.Account{}, err
	}

	account, err := s.accountRepo.Create(ctx, domain.Account{
		Balance:   zero,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error("ledger create account failed", err, nil)
		return domain.Account{}, err
	}

	if initial.IsPositive() {
		if err := s.Deposit(ctx, account.ID, initial); err != nil {
			return domain.Account{}, err
		}
		return s.GetAccount(ctx, account.ID)
	}

	logger.Info("ledger create account success", logger.Fields{
		"accountId": account.ID,
		"currency":  account.Balance.Currency,
	})

	return account, nil
}

func (s *LedgerService) GetAccount(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return domain.Account{}, fmt.Errorf("%w: %d", domain.ErrAccountNotFound, id)
		}
		logger.Error("ledger get account failed", err, logger.Fields{"accountId": id})
		return domain.Account{}, err
	}
	return account, nil
}

func (s *LedgerService) GetAllAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.GetAll(ctx)
	if err != nil {
		logger.Error("ledger list accounts failed", err, nil)
		return nil, err
	}
	return accounts, nil
}

// Deposit credits the account with amount, converting it into the account's
// native currency first. Balance update and operation record commit
// atomically.
func (s *LedgerService) Deposit(ctx context.Context, accountID int64, amount domain.Money) error {
	logger.Info("ledger deposit request", logger.Fields{
		"accountId": accountID,
		"amount":    amount.String(),
	})

	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	// Resolve the rate before any row is locked to keep lock hold time short.
	funds, err := s.converter.Convert(ctx, amount, account.Balance.Currency)
	if err != nil {
		logger.Error("ledger deposit conversion failed", err, logger.Fields{
			"accountId": accountID,
			"amount":    amount.String(),
			"target":    account.Balance.Currency,
		})
		return err
	}

	return s.uow.Do(ctx, func(tx repo_interfaces.LedgerTx) error {
		current, err := s.lockAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}

		updated, err := current.Balance.Add(funds)
		if err != nil {
			return err
		}

		return s.applyMutation(ctx, tx, current, domain.OperationTypeDeposit, funds, updated)
	})
}

// Withdraw debits the account, converting amount into the account's native
// currency first. It fails with ErrInsufficientFunds before any write when
// the converted amount exceeds the balance.
func (s *LedgerService) Withdraw(ctx context.Context, accountID int64, amount domain.Money) error {
	logger.Info("ledger withdraw request", logger.Fields{
		"accountId": accountID,
		"amount":    amount.String(),
	})

	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	funds, err := s.converter.Convert(ctx, amount, account.Balance.Currency)
	if err != nil {
		logger.Error("ledger withdraw conversion failed", err, logger.Fields{
			"accountId": accountID,
			"amount":    amount.String(),
			"target":    account.Balance.Currency,
		})
		return err
	}

	return s.uow.Do(ctx, func(tx repo_interfaces.LedgerTx) error {
		current, err := s.lockAccount(ctx, tx, accountID)
		if err != nil {
			return err
		}

		cmp, err := current.Balance.Cmp(funds)
		if err != nil {
			return err
		}
		if cmp < 0 {
			return fmt.Errorf("%w: balance %s, requested %s",
				domain.ErrInsufficientFunds, current.Balance, funds)
		}

		updated, err := current.Balance.Sub(funds)
		if err != nil {
			return err
		}

		return s.applyMutation(ctx, tx, current, domain.OperationTypeWithdrawal, funds.Negate(), updated)
	})
}

// UpdateAccountBalance moves the account to an exact target balance by
// applying the delta as a deposit or a withdrawal, so the statement always
// records why the balance changed. A zero delta writes nothing.
func (s *LedgerService) UpdateAccountBalance(ctx context.Context, accountID int64, target domain.Money) (domain.Account, error) {
	logger.Info("ledger update balance request", logger.Fields{
		"accountId": accountID,
		"target":    target.String(),
	})

	account, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	desired, err := s.converter.Convert(ctx, target, account.Balance.Currency)
	if err != nil {
		return domain.Account{}, err
	}

	delta, err := desired.Sub(account.Balance)
	if err != nil {
		return domain.Account{}, err
	}

	switch {
	case delta.IsPositive():
		err = s.Deposit(ctx, accountID, delta)
	case delta.IsNegative():
		err = s.Withdraw(ctx, accountID, delta.Negate())
	default:
		return account, nil
	}
	if err != nil {
		return domain.Account{}, err
	}

	return s.GetAccount(ctx, accountID)
}

// DeleteAccount removes the account together with its whole operation
// history. Operations go first: an interrupted delete may leave orphaned
// operations, never an account-less reference the other way around.
func (s *LedgerService) DeleteAccount(ctx context.Context, accountID int64) error {
	logger.Info("ledger delete account request", logger.Fields{"accountId": accountID})

	return s.uow.Do(ctx, func(tx repo_interfaces.LedgerTx) error {
		if _, err := s.lockAccount(ctx, tx, accountID); err != nil {
			return err
		}
		if err := tx.DeleteOperations(ctx, accountID); err != nil {
			return err
		}
		return tx.DeleteAccount(ctx, accountID)
	})
}

// GetStatement returns the account's operations oldest first. An unknown
// account reads as an empty statement, the same as an account with no
// history; callers that need existence checks use GetAccount.
func (s *LedgerService) GetStatement(ctx context.Context, accountID int64) ([]domain.Operation, error) {
	operations, err := s.operationRepo.ListByAccountID(ctx, accountID)
	if err != nil {
		logger.Error("ledger get statement failed", err, logger.Fields{"accountId": accountID})
		return nil, err
	}
	return operations, nil
}

func (s *LedgerService) lockAccount(ctx context.Context, tx repo_interfaces.LedgerTx, accountID int64) (domain.Account, error) {
	account, err := tx.AccountForUpdate(ctx, accountID)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return domain.Account{}, fmt.Errorf("%w: %d", domain.ErrAccountNotFound, accountID)
		}
		return domain.Account{}, err
	}
	return account, nil
}

func (s *LedgerService) applyMutation(
	ctx context.Context,
	tx repo_interfaces.LedgerTx,
	account domain.Account,
	opType domain.OperationType,
	funds domain.Money,
	updated domain.Money,
) error {
	if err := tx.UpdateBalance(ctx, account.ID, updated); err != nil {
		return err
	}

	op, err := tx.AppendOperation(ctx, domain.Operation{
		AccountID:    account.ID,
		Reference:    uuid.NewString(),
		Type:         opType,
		Funds:        funds,
		OccurredAt:   time.Now().UTC(),
		BalanceAfter: updated,
	})
	if err != nil {
		return err
	}

	logger.Info("ledger operation applied", logger.Fields{
		"accountId":    account.ID,
		"reference":    op.Reference,
		"type":         op.Type.String(),
		"funds":        op.Funds.String(),
		"balanceAfter": op.BalanceAfter.String(),
	})

	return nil
}
