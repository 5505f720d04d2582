package domain

import (
	"fmt"
	"time"
)

// Account is a bank account denominated in a single native currency.
// Balance is only ever mutated through the ledger service's deposit and
// withdraw primitives.
type Account struct {
	ID        int64
	Balance   Money
	CreatedAt time.Time
}

type OperationType int

const (
	OperationTypeDeposit OperationType = iota
	OperationTypeWithdrawal
)

func (t OperationType) String() string {
	switch t {
	case OperationTypeDeposit:
		return "DEPOSIT"
	case OperationTypeWithdrawal:
		return "WITHDRAWAL"
	default:
		return fmt.Sprintf("OperationType(%d)", int(t))
	}
}

// Operation is one immutable ledger entry: a single deposit or withdrawal in
// the account's native currency, together with the balance that resulted from
// it. Funds is signed, positive for deposits and negative for withdrawals.
// Operations are append-only; they are removed only when their account is
// deleted.
type Operation struct {
	ID           int64
	AccountID    int64
	Reference    string
	Type         OperationType
	Funds        Money
	OccurredAt   time.Time
	BalanceAfter Money
}
