package ledger

import (
	"fmt"

	"github.com/kaikalii/transactor/internal/amount"
	"github.com/kaikalii/transactor/internal/models"
)

// balanceChange records a deposit or withdrawal in an account's history
// so that later disputes can be checked against it.
type balanceChange struct {
	kind   models.TxType
	amount amount.Amount
}

// Account holds a single client's balance state. Fields are behind
// getters because they must only change through Apply.
type Account struct {
	available amount.Amount
	held      amount.Amount
	frozen    bool
	history   map[models.TxID]balanceChange
	disputed  map[models.TxID]struct{}
}

func newAccount() *Account {
	return &Account{
		history:  make(map[models.TxID]balanceChange),
		disputed: make(map[models.TxID]struct{}),
	}
}

// Available returns the funds the client may withdraw immediately.
func (a *Account) Available() amount.Amount {
	return a.available
}

// Held returns the funds locked by open disputes.
func (a *Account) Held() amount.Amount {
	return a.held
}

// Total returns available + held, the client's full balance.
func (a *Account) Total() amount.Amount {
	return a.available.Add(a.held)
}

// Frozen reports whether a chargeback has permanently locked the
// account against withdrawals.
func (a *Account) Frozen() bool {
	return a.frozen
}

// Apply executes a single transaction against the account. A returned
// error means the transaction was rejected and the account is unchanged;
// processing of later transactions may continue.
func (a *Account) Apply(tx models.Transaction) error {
	switch tx.Type {
	case models.TypeDeposit, models.TypeWithdrawal:
		return a.applyChange(tx)
	case models.TypeDispute:
		return a.applyDispute(tx.Tx)
	case models.TypeResolve, models.TypeChargeback:
		return a.applyResolution(tx.Tx, tx.Type)
	default:
		return fmt.Errorf("unknown transaction type %q", tx.Type)
	}
}

func (a *Account) applyChange(tx models.Transaction) error {
	// History is authoritative and never overwritten; a reused id is
	// rejected regardless of transaction kind.
	if _, seen := a.history[tx.Tx]; seen {
		return &DuplicateTransactionError{Tx: tx.Tx}
	}
	switch tx.Type {
	case models.TypeDeposit:
		// Deposits are accepted even on frozen accounts.
		a.available = a.available.Add(tx.Amount)
	case models.TypeWithdrawal:
		if a.frozen {
			return ErrAccountFrozen
		}
		if a.available.Cmp(tx.Amount) < 0 {
			return &InsufficientFundsError{Current: a.available, Requested: tx.Amount}
		}
		a.available = a.available.Sub(tx.Amount)
	}
	a.history[tx.Tx] = balanceChange{kind: tx.Type, amount: tx.Amount}
	return nil
}

func (a *Account) applyDispute(id models.TxID) error {
	change, ok := a.history[id]
	if !ok || change.kind != models.TypeDeposit {
		// Only deposits can be disputed; a withdrawal already removed
		// its funds from the available balance, so there is nothing to
		// hold.
		return &InvalidDisputeError{Tx: id}
	}
	if _, open := a.disputed[id]; open {
		return &InvalidDisputeError{Tx: id}
	}
	a.available = a.available.Sub(change.amount)
	a.held = a.held.Add(change.amount)
	a.disputed[id] = struct{}{}
	return nil
}

func (a *Account) applyResolution(id models.TxID, kind models.TxType) error {
	if _, open := a.disputed[id]; !open {
		return &UndisputedResolutionError{Tx: id, Kind: kind}
	}
	// An open dispute always has a history entry: chargeback removes
	// both together.
	change := a.history[id]
	delete(a.disputed, id)
	switch kind {
	case models.TypeResolve:
		a.available = a.available.Add(change.amount)
		a.held = a.held.Sub(change.amount)
	case models.TypeChargeback:
		a.held = a.held.Sub(change.amount)
		a.frozen = true
		// Dropping the id from history makes a second dispute or
		// chargeback of the same transaction fail instead of
		// double-applying.
		delete(a.history, id)
	}
	return nil
}
