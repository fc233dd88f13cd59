package ledger

import (
	"errors"
	"fmt"

	"github.com/kaikalii/transactor/internal/amount"
	"github.com/kaikalii/transactor/internal/models"
)

// ErrAccountFrozen is returned when a withdrawal is attempted on an
// account that has had a chargeback.
var ErrAccountFrozen = errors.New("account is frozen")

// DuplicateTransactionError reports a deposit or withdrawal reusing a
// transaction id already present in the account history.
type DuplicateTransactionError struct {
	Tx models.TxID
}

func (e *DuplicateTransactionError) Error() string {
	return fmt.Sprintf("transaction id %d has already been used", e.Tx)
}

// InsufficientFundsError reports a withdrawal exceeding the available
// balance.
type InsufficientFundsError struct {
	Current   amount.Amount
	Requested amount.Amount
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("attempted to withdraw %s from an account with %s available",
		e.Requested, e.Current)
}

// InvalidDisputeError reports a dispute referencing a transaction that
// does not exist, is not a deposit, or is already under dispute.
type InvalidDisputeError struct {
	Tx models.TxID
}

func (e *InvalidDisputeError) Error() string {
	return fmt.Sprintf("transaction id %d does not exist or cannot be disputed", e.Tx)
}

// UndisputedResolutionError reports a resolve or chargeback referencing
// a transaction id that is not currently under dispute.
type UndisputedResolutionError struct {
	Tx   models.TxID
	Kind models.TxType
}

func (e *UndisputedResolutionError) Error() string {
	return fmt.Sprintf("%s rejected: transaction id %d is not under dispute", e.Kind, e.Tx)
}
