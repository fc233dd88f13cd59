// Package ledger implements the account transaction state machine and
// the registry of client accounts it runs against.
package ledger

import (
	"github.com/kaikalii/transactor/internal/models"
)

// Ledger is a collection of client accounts indexed by client id.
// Accounts are created lazily on first reference and never removed
// during a run. Ledger itself is not safe for concurrent use; wrap it
// in a Service when transactions arrive from multiple goroutines.
type Ledger struct {
	accounts map[models.ClientID]*Account
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{accounts: make(map[models.ClientID]*Account)}
}

// Apply routes a transaction to the account of its client, creating the
// account if this is the first reference to the client id, and executes
// it. The result of the account transition is returned unchanged.
func (l *Ledger) Apply(tx models.Transaction) error {
	account, ok := l.accounts[tx.Client]
	if !ok {
		account = newAccount()
		l.accounts[tx.Client] = account
	}
	return account.Apply(tx)
}

// Get returns the account for a client id, or false if the client has
// never been referenced.
func (l *Ledger) Get(client models.ClientID) (*Account, bool) {
	account, ok := l.accounts[client]
	return account, ok
}

// Each calls fn for every (client, account) pair in unspecified order.
// Callers needing deterministic output must sort by client id.
func (l *Ledger) Each(fn func(models.ClientID, *Account)) {
	for client, account := range l.accounts {
		fn(client, account)
	}
}

// Len returns the number of accounts ever referenced.
func (l *Ledger) Len() int {
	return len(l.accounts)
}
