package models

import (
	"github.com/kaikalii/transactor/internal/amount"
)

// ClientID identifies a client account. Accounts are created implicitly
// on the first transaction referencing an id.
type ClientID uint16

// TxID identifies a transaction. Ids are assigned by the upstream
// source and must be unique for the lifetime of a run.
type TxID uint32

// TxType enumerates the five supported transaction kinds.
type TxType string

const (
	TypeDeposit    TxType = "deposit"
	TypeWithdrawal TxType = "withdrawal"
	TypeDispute    TxType = "dispute"
	TypeResolve    TxType = "resolve"
	TypeChargeback TxType = "chargeback"
)

// Transaction is a single client-specific transaction to be executed on
// a ledger. Amount is meaningful only for deposits and withdrawals;
// dispute, resolve and chargeback reference a prior transaction by id.
type Transaction struct {
	Type   TxType        `json:"type"`
	Client ClientID      `json:"client"`
	Tx     TxID          `json:"tx"`
	Amount amount.Amount `json:"amount,omitempty"`
}

// NewDeposit builds a deposit transaction.
func NewDeposit(client ClientID, tx TxID, amt amount.Amount) Transaction {
	return Transaction{Type: TypeDeposit, Client: client, Tx: tx, Amount: amt}
}

// NewWithdrawal builds a withdrawal transaction.
func NewWithdrawal(client ClientID, tx TxID, amt amount.Amount) Transaction {
	return Transaction{Type: TypeWithdrawal, Client: client, Tx: tx, Amount: amt}
}

// NewDispute builds a dispute referencing a prior deposit.
func NewDispute(client ClientID, tx TxID) Transaction {
	return Transaction{Type: TypeDispute, Client: client, Tx: tx}
}

// NewResolve builds a resolve for an open dispute.
func NewResolve(client ClientID, tx TxID) Transaction {
	return Transaction{Type: TypeResolve, Client: client, Tx: tx}
}

// NewChargeback builds a chargeback for an open dispute.
func NewChargeback(client ClientID, tx TxID) Transaction {
	return Transaction{Type: TypeChargeback, Client: client, Tx: tx}
}
