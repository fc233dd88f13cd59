package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kaikalii/transactor/internal/models"
)

// TransactionAccepted is emitted after a transaction is applied.
type TransactionAccepted struct {
	EventID    string          `json:"event_id"`
	Client     models.ClientID `json:"client"`
	Tx         models.TxID     `json:"tx"`
	Type       models.TxType   `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// TransactionRejected is emitted when a transaction fails its
// precondition and leaves the account unchanged.
type TransactionRejected struct {
	EventID    string          `json:"event_id"`
	Client     models.ClientID `json:"client"`
	Tx         models.TxID     `json:"tx"`
	Type       models.TxType   `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewTransactionAccepted builds the accepted event for a transaction.
func NewTransactionAccepted(tx models.Transaction) TransactionAccepted {
	return TransactionAccepted{
		EventID:    uuid.New().String(),
		Client:     tx.Client,
		Tx:         tx.Tx,
		Type:       tx.Type,
		Amount:     tx.Amount.Decimal(),
		OccurredAt: time.Now().UTC(),
	}
}

// NewTransactionRejected builds the rejected event for a transaction
// and the error that rejected it.
func NewTransactionRejected(tx models.Transaction, cause error) TransactionRejected {
	return TransactionRejected{
		EventID:    uuid.New().String(),
		Client:     tx.Client,
		Tx:         tx.Tx,
		Type:       tx.Type,
		Amount:     tx.Amount.Decimal(),
		Reason:     cause.Error(),
		OccurredAt: time.Now().UTC(),
	}
}
