// Package parse converts the textual comma-separated transaction format
// into typed transactions. It is the only place input text is
// interpreted; the ledger core never sees raw lines.
package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kaikalii/transactor/internal/amount"
	"github.com/kaikalii/transactor/internal/models"
)

var (
	ErrMissingType     = errors.New("missing transaction type")
	ErrMissingClientID = errors.New("missing client id")
	ErrMissingTxID     = errors.New("missing transaction id")
	ErrMissingAmount   = errors.New("missing amount")
)

// Transaction parses one comma-separated record of the form
// "type, client, tx[, amount]". Fields may carry surrounding
// whitespace. Deposit and withdrawal amounts must be present and
// non-negative.
func Transaction(line string) (models.Transaction, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	next := func(missing error) (string, error) {
		if len(fields) == 0 || fields[0] == "" {
			return "", missing
		}
		field := fields[0]
		fields = fields[1:]
		return field, nil
	}

	txType, err := next(ErrMissingType)
	if err != nil {
		return models.Transaction{}, err
	}

	clientField, err := next(ErrMissingClientID)
	if err != nil {
		return models.Transaction{}, err
	}
	client, err := strconv.ParseUint(clientField, 10, 16)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid client id %q", clientField)
	}

	txField, err := next(ErrMissingTxID)
	if err != nil {
		return models.Transaction{}, err
	}
	txID, err := strconv.ParseUint(txField, 10, 32)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid transaction id %q", txField)
	}

	parseAmount := func() (amount.Amount, error) {
		field, err := next(ErrMissingAmount)
		if err != nil {
			return amount.Amount{}, err
		}
		amt, err := amount.FromString(field)
		if err != nil || amt.IsNegative() {
			return amount.Amount{}, fmt.Errorf("invalid amount %q", field)
		}
		return amt, nil
	}

	tx := models.Transaction{
		Type:   models.TxType(txType),
		Client: models.ClientID(client),
		Tx:     models.TxID(txID),
	}
	switch tx.Type {
	case models.TypeDeposit, models.TypeWithdrawal:
		amt, err := parseAmount()
		if err != nil {
			return models.Transaction{}, err
		}
		tx.Amount = amt
	case models.TypeDispute, models.TypeResolve, models.TypeChargeback:
		// Reference-only records carry no amount.
	default:
		return models.Transaction{}, fmt.Errorf("invalid transaction type %q", txType)
	}
	return tx, nil
}
