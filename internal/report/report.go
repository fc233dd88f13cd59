// Package report renders final account state for external consumers.
package report

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/kaikalii/transactor/internal/amount"
	"github.com/kaikalii/transactor/internal/ledger"
	"github.com/kaikalii/transactor/internal/models"
)

// Row is one account's externally reported state.
type Row struct {
	Client    models.ClientID `json:"client"`
	Available amount.Amount   `json:"available"`
	Held      amount.Amount   `json:"held"`
	Total     amount.Amount   `json:"total"`
	Locked    bool            `json:"locked"`
}

// Snapshot collects one row per account, sorted ascending by client id.
// The ledger itself iterates in unspecified order; sorting here keeps
// output deterministic.
func Snapshot(l *ledger.Ledger) []Row {
	rows := make([]Row, 0, l.Len())
	l.Each(func(client models.ClientID, account *ledger.Account) {
		rows = append(rows, Row{
			Client:    client,
			Available: account.Available(),
			Held:      account.Held(),
			Total:     account.Total(),
			Locked:    account.Frozen(),
		})
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].Client < rows[j].Client })
	return rows
}

// WriteCSV renders rows as "client,available,held,total,locked" with a
// header line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.Client), 10),
			row.Available.String(),
			row.Held.String(),
			row.Total.String(),
			strconv.FormatBool(row.Locked),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
