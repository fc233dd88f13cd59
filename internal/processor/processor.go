// Package processor drives a batch run: it streams transactions from a
// source, applies each one to the ledger, and surfaces outcomes.
package processor

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/kaikalii/transactor/internal/events"
	"github.com/kaikalii/transactor/internal/ledger"
	"github.com/kaikalii/transactor/internal/parse"
	"github.com/kaikalii/transactor/pkg/metrics"
)

// Stats summarizes one run.
type Stats struct {
	Applied  int
	Rejected int
}

// Processor applies a transaction stream to a ledger service.
type Processor struct {
	ledger    *ledger.Service
	publisher events.Publisher
	collector *metrics.Collector
	logger    *slog.Logger
}

// New wires a processor. publisher and collector may not be nil; use
// events.Discard and a fresh collector for runs without integrations.
func New(svc *ledger.Service, publisher events.Publisher, collector *metrics.Collector, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		ledger:    svc,
		publisher: publisher,
		collector: collector,
		logger:    logger,
	}
}

// Run consumes the source until EOF. A transaction rejected by the
// ledger is reported and processing continues; an unreadable or
// malformed line aborts the run with an error. The ledger keeps every
// transaction applied before the failure.
func (p *Processor) Run(ctx context.Context, source io.Reader) (Stats, error) {
	var stats Stats
	reader := parse.NewReader(source)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		tx, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}

		if err := p.ledger.Apply(tx); err != nil {
			stats.Rejected++
			p.collector.RecordRejected(string(tx.Type))
			p.logger.Warn("transaction rejected",
				slog.Int("line", reader.Line()),
				slog.Uint64("client", uint64(tx.Client)),
				slog.Uint64("tx", uint64(tx.Tx)),
				slog.String("type", string(tx.Type)),
				slog.String("error", err.Error()))
			p.publish(ctx, events.NewTransactionRejected(tx, err))
			continue
		}

		stats.Applied++
		p.collector.RecordApplied(string(tx.Type))
		p.publish(ctx, events.NewTransactionAccepted(tx))
	}

	p.ledger.View(func(l *ledger.Ledger) {
		p.collector.SetAccountCount(l.Len())
	})
	return stats, nil
}

func (p *Processor) publish(ctx context.Context, event any) {
	if err := p.publisher.Publish(ctx, event); err != nil {
		// Outcome publishing is best-effort and never stops ingestion.
		p.logger.Warn("failed to publish event", slog.String("error", err.Error()))
	}
}
