// Command transactor processes a CSV transaction file and prints the
// final state of every account to stdout.
//
//	transactor transactions.csv > accounts.csv
//
// Per-transaction rejections are logged to stderr and do not stop the
// run. I/O and parse failures abort with a non-zero exit status.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/kaikalii/transactor/internal/config"
	"github.com/kaikalii/transactor/internal/events"
	"github.com/kaikalii/transactor/internal/events/kafka"
	"github.com/kaikalii/transactor/internal/ledger"
	"github.com/kaikalii/transactor/internal/processor"
	"github.com/kaikalii/transactor/internal/report"
	"github.com/kaikalii/transactor/pkg/metrics"
)

func main() {
	cfg := config.Load()
	// stdout carries the report; everything else goes to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if len(os.Args) < 2 {
		logger.Error("expected input file path")
		os.Exit(1)
	}
	inputPath := os.Args[1]

	input, err := os.Open(inputPath)
	if err != nil {
		logger.Error("unable to open input", slog.String("path", inputPath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer input.Close()

	var publisher events.Publisher = events.Discard{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	ctx := context.Background()
	svc := ledger.NewService()
	proc := processor.New(svc, publisher, metrics.NewCollector(logger), logger)

	stats, err := proc.Run(ctx, input)
	if err != nil {
		logger.Error("run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var rows []report.Row
	svc.View(func(l *ledger.Ledger) {
		rows = report.Snapshot(l)
	})
	if err := report.WriteCSV(os.Stdout, rows); err != nil {
		logger.Error("failed to write report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.PostgresDSN != "" {
		store, err := report.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			logger.Error("failed to connect to postgres", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer store.Close()
		if err := store.SaveReport(ctx, rows); err != nil {
			logger.Error("failed to export report", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("run complete",
		slog.Int("applied", stats.Applied),
		slog.Int("rejected", stats.Rejected),
		slog.Int("accounts", len(rows)))
}
