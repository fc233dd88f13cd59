// Package metrics exposes Prometheus instrumentation for transaction
// processing.
package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the metrics for one processing run or server.
type Collector struct {
	registry *prometheus.Registry
	applied  *prometheus.CounterVec
	rejected *prometheus.CounterVec
	accounts prometheus.Gauge
	logger   *slog.Logger
}

// NewCollector creates a collector with its own registry.
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	registry := prometheus.NewRegistry()
	return &Collector{
		registry: registry,
		applied: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "transactions_applied_total",
			Help: "Transactions applied successfully, by type",
		}, []string{"type"}),
		rejected: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "transactions_rejected_total",
			Help: "Transactions rejected by a precondition, by type",
		}, []string{"type"}),
		accounts: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "accounts_total",
			Help: "Number of client accounts ever referenced",
		}),
		logger: logger,
	}
}

// RecordApplied counts a successful transaction.
func (c *Collector) RecordApplied(txType string) {
	c.applied.WithLabelValues(txType).Inc()
}

// RecordRejected counts a rejected transaction.
func (c *Collector) RecordRejected(txType string) {
	c.rejected.WithLabelValues(txType).Inc()
}

// SetAccountCount updates the account gauge.
func (c *Collector) SetAccountCount(n int) {
	c.accounts.Set(float64(n))
}

// Handler returns the /metrics HTTP handler for this registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on addr in a background goroutine and
// returns the server for shutdown.
func (c *Collector) StartServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		c.logger.Info("starting metrics server", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Error("metrics server failed", slog.String("error", err.Error()))
		}
	}()
	return server
}
