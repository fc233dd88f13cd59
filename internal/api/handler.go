// Package api exposes the ledger over HTTP for the server mode.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/kaikalii/transactor/internal/events"
	"github.com/kaikalii/transactor/internal/ledger"
	"github.com/kaikalii/transactor/internal/models"
	"github.com/kaikalii/transactor/internal/report"
	"github.com/kaikalii/transactor/pkg/metrics"
)

// Handler serves the transaction and account endpoints.
type Handler struct {
	ledger    *ledger.Service
	publisher events.Publisher
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewHandler wires the HTTP layer.
func NewHandler(svc *ledger.Service, publisher events.Publisher, collector *metrics.Collector, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		ledger:    svc,
		publisher: publisher,
		collector: collector,
		logger:    logger,
	}
}

// RegisterRoutes attaches all endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /transactions", h.postTransaction)
	mux.HandleFunc("GET /accounts", h.getAccounts)
	mux.HandleFunc("GET /accounts/balance", h.getBalance)
	mux.HandleFunc("GET /health", h.health)
}

func (h *Handler) postTransaction(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch tx.Type {
	case models.TypeDeposit, models.TypeWithdrawal,
		models.TypeDispute, models.TypeResolve, models.TypeChargeback:
	default:
		writeError(w, http.StatusBadRequest, "invalid transaction type")
		return
	}
	if (tx.Type == models.TypeDeposit || tx.Type == models.TypeWithdrawal) && tx.Amount.IsNegative() {
		writeError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}

	if err := h.ledger.Apply(tx); err != nil {
		h.collector.RecordRejected(string(tx.Type))
		h.publish(r, events.NewTransactionRejected(tx, err))
		writeError(w, statusFor(err), err.Error())
		return
	}

	h.collector.RecordApplied(string(tx.Type))
	h.publish(r, events.NewTransactionAccepted(tx))
	writeJSON(w, http.StatusCreated, map[string]string{"status": "applied"})
}

func (h *Handler) getAccounts(w http.ResponseWriter, r *http.Request) {
	var rows []report.Row
	h.ledger.View(func(l *ledger.Ledger) {
		rows = report.Snapshot(l)
	})
	writeJSON(w, http.StatusOK, rows)
}

func (h *Handler) getBalance(w http.ResponseWriter, r *http.Request) {
	clientField := r.URL.Query().Get("client_id")
	if clientField == "" {
		writeError(w, http.StatusBadRequest, "client_id is required")
		return
	}
	clientID, err := strconv.ParseUint(clientField, 10, 16)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client_id")
		return
	}

	var (
		row   report.Row
		found bool
	)
	h.ledger.View(func(l *ledger.Ledger) {
		account, ok := l.Get(models.ClientID(clientID))
		if !ok {
			return
		}
		found = true
		row = report.Row{
			Client:    models.ClientID(clientID),
			Available: account.Available(),
			Held:      account.Held(),
			Total:     account.Total(),
			Locked:    account.Frozen(),
		}
	})
	if !found {
		writeError(w, http.StatusNotFound, "unknown client")
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) publish(r *http.Request, event any) {
	if err := h.publisher.Publish(r.Context(), event); err != nil {
		h.logger.Warn("failed to publish event", slog.String("error", err.Error()))
	}
}

// statusFor maps ledger rejections onto HTTP statuses. Every rejection
// is a client-side precondition failure, not a server fault.
func statusFor(err error) int {
	var (
		dup       *ledger.DuplicateTransactionError
		funds     *ledger.InsufficientFundsError
		dispute   *ledger.InvalidDisputeError
		undispute *ledger.UndisputedResolutionError
	)
	switch {
	case errors.As(err, &dup):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrAccountFrozen),
		errors.As(err, &funds),
		errors.As(err, &dispute),
		errors.As(err, &undispute):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
