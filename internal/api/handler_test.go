package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaikalii/transactor/internal/events"
	"github.com/kaikalii/transactor/internal/ledger"
	"github.com/kaikalii/transactor/internal/report"
	"github.com/kaikalii/transactor/pkg/metrics"
)

func newTestServer(t *testing.T) (*httptest.Server, *events.Recorder) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	recorder := events.NewRecorder()
	handler := NewHandler(ledger.NewService(), recorder, metrics.NewCollector(logger), logger)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, recorder
}

func post(t *testing.T, server *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(server.URL+"/transactions", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPostTransaction(t *testing.T) {
	server, recorder := newTestServer(t)

	resp := post(t, server, `{"type":"deposit","client":1,"tx":1,"amount":100.5}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	published := recorder.Events()
	require.Len(t, published, 1)
	accepted, ok := published[0].(events.TransactionAccepted)
	require.True(t, ok)
	assert.Equal(t, "100.5", accepted.Amount.String())
}

func TestPostTransactionRejections(t *testing.T) {
	server, _ := newTestServer(t)

	require.Equal(t, http.StatusCreated,
		post(t, server, `{"type":"deposit","client":1,"tx":1,"amount":50}`).StatusCode)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{
			name:   "duplicate id",
			body:   `{"type":"deposit","client":1,"tx":1,"amount":50}`,
			status: http.StatusConflict,
		},
		{
			name:   "insufficient funds",
			body:   `{"type":"withdrawal","client":1,"tx":2,"amount":500}`,
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "undisputed resolve",
			body:   `{"type":"resolve","client":1,"tx":1}`,
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "invalid type",
			body:   `{"type":"refund","client":1,"tx":3,"amount":5}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "negative amount",
			body:   `{"type":"deposit","client":1,"tx":4,"amount":-5}`,
			status: http.StatusBadRequest,
		},
		{
			name:   "bad body",
			body:   `{`,
			status: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, server, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestGetAccounts(t *testing.T) {
	server, _ := newTestServer(t)

	post(t, server, `{"type":"deposit","client":2,"tx":1,"amount":10}`)
	post(t, server, `{"type":"deposit","client":1,"tx":2,"amount":20}`)

	resp, err := http.Get(server.URL + "/accounts")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []report.Row
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.Len(t, rows, 2)
	assert.EqualValues(t, 1, rows[0].Client, "rows are sorted by client id")
	assert.EqualValues(t, 2, rows[1].Client)
	assert.Equal(t, "20", rows[0].Total.String())
}

func TestGetBalance(t *testing.T) {
	server, _ := newTestServer(t)
	post(t, server, `{"type":"deposit","client":1,"tx":1,"amount":100}`)
	post(t, server, `{"type":"dispute","client":1,"tx":1}`)

	resp, err := http.Get(server.URL + "/accounts/balance?client_id=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var row report.Row
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&row))
	assert.Equal(t, "0", row.Available.String())
	assert.Equal(t, "100", row.Held.String())
	assert.Equal(t, "100", row.Total.String())
	assert.False(t, row.Locked)
}

func TestGetBalanceErrors(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/accounts/balance?client_id=9")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(server.URL + "/accounts/balance")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(server.URL + "/accounts/balance?client_id=abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t)
	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
