package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	intconfig "fleetops/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func upstreamServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer cli-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/duties":
			_, _ = w.Write([]byte(`[
				{"_id":"d1","driver":{"_id":"p1","name":"Ram"},"date":"2024-02-02","dailyWage":500,
				 "punchIn":{"time":"08:00","km":100},"punchOut":{"time":"18:00","km":160}},
				{"_id":"d2","driver":"p2","date":"2024-02-03","dailyWage":"800"}
			]`))
		case "/api/advances":
			_, _ = w.Write([]byte(`[{"_id":"a1","driver":"p1","date":"2024-02-04","amount":200}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunPrintsPersonLedger(t *testing.T) {
	srv := upstreamServer(t)
	env := intconfig.Env{UpstreamBaseURL: srv.URL, UpstreamToken: "cli-token"}

	var out bytes.Buffer
	err := run(context.Background(), []string{"-from", "2024-02-01", "-to", "2024-02-29", "-person", "p1"}, env, zap.NewNop(), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "gross     Rs. 500")
	assert.Contains(t, out.String(), "advances  Rs. 200")
	assert.Contains(t, out.String(), "net       Rs. 300")
}

func TestRunWritesWorkbook(t *testing.T) {
	srv := upstreamServer(t)
	env := intconfig.Env{UpstreamBaseURL: srv.URL, UpstreamToken: "cli-token"}
	path := filepath.Join(t.TempDir(), "ledger.xlsx")

	err := run(context.Background(), []string{"-out", path}, env, zap.NewNop(), io.Discard)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestRunRequiresToken(t *testing.T) {
	err := run(context.Background(), nil, intconfig.Env{UpstreamBaseURL: "http://127.0.0.1:1"}, zap.NewNop(), io.Discard)
	assert.Error(t, err)
}

func TestParseFlagsRejectsLooseDate(t *testing.T) {
	_, err := parseFlags([]string{"-from", "2024-2-1"}, io.Discard)
	assert.Error(t, err)
}
