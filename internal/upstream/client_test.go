package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"fleetops/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresToken(t *testing.T) {
	_, err := New("http://x", " ", nil)
	assert.Error(t, err)
	_, err = New("", "t", nil)
	assert.Error(t, err)
}

func TestListDutiesSendsInjectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/duties", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.Equal(t, "2024-02-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-02-29", r.URL.Query().Get("to"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"d1","driver":{"_id":"p1","name":"Ram"},"date":"2024-02-02","dailyWage":"500","totalKm":20},
			{"_id":"d2","driver":"p2","date":"2024-02-03","dailyWage":700}
		]`))
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", "tok-123", nil)
	require.NoError(t, err)

	duties, err := c.ListDuties(context.Background(), domain.DateRange{From: "2024-02-01", To: "2024-02-29"})
	require.NoError(t, err)
	require.Len(t, duties, 2)
	assert.Equal(t, "p1", duties[0].Driver.ID())
	assert.Equal(t, "Ram", duties[0].Driver.Name())
	assert.Equal(t, 500.0, duties[0].DailyWage.Float())
	assert.Equal(t, "p2", duties[1].Driver.ID())
}

func TestListAdvancesUnauthorizedIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid token","code":"unauthorized","request_id":"r1"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, "bad", nil)
	require.NoError(t, err)

	_, err = c.ListAdvances(context.Background(), domain.DateRange{})
	require.True(t, domain.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "invalid token")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
