package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordFetch(t *testing.T) {
	m := New()
	m.RecordFetch("yahoo", "MANUAL", nil)
	m.RecordFetch("yahoo", "MANUAL", nil)
	m.RecordFetch("yahoo", "AUTO_REFRESH", errors.New("boom"))

	if got := testutil.ToFloat64(m.fetches.WithLabelValues("yahoo", "MANUAL", "ok")); got != 2 {
		t.Errorf("ok fetches: got %.0f, want 2", got)
	}
	if got := testutil.ToFloat64(m.fetches.WithLabelValues("yahoo", "AUTO_REFRESH", "error")); got != 1 {
		t.Errorf("error fetches: got %.0f, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordFetch("x", "y", nil)
	m.RecordDecision("refresh")
	m.SetSessions(3)
	m.ObserveRequest("/", "GET", 200, 0.1)
	if m.Handler() == nil {
		t.Error("nil metrics should still serve a handler")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.SetSessions(4)
	m.RecordDecision("paused")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{"stock_terminal_sessions 4", `stock_terminal_refresh_decisions_total{decision="paused"} 1`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("missing %q in exposition", want)
		}
	}
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{101, "1xx"}, {200, "2xx"}, {304, "3xx"}, {422, "4xx"}, {502, "5xx"}, {0, "5xx"},
	}
	for _, tt := range tests {
		if got := StatusClass(tt.code); got != tt.want {
			t.Errorf("StatusClass(%d): got %s, want %s", tt.code, got, tt.want)
		}
	}
}
