package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Alias1177/QuotexSignals/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ObserveSignal("BTC-USD", models.DirectionBuy, 120*time.Millisecond)
	m.ObserveSignal("ETH-USD", models.DirectionBuy, 80*time.Millisecond)
	m.ObserveError("insufficient_data")
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)
	m.ObserveDelivery(nil)
	m.ObserveDelivery(errors.New("blocked"))

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"buy signals", testutil.ToFloat64(m.SignalsTotal.WithLabelValues("BUY")), 2},
		{"insufficient data errors", testutil.ToFloat64(m.SignalErrors.WithLabelValues("insufficient_data")), 1},
		{"cache hits", testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")), 1},
		{"cache misses", testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")), 2},
		{"failed deliveries", testutil.ToFloat64(m.DeliveriesTotal.WithLabelValues("failed")), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestServerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.ObserveError("fetch")

	srv := NewServer(":0", reg)
	rec := httptest.NewRecorder()
	srv.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `quotex_signal_errors_total{kind="fetch"} 1`) {
		t.Errorf("GET /metrics body missing error counter:\n%s", rec.Body.String())
	}
}
