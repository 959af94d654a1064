package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Alias1177/QuotexSignals/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Recorder receives the operational events of the signal pipeline
type Recorder interface {
	ObserveSignal(symbol string, direction models.Direction, took time.Duration)
	ObserveError(kind string)
	ObserveCache(hit bool)
	ObserveDelivery(err error)
}

// Metrics holds all Prometheus metrics of the signal bot.
type Metrics struct {
	SignalsTotal     *prometheus.CounterVec // labels: direction
	SignalErrors     *prometheus.CounterVec // labels: kind
	AnalysisDur      prometheus.Histogram
	CacheLookups     *prometheus.CounterVec // labels: result=hit|miss
	DeliveriesTotal  *prometheus.CounterVec // labels: status=ok|failed
	LastSignalUnixTs *prometheus.GaugeVec   // labels: symbol
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotex_signals_total",
			Help: "Signals generated, by direction",
		}, []string{"direction"}),
		SignalErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotex_signal_errors_total",
			Help: "Failed analyses, by error kind",
		}, []string{"kind"}),
		AnalysisDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quotex_analysis_duration_seconds",
			Help:    "Fetch plus signal generation latency",
			Buckets: prometheus.DefBuckets,
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotex_series_cache_lookups_total",
			Help: "Price series cache lookups (hit, miss)",
		}, []string{"result"}),
		DeliveriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotex_deliveries_total",
			Help: "Scheduled signal deliveries (ok, failed)",
		}, []string{"status"}),
		LastSignalUnixTs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "quotex_last_signal_timestamp_seconds",
			Help: "Unix time of the last signal per symbol",
		}, []string{"symbol"}),
	}

	reg.MustRegister(
		m.SignalsTotal,
		m.SignalErrors,
		m.AnalysisDur,
		m.CacheLookups,
		m.DeliveriesTotal,
		m.LastSignalUnixTs,
	)

	return m
}

func (m *Metrics) ObserveSignal(symbol string, direction models.Direction, took time.Duration) {
	m.SignalsTotal.WithLabelValues(string(direction)).Inc()
	m.AnalysisDur.Observe(took.Seconds())
	m.LastSignalUnixTs.WithLabelValues(symbol).Set(float64(time.Now().Unix()))
}

func (m *Metrics) ObserveError(kind string) {
	m.SignalErrors.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveDelivery(err error) {
	status := "ok"
	if err != nil {
		status = "failed"
	}
	m.DeliveriesTotal.WithLabelValues(status).Inc()
}

// Server runs an HTTP server exposing /metrics and /healthz.
type Server struct {
	addr string
	srv  *http.Server
}

// NewServer creates a metrics server for the given gatherer.
func NewServer(addr string, gatherer prometheus.Gatherer) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &Server{
		addr: addr,
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	logger := log.With().Str("component", "metrics").Logger()
	go func() {
		logger.Info().Str("addr", s.addr).Msg("Metrics server listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Metrics server error")
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
