package analyze

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Alias1177/QuotexSignals/internal/calculate"
	"github.com/Alias1177/QuotexSignals/internal/metrics"
	"github.com/Alias1177/QuotexSignals/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Error kinds reported to metrics
const (
	KindInsufficientData   = "insufficient_data"
	KindUndefinedIndicator = "undefined_indicator"
	KindAssembly           = "assembly"
	KindFetch              = "fetch"
)

// FetchError wraps a failure of the market data source
type FetchError struct {
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies an analysis error for metrics and replies
func ErrorKind(err error) string {
	var (
		insufficient *calculate.InsufficientDataError
		undefined    *calculate.UndefinedIndicatorError
		assembly     *AssemblyError
	)
	switch {
	case errors.As(err, &insufficient):
		return KindInsufficientData
	case errors.As(err, &undefined):
		return KindUndefinedIndicator
	case errors.As(err, &assembly):
		return KindAssembly
	default:
		return KindFetch
	}
}

// Service fetches a series for a symbol and turns it into a Signal
type Service struct {
	source       models.SeriesSource
	generator    *Generator
	recorder     metrics.Recorder
	fetchTimeout time.Duration
	logger       zerolog.Logger
}

// NewService wires a source and a generator. A nil recorder disables metrics.
func NewService(source models.SeriesSource, generator *Generator, recorder metrics.Recorder, fetchTimeout time.Duration) *Service {
	if recorder == nil {
		recorder = metrics.NewNoopRecorder()
	}
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	return &Service{
		source:       source,
		generator:    generator,
		recorder:     recorder,
		fetchTimeout: fetchTimeout,
		logger:       log.With().Str("component", "signal_service").Logger(),
	}
}

// Analyze produces a signal for one symbol
func (s *Service) Analyze(ctx context.Context, symbol string) (models.Signal, error) {
	started := time.Now()
	logger := s.logger.With().
		Str("request_id", uuid.NewString()).
		Str("symbol", symbol).
		Logger()

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	series, err := s.source.GetSeries(fetchCtx, symbol)
	if err != nil {
		s.recorder.ObserveError(KindFetch)
		logger.Error().Err(err).Msg("Failed to fetch price series")
		return models.Signal{}, &FetchError{Symbol: symbol, Err: err}
	}

	sig, err := s.generator.Generate(symbol, series)
	if err != nil {
		kind := ErrorKind(err)
		s.recorder.ObserveError(kind)
		logger.Warn().Err(err).Str("kind", kind).Int("bars", len(series)).Msg("No signal for series")
		return models.Signal{}, err
	}

	took := time.Since(started)
	s.recorder.ObserveSignal(symbol, sig.Direction, took)
	logger.Info().
		Str("direction", string(sig.Direction)).
		Int("score", sig.Score).
		Int("confidence", sig.Confidence).
		Float64("entry", sig.EntryPrice).
		Dur("took", took).
		Msg("Signal generated")

	return sig, nil
}

// Result pairs a symbol with its signal or error
type Result struct {
	Symbol string
	Signal models.Signal
	Err    error
}

// AnalyzeMany analyses symbols in parallel and returns results in input order
func (s *Service) AnalyzeMany(ctx context.Context, symbols []string) []Result {
	results := make([]Result, len(symbols))

	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			sig, err := s.Analyze(ctx, symbol)
			results[i] = Result{Symbol: symbol, Signal: sig, Err: err}
		}(i, symbol)
	}
	wg.Wait()

	return results
}

// Factors explains a signal's score
func (s *Service) Factors(sig models.Signal) []Factor {
	return s.generator.Factors(sig)
}
