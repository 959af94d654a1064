package cache

import (
	"context"
	"time"

	"github.com/Alias1177/QuotexSignals/internal/metrics"
	"github.com/Alias1177/QuotexSignals/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultTTL = time.Minute

// Store keeps recently fetched price series by symbol
type Store interface {
	Get(ctx context.Context, symbol string) (models.PriceSeries, bool, error)
	Set(ctx context.Context, symbol string, series models.PriceSeries, ttl time.Duration) error
}

// CachedSource serves series from a Store and falls back to the wrapped
// source on a miss. A failing Store degrades to direct fetches.
type CachedSource struct {
	source   models.SeriesSource
	store    Store
	ttl      time.Duration
	recorder metrics.Recorder
	logger   zerolog.Logger
}

func NewCachedSource(source models.SeriesSource, store Store, ttl time.Duration, recorder metrics.Recorder) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if recorder == nil {
		recorder = metrics.NewNoopRecorder()
	}
	return &CachedSource{
		source:   source,
		store:    store,
		ttl:      ttl,
		recorder: recorder,
		logger:   log.With().Str("component", "series_cache").Logger(),
	}
}

// GetSeries implements models.SeriesSource
func (c *CachedSource) GetSeries(ctx context.Context, symbol string) (models.PriceSeries, error) {
	series, ok, err := c.store.Get(ctx, symbol)
	if err != nil {
		c.logger.Warn().Err(err).Str("symbol", symbol).Msg("Cache read failed, fetching directly")
	}
	if ok {
		c.recorder.ObserveCache(true)
		return series, nil
	}
	c.recorder.ObserveCache(false)

	series, err = c.source.GetSeries(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := c.store.Set(ctx, symbol, series, c.ttl); err != nil {
		c.logger.Warn().Err(err).Str("symbol", symbol).Msg("Cache write failed")
	}
	return series, nil
}
