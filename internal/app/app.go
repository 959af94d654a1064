// Package app wires the configured components shared by the binaries.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Alias1177/QuotexSignals/internal/analyze"
	"github.com/Alias1177/QuotexSignals/internal/api/yahoo"
	"github.com/Alias1177/QuotexSignals/internal/cache"
	"github.com/Alias1177/QuotexSignals/internal/config"
	"github.com/Alias1177/QuotexSignals/internal/database"
	"github.com/Alias1177/QuotexSignals/internal/metrics"
	"github.com/Alias1177/QuotexSignals/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const cacheCleanupInterval = 5 * time.Minute

// SetupLogging configures the global console logger
func SetupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil || logLevel == "" {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}

// ConfigPath returns CONFIG_PATH or the default location
func ConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return config.DefaultPath
}

// Metrics starts the Prometheus endpoint when an address is configured.
// The returned stop function is safe to call in either case.
func Metrics(cfg *config.Config) (metrics.Recorder, func(context.Context)) {
	if cfg.Metrics.Addr == "" {
		return metrics.NewNoopRecorder(), func(context.Context) {}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewMetrics(registry)

	server := metrics.NewServer(cfg.Metrics.Addr, registry)
	server.Start()

	return recorder, func(ctx context.Context) {
		if err := server.Stop(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to stop metrics server")
		}
	}
}

// SeriesSource builds the Yahoo client behind the series cache. Redis is
// used when configured, otherwise an in-process store cleaned until ctx ends.
func SeriesSource(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) (models.SeriesSource, func()) {
	client := yahoo.NewClient(yahoo.ClientOptions{
		BaseURL:         cfg.MarketData.BaseURL,
		Interval:        cfg.MarketData.Interval,
		Range:           cfg.MarketData.Range,
		RequestTimeout:  cfg.MarketData.RequestTimeout,
		RequestsPerSec:  cfg.MarketData.RequestsPerSec,
		MaxRetries:      cfg.MarketData.MaxRetries,
		MaxRetryTimeout: cfg.MarketData.MaxRetryTimeout,
	})

	if cfg.Cache.TTL == 0 {
		return client, func() {}
	}

	if cfg.Cache.RedisAddr != "" {
		rdb := cache.NewRedisClient(cache.RedisOptions{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		store := cache.NewRedisStore(rdb, cfg.Cache.KeyPrefix)
		if err := store.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Redis is unreachable, cache lookups will fall through")
		} else {
			log.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Using Redis series cache")
		}
		return cache.NewCachedSource(client, store, cfg.Cache.TTL, recorder), func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close Redis client")
			}
		}
	}

	store := cache.NewMemoryStore()
	go store.RunCleanup(ctx, cacheCleanupInterval)
	return cache.NewCachedSource(client, store, cfg.Cache.TTL, recorder), func() {}
}

// Service assembles the analysis pipeline
func Service(source models.SeriesSource, cfg *config.Config, recorder metrics.Recorder) (*analyze.Service, error) {
	generator, err := analyze.NewGenerator(cfg.Indicators, cfg.Risk)
	if err != nil {
		return nil, err
	}
	return analyze.NewService(source, generator, recorder, cfg.FetchTimeout()), nil
}

// WatchStore opens the Postgres watchlist, or an in-memory one without a
// configured database.
func WatchStore(ctx context.Context, cfg *config.Config) (models.WatchStore, func(), error) {
	if !cfg.PostgresEnabled() {
		log.Warn().Msg("No database configured, watchlist is kept in memory")
		return database.NewMemoryStore(), func() {}, nil
	}

	db, err := database.New(ctx, database.ConnectionParams{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, func() { _ = db.Close() }, nil
}
