package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Alias1177/QuotexSignals/internal/analyze"
	"github.com/Alias1177/QuotexSignals/internal/metrics"
	"github.com/Alias1177/QuotexSignals/models"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// delay between two sends, keeps us under Telegram's per-bot limit
const sendDelay = 50 * time.Millisecond

// Analyzer analyses several symbols at once, results in input order
type Analyzer interface {
	AnalyzeMany(ctx context.Context, symbols []string) []analyze.Result
}

// Notifier delivers a rendered message to a chat
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Renderer turns analysis outcomes into chat text
type Renderer interface {
	FormatSignal(sig models.Signal) string
}

// Report summarises one broadcast run
type Report struct {
	Symbols   int
	Delivered int
	Failed    int
	Skipped   int
}

// Broadcaster pushes fresh signals to every chat that watches a symbol
type Broadcaster struct {
	store    models.WatchStore
	analyzer Analyzer
	notifier Notifier
	renderer Renderer
	recorder metrics.Recorder
	delay    time.Duration
	logger   zerolog.Logger
}

func NewBroadcaster(store models.WatchStore, analyzer Analyzer, notifier Notifier, renderer Renderer, recorder metrics.Recorder) *Broadcaster {
	if recorder == nil {
		recorder = metrics.NewNoopRecorder()
	}
	return &Broadcaster{
		store:    store,
		analyzer: analyzer,
		notifier: notifier,
		renderer: renderer,
		recorder: recorder,
		delay:    sendDelay,
		logger:   log.With().Str("component", "broadcaster").Logger(),
	}
}

// Broadcast analyses each watched symbol once and sends the signal to its
// watchers. Symbols whose analysis failed are logged and skipped.
func (b *Broadcaster) Broadcast(ctx context.Context) (Report, error) {
	var report Report

	watches, err := b.store.AllWatches(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to load watchlist: %w", err)
	}
	if len(watches) == 0 {
		b.logger.Debug().Msg("Watchlist is empty, nothing to send")
		return report, nil
	}

	var symbols []string
	watchers := make(map[string][]int64)
	for _, w := range watches {
		if _, seen := watchers[w.Symbol]; !seen {
			symbols = append(symbols, w.Symbol)
		}
		watchers[w.Symbol] = append(watchers[w.Symbol], w.ChatID)
	}
	report.Symbols = len(symbols)

	for _, result := range b.analyzer.AnalyzeMany(ctx, symbols) {
		chats := watchers[result.Symbol]
		if result.Err != nil {
			b.logger.Warn().Err(result.Err).Str("symbol", result.Symbol).Int("chats", len(chats)).Msg("Skipping symbol")
			report.Skipped += len(chats)
			continue
		}

		text := b.renderer.FormatSignal(result.Signal)
		for _, chatID := range chats {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}

			err := b.notifier.Send(ctx, chatID, text)
			b.recorder.ObserveDelivery(err)
			if err != nil {
				b.logger.Error().Err(err).Int64("chat_id", chatID).Str("symbol", result.Symbol).Msg("Failed to deliver signal")
				report.Failed++
			} else {
				report.Delivered++
			}

			if b.delay > 0 {
				time.Sleep(b.delay)
			}
		}
	}

	b.logger.Info().
		Int("symbols", report.Symbols).
		Int("delivered", report.Delivered).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Msg("Broadcast finished")
	return report, nil
}

// Scheduler runs the broadcaster on a cron schedule
type Scheduler struct {
	cron        *cron.Cron
	broadcaster *Broadcaster
	ctx         context.Context
	logger      zerolog.Logger
}

// New registers the broadcast under schedule, a six-field cron expression with seconds
func New(ctx context.Context, schedule string, broadcaster *Broadcaster) (*Scheduler, error) {
	s := &Scheduler{
		cron:        cron.New(cron.WithSeconds()),
		broadcaster: broadcaster,
		ctx:         ctx,
		logger:      log.With().Str("component", "scheduler").Logger(),
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("register broadcast task: %w", err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("Scheduler started")
}

// Stop waits for a running broadcast to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info().Msg("Scheduler stopped")
}

// RunNow executes the broadcast immediately
func (s *Scheduler) RunNow() {
	s.run()
}

func (s *Scheduler) run() {
	if s.ctx.Err() != nil {
		return
	}
	s.logger.Info().Msg("Running scheduled broadcast")
	if _, err := s.broadcaster.Broadcast(s.ctx); err != nil {
		s.logger.Error().Err(err).Msg("Scheduled broadcast failed")
	}
}
