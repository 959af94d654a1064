package telegram

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Alias1177/QuotexSignals/internal/analyze"
	"github.com/Alias1177/QuotexSignals/internal/calculate"
	"github.com/Alias1177/QuotexSignals/models"
	"github.com/cenkalti/backoff/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	replyFetchFailed   = "❌ Couldn't fetch data for this asset"
	replyInvalidSymbol = "❌ Unsupported asset symbol"

	// DefaultPollRetryDelay is the pause before polling restarts
	DefaultPollRetryDelay = 10 * time.Second
)

// API is the part of *tgbotapi.BotAPI the bot uses
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Analyzer produces a signal for a symbol
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (models.Signal, error)
}

// Options configures a Bot
type Options struct {
	Catalog     Catalog
	Formatter   Formatter
	PollTimeout int
	// PollRetryDelay defaults to DefaultPollRetryDelay
	PollRetryDelay time.Duration
	Now            func() time.Time
}

// Bot answers chat commands and delivers scheduled signals
type Bot struct {
	api       API
	analyzer  Analyzer
	store     models.WatchStore
	catalog   Catalog
	formatter Formatter
	timeout   int
	retry     time.Duration
	now       func() time.Time
	logger    zerolog.Logger

	wg sync.WaitGroup
}

func NewBot(api API, analyzer Analyzer, store models.WatchStore, opts Options) *Bot {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PollTimeout == 0 {
		opts.PollTimeout = 60
	}
	if opts.PollRetryDelay <= 0 {
		opts.PollRetryDelay = DefaultPollRetryDelay
	}
	if opts.Formatter.Location == nil {
		opts.Formatter.Location = time.UTC
	}
	return &Bot{
		api:       api,
		analyzer:  analyzer,
		store:     store,
		catalog:   opts.Catalog,
		formatter: opts.Formatter,
		timeout:   opts.PollTimeout,
		retry:     opts.PollRetryDelay,
		now:       opts.Now,
		logger:    log.With().Str("component", "telegram_bot").Logger(),
	}
}

// Run polls for updates until ctx is cancelled. A broken update stream is
// restarted after a fixed delay.
func (b *Bot) Run(ctx context.Context) error {
	poll := func() error {
		updateConfig := tgbotapi.NewUpdate(0)
		updateConfig.Timeout = b.timeout
		updates := b.api.GetUpdatesChan(updateConfig)

		for {
			select {
			case <-ctx.Done():
				b.api.StopReceivingUpdates()
				return nil
			case update, ok := <-updates:
				if !ok {
					return errors.New("update channel closed")
				}
				if update.Message == nil {
					continue
				}
				b.wg.Add(1)
				go func(msg *tgbotapi.Message) {
					defer b.wg.Done()
					b.HandleMessage(ctx, msg)
				}(update.Message)
			}
		}
	}

	strategy := backoff.WithContext(backoff.NewConstantBackOff(b.retry), ctx)
	err := backoff.RetryNotify(poll, strategy, func(err error, wait time.Duration) {
		b.logger.Error().Err(err).Dur("retry_in", wait).Msg("Bot error, restarting polling")
	})

	b.wg.Wait()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// HandleMessage dispatches a single chat message
func (b *Bot) HandleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message == nil || message.Chat == nil || !message.IsCommand() {
		return
	}

	chatID := message.Chat.ID
	args := message.CommandArguments()
	logger := b.logger.With().Int64("chat_id", chatID).Str("command", message.Command()).Logger()
	logger.Debug().Str("args", args).Msg("Command received")

	var (
		text     string
		markdown = true
	)

	switch message.Command() {
	case "start", "help":
		text = welcomeText
	case "signal":
		text, markdown = b.signalReply(ctx, b.catalog.NormalizeSymbol(args))
	case "assets":
		text = FormatAssets(b.catalog)
	case "time":
		text = fmt.Sprintf("⏰ *Server time:* `%s`", b.formatter.FormatTime(b.now()))
	case "watch":
		text, markdown = b.watchReply(ctx, chatID, args)
	case "unwatch":
		text, markdown = b.unwatchReply(ctx, chatID, args)
	case "watchlist":
		text, markdown = b.watchlistReply(ctx, chatID)
	default:
		text, markdown = "Unknown command. Use /start to see what I can do.", false
	}

	if err := b.reply(ctx, message, text, markdown); err != nil {
		logger.Error().Err(err).Msg("Failed to send reply")
	}
}

func (b *Bot) signalReply(ctx context.Context, symbol string) (string, bool) {
	if !ValidSymbol(symbol) {
		return replyInvalidSymbol, false
	}
	sig, err := b.analyzer.Analyze(ctx, symbol)
	if err != nil {
		return ErrorReply(err), false
	}
	return b.formatter.FormatSignal(sig), true
}

// ErrorReply is the user-facing text for a failed analysis
func ErrorReply(err error) string {
	var (
		fetch        *analyze.FetchError
		insufficient *calculate.InsufficientDataError
	)
	if errors.As(err, &fetch) || errors.As(err, &insufficient) {
		return replyFetchFailed
	}
	return "⚠️ Error: " + err.Error()
}

func (b *Bot) watchReply(ctx context.Context, chatID int64, args string) (string, bool) {
	if b.store == nil {
		return "Scheduled signals are disabled.", false
	}
	symbol := b.catalog.NormalizeSymbol(args)
	if !ValidSymbol(symbol) {
		return replyInvalidSymbol, false
	}
	if err := b.store.AddWatch(ctx, chatID, symbol); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to add watch")
		return "⚠️ Error: could not update your watchlist", false
	}
	return fmt.Sprintf("✅ %s added to your watchlist", symbol), false
}

func (b *Bot) unwatchReply(ctx context.Context, chatID int64, args string) (string, bool) {
	if b.store == nil {
		return "Scheduled signals are disabled.", false
	}
	symbol := b.catalog.NormalizeSymbol(args)
	if !ValidSymbol(symbol) {
		return replyInvalidSymbol, false
	}
	removed, err := b.store.RemoveWatch(ctx, chatID, symbol)
	if err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to remove watch")
		return "⚠️ Error: could not update your watchlist", false
	}
	if !removed {
		return fmt.Sprintf("%s is not in your watchlist", symbol), false
	}
	return fmt.Sprintf("🗑 %s removed from your watchlist", symbol), false
}

func (b *Bot) watchlistReply(ctx context.Context, chatID int64) (string, bool) {
	if b.store == nil {
		return "Scheduled signals are disabled.", false
	}
	entries, err := b.store.ListWatches(ctx, chatID)
	if err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to list watches")
		return "⚠️ Error: could not read your watchlist", false
	}
	return FormatWatchlist(entries), true
}

func (b *Bot) reply(ctx context.Context, to *tgbotapi.Message, text string, markdown bool) error {
	msg := tgbotapi.NewMessage(to.Chat.ID, text)
	msg.ReplyToMessageID = to.MessageID
	if markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	return b.send(ctx, msg)
}

// Send delivers a Markdown message to a chat, retrying transient failures
func (b *Bot) Send(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return b.send(ctx, msg)
}

func (b *Bot) send(ctx context.Context, msg tgbotapi.MessageConfig) error {
	operation := func() error {
		_, err := b.api.Send(msg)
		if err == nil {
			return nil
		}
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) && apiErr.Code != 429 && apiErr.Code < 500 {
			return backoff.Permanent(err)
		}
		return err
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.MaxElapsedTime = 30 * time.Second
	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(strategy, 3), ctx))
}
