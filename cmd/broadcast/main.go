package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alias1177/QuotexSignals/internal/app"
	"github.com/Alias1177/QuotexSignals/internal/config"
	"github.com/Alias1177/QuotexSignals/internal/metrics"
	"github.com/Alias1177/QuotexSignals/internal/scheduler"
	"github.com/Alias1177/QuotexSignals/internal/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Sends one round of watchlist signals and exits, for use from an external cron.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(app.ConfigPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	app.SetupLogging(cfg.LogLevel)

	if err := cfg.ValidateBot(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if !cfg.PostgresEnabled() {
		log.Fatal().Msg("Broadcast needs the watchlist database, set DB_HOST and DB_NAME")
	}

	location, err := time.LoadLocation(cfg.Telegram.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Telegram.Timezone).Msg("Unknown timezone")
	}

	recorder := metrics.NewNoopRecorder()
	source, closeSource := app.SeriesSource(ctx, cfg, recorder)
	defer closeSource()

	service, err := app.Service(source, cfg, recorder)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build signal service")
	}

	store, closeStore, err := app.WatchStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open watchlist")
	}
	defer closeStore()

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}

	formatter := telegram.NewFormatter(location, cfg.Indicators)
	bot := telegram.NewBot(api, service, store, telegram.Options{Formatter: formatter})

	report, err := scheduler.NewBroadcaster(store, service, bot, formatter, recorder).Broadcast(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Broadcast failed")
		return
	}

	log.Info().
		Int("symbols", report.Symbols).
		Int("delivered", report.Delivered).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Msg("Broadcast completed")
}
