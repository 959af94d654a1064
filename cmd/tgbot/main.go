package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alias1177/QuotexSignals/internal/app"
	"github.com/Alias1177/QuotexSignals/internal/config"
	"github.com/Alias1177/QuotexSignals/internal/scheduler"
	"github.com/Alias1177/QuotexSignals/internal/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

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

	location, err := time.LoadLocation(cfg.Telegram.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Telegram.Timezone).Msg("Unknown timezone")
	}

	recorder, stopMetrics := app.Metrics(cfg)

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
	log.Info().Str("username", api.Self.UserName).Msg("Authorized on Telegram")

	formatter := telegram.NewFormatter(location, cfg.Indicators)
	bot := telegram.NewBot(api, service, store, telegram.Options{
		Catalog:     telegram.Catalog(cfg.Assets),
		Formatter:   formatter,
		PollTimeout: cfg.Telegram.PollTimeout,
	})

	var sched *scheduler.Scheduler
	if cfg.Schedule.Cron != "" {
		broadcaster := scheduler.NewBroadcaster(store, service, bot, formatter, recorder)
		sched, err = scheduler.New(ctx, cfg.Schedule.Cron, broadcaster)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule broadcasts")
		}
		sched.Start()
	}

	log.Info().
		Str("timezone", location.String()).
		Str("interval", cfg.MarketData.Interval).
		Int("required_bars", cfg.Indicators.RequiredBars()).
		Str("schedule", cfg.Schedule.Cron).
		Msg("Bot started")

	if err := bot.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Bot stopped with error")
	}

	log.Info().Msg("Shutdown signal received, exiting...")
	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stopMetrics(shutdownCtx)
}
