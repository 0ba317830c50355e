package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"SignalSentinel/internal/collector"
	"SignalSentinel/internal/config"
	"SignalSentinel/internal/logger"
	"SignalSentinel/internal/metrics"
	"SignalSentinel/internal/notifier"
	"SignalSentinel/internal/recorder"
	"SignalSentinel/internal/scheduler"
	"SignalSentinel/internal/server"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatal().Err(err).Msg("setup logger")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}
	log.Info().Str("symbol", cfg.DataSource.Symbol).Msg("SignalSentinel starting...")

	sched, err := cfg.PollSchedule()
	if err != nil {
		log.Fatal().Err(err).Msg("parse poll schedule")
	}

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "yahoo":
		yf := collector.NewYahooFetcher(cfg.Proxy, cfg.DataSource.Timeout)
		if cfg.DataSource.BaseURL != "" {
			yf.BaseURL = cfg.DataSource.BaseURL
		}
		yf.Interval = cfg.DataSource.Interval
		fetcher = yf
	case "mock":
		fetcher = &collector.MockFetcher{}
	default:
		fetcher = collector.NewEODHDFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey,
			cfg.DataSource.Interval, cfg.Proxy, cfg.DataSource.Timeout)
	}
	log.Info().Str("provider", fetcher.Name()).Msg("data source ready")

	col := collector.NewCollector(fetcher, cfg.DataSource.Symbol, cfg.Pipeline.ResampleWidth)

	// Reporters: console always, Telegram when configured
	reporters := notifier.MultiReporter{notifier.NewConsoleReporter()}
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		reporters = append(reporters, tn)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	m := metrics.New()
	poller := scheduler.NewPoller(col, cfg.PipelineParams(), reporters, rec, m, sched, cfg.Schedule.FetchTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Server.Enabled {
		srv := server.New(cfg.Server.Addr, poller, m.Registry())
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Error().Err(err).Msg("status server")
			}
		}()
	}

	if tn != nil {
		go tn.StartPolling(ctx, poller.HandleCommand)
		log.Info().Msg("telegram polling started")
	}

	log.Info().Msg("SignalSentinel is running. Press Ctrl+C to stop.")
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("poller exited")
	}
	log.Info().Msg("SignalSentinel stopped")
}
