package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"MarketScope/internal/collector"
	"MarketScope/internal/config"
	"MarketScope/internal/logger"
	"MarketScope/internal/pipeline"
	"MarketScope/internal/recorder"
	"MarketScope/internal/scheduler"
)

func main() {
	logger.Init()
	log := logger.L()
	log.Info().Msg("MarketScope starting")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
	}

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "file":
		fetcher = collector.NewFileFetcher(cfg.DataSource.FileDir)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source selected")

	col := collector.NewCollector(fetcher, cfg.Tickers)

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := pipeline.NewRunner(cfg, col, rec, os.Stdout)

	// Single run unless a cron schedule is configured.
	if cfg.Schedule.Cron == "" {
		if err := runner.Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("pipeline run")
		}
		return
	}

	sched := scheduler.NewScheduler(ctx, runner.Run)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatal().Err(err).Msg("register cron task")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, executing pipeline now")
		go sched.RunNow()
	}

	log.Info().Str("cron", cfg.Schedule.Cron).Msg("MarketScope watching. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()
	log.Info().Msg("MarketScope stopped")
}
