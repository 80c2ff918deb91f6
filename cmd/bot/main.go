package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"PortfolioSentinel/internal/cache"
	"PortfolioSentinel/internal/collector"
	"PortfolioSentinel/internal/config"
	"PortfolioSentinel/internal/model"
	"PortfolioSentinel/internal/notifier"
	"PortfolioSentinel/internal/portfolio"
	"PortfolioSentinel/internal/recorder"
	"PortfolioSentinel/internal/review"
	"PortfolioSentinel/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PortfolioSentinel starting...")

	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.HistoryDir != "" {
		fetcher = collector.NewFileFetcher(cfg.DataSource.HistoryDir)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	if cfg.Cache.File != "" {
		fetcher = cache.NewFetcher(fetcher, cfg.Cache.File, time.Duration(cfg.Cache.TTLMinutes)*time.Minute)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector
	col := collector.NewCollector(fetcher, cfg.DataSource.IndexSymbol, cfg.DataSource.HistoryDays)

	// Load portfolio and optional rotation universe
	holdings, err := portfolio.LoadHoldings(cfg.Files.PortfolioCSV)
	if err != nil {
		log.Fatalf("[FATAL] load portfolio: %v", err)
	}
	log.Printf("[INFO] loaded %d holdings from %s", len(holdings), cfg.Files.PortfolioCSV)

	var universe []model.Candidate
	if cfg.Files.UniverseCSV != "" {
		universe, err = portfolio.LoadUniverse(cfg.Files.UniverseCSV)
		if err != nil {
			log.Printf("[WARN] load universe: %v, rotation mode disabled", err)
			universe = nil
		} else {
			log.Printf("[INFO] loaded %d rotation candidates from %s", len(universe), cfg.Files.UniverseCSV)
		}
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rev := review.NewReviewer(col, cfg.Strategy, holdings, universe)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, rev, tn, rec)
	if err := sched.RegisterAll(cfg.Schedule.ReviewCron, cfg.Schedule.RotationCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing review now")
		go sched.RunReviewNow()
	}

	log.Println("[INFO] PortfolioSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] PortfolioSentinel stopped")
}
