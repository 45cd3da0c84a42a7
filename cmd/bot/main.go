package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CandleScout/internal/collector"
	"CandleScout/internal/config"
	"CandleScout/internal/notifier"
	"CandleScout/internal/recorder"
	"CandleScout/internal/scanner"
	"CandleScout/internal/scheduler"
	"CandleScout/internal/universe"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CandleScout starting...")

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

	// Init universe provider
	up := buildUniverse(cfg)
	log.Printf("[INFO] universe source: %s", up.Name())

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init scanner
	sc := scanner.New(fetcher)
	sc.Days = cfg.Scan.Days
	sc.Limit = cfg.Universe.Limit
	sc.Workers = cfg.Scan.Workers
	sc.Cooldown = time.Duration(cfg.Scan.CooldownMS) * time.Millisecond

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

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, up, sc, tn, rec)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] CandleScout is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] CandleScout stopped")
}

// buildUniverse maps the configured source onto a provider, chaining the
// built-in sample as last resort for the online sources.
func buildUniverse(cfg *config.Config) universe.Provider {
	switch cfg.Universe.Source {
	case "csv":
		return &universe.CSVProvider{Path: cfg.Universe.CSVPath}
	case "static":
		return universe.NewSampleProvider()
	case "wikipedia":
		return universe.NewWikipediaProvider(cfg.Proxy)
	default: // auto
		return &universe.Fallback{Providers: []universe.Provider{
			universe.NewWikipediaProvider(cfg.Proxy),
			universe.NewSampleProvider(),
		}}
	}
}
