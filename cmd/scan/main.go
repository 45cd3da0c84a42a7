package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CandleScout/internal/collector"
	"CandleScout/internal/config"
	"CandleScout/internal/scanner"
	"CandleScout/internal/universe"
)

// One-shot scan for cron jobs and manual checks, without the Telegram bot.
func main() {
	log.SetFlags(log.LstdFlags)

	cfgPath := flag.String("config", "configs/config.yaml", "path to config file")
	source := flag.String("source", "", "override universe source (auto|wikipedia|csv|static)")
	csvPath := flag.String("csv", "", "override CSV file for the csv source")
	limit := flag.Int("limit", 0, "override universe limit")
	workers := flag.Int("workers", 0, "override worker count")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if *source != "" {
		cfg.Universe.Source = *source
	}
	if *csvPath != "" {
		cfg.Universe.CSVPath = *csvPath
		cfg.Universe.Source = "csv"
	}
	if *limit > 0 {
		cfg.Universe.Limit = *limit
	}
	if *workers > 0 {
		cfg.Scan.Workers = *workers
	}

	var up universe.Provider
	switch cfg.Universe.Source {
	case "csv":
		up = &universe.CSVProvider{Path: cfg.Universe.CSVPath}
	case "static":
		up = universe.NewSampleProvider()
	case "wikipedia":
		up = universe.NewWikipediaProvider(cfg.Proxy)
	default:
		up = &universe.Fallback{Providers: []universe.Provider{
			universe.NewWikipediaProvider(cfg.Proxy),
			universe.NewSampleProvider(),
		}}
	}

	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}

	sc := scanner.New(fetcher)
	sc.Days = cfg.Scan.Days
	sc.Limit = cfg.Universe.Limit
	sc.Workers = cfg.Scan.Workers
	sc.Cooldown = time.Duration(cfg.Scan.CooldownMS) * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	symbols, err := up.Fetch(ctx)
	if err != nil {
		log.Fatalf("[FATAL] fetch universe: %v", err)
	}

	report, err := sc.Scan(ctx, up.Name(), symbols)
	if err != nil {
		log.Fatalf("[FATAL] scan interrupted: %v", err)
	}

	fmt.Printf("\nScan %s | universe %s (%d tickers), %d scanned, %d skipped, %d errors, took %s\n",
		report.RunID, report.Source, report.Total, report.Scanned, report.Skipped, report.Errors,
		report.FinishedAt.Sub(report.StartedAt).Round(time.Second))

	if len(report.Detections) == 0 {
		fmt.Println("No 3-red-1-green reversal found.")
		return
	}
	fmt.Printf("%d signal(s) detected:\n", len(report.Detections))
	for _, d := range report.Detections {
		w := d.Bars[len(d.Bars)-4:]
		fmt.Printf("  %-12s  last close %.2f (prev %.2f)\n", d.Symbol, w[3].Close, w[2].Close)
	}
}
