package scanner

import (
	"context"
	"log"
	"sync"
	"time"

	"CandleScout/internal/calculator"
	"CandleScout/internal/collector"
	"CandleScout/internal/model"
	"CandleScout/internal/strategy"

	"github.com/google/uuid"
)

// DefaultDays is the daily history requested per symbol. Three months keeps
// four clean bars available even across long holiday runs.
const DefaultDays = 66

// minBars is the shortest series with a decidable signal.
const minBars = 4

// Scanner runs the reversal scan over a symbol universe.
type Scanner struct {
	Fetcher  collector.Fetcher
	Days     int           // daily bars requested per symbol
	Limit    int           // 0 scans the whole universe
	Cooldown time.Duration // politeness delay after each fetch
	Workers  int           // concurrent symbol fetches, min 1
	Tail     int           // smoothed bars retained per detection for display

	// OnProgress, when set, is called after each symbol completes.
	OnProgress func(done, total int, symbol string)
}

// New creates a Scanner with conservative defaults: one worker, whole
// universe, three months of history.
func New(f collector.Fetcher) *Scanner {
	return &Scanner{Fetcher: f, Days: DefaultDays, Workers: 1, Tail: 30}
}

type symbolResult struct {
	symbol    string
	detection *model.Detection
	skipped   bool
	failed    bool
}

// Scan fetches, smooths and matches every symbol and returns the report.
// Individual symbol failures are counted, never fatal. Cancellation stops
// the scan between symbols; whatever was accumulated is returned together
// with ctx.Err().
func (s *Scanner) Scan(ctx context.Context, source string, symbols []string) (*model.ScanReport, error) {
	if s.Limit > 0 && len(symbols) > s.Limit {
		symbols = symbols[:s.Limit]
	}
	report := &model.ScanReport{
		RunID:     uuid.NewString(),
		Source:    source,
		StartedAt: time.Now(),
		Total:     len(symbols),
	}

	workers := s.Workers
	if workers < 1 {
		workers = 1
	}
	log.Printf("[INFO] scan %s: %d symbols, %d worker(s), source=%s", report.RunID, len(symbols), workers, source)

	jobs := make(chan string)
	results := make(chan symbolResult)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sym := range jobs {
				results <- s.scanOne(sym)
				if s.Cooldown > 0 {
					time.Sleep(s.Cooldown)
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, sym := range symbols {
			select {
			case <-ctx.Done():
				return
			case jobs <- sym:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		report.Scanned++
		switch {
		case res.failed:
			report.Errors++
		case res.skipped:
			report.Skipped++
		case res.detection != nil:
			report.Detections = append(report.Detections, *res.detection)
		}
		if s.OnProgress != nil {
			s.OnProgress(report.Scanned, report.Total, res.symbol)
		}
	}
	report.FinishedAt = time.Now()

	if err := ctx.Err(); err != nil {
		log.Printf("[WARN] scan %s cancelled after %d/%d symbols", report.RunID, report.Scanned, report.Total)
		return report, err
	}
	log.Printf("[INFO] scan %s finished: %d detections, %d skipped, %d errors",
		report.RunID, len(report.Detections), report.Skipped, report.Errors)
	return report, nil
}

// scanOne runs the transform-and-match pipeline for a single symbol.
// The smoothed series is private to this call; nothing is shared across
// concurrent symbols.
func (s *Scanner) scanOne(symbol string) symbolResult {
	bars, err := s.Fetcher.FetchDailyBars(symbol, s.Days)
	if err != nil {
		log.Printf("[WARN] fetch %s: %v", symbol, err)
		return symbolResult{symbol: symbol, failed: true}
	}
	if len(bars) < minBars {
		return symbolResult{symbol: symbol, skipped: true}
	}

	ha := calculator.HeikinAshi(bars)
	if !strategy.MatchReversal(ha) {
		return symbolResult{symbol: symbol}
	}

	tail := ha
	if s.Tail > 0 && len(tail) > s.Tail {
		tail = tail[len(tail)-s.Tail:]
	}
	return symbolResult{symbol: symbol, detection: &model.Detection{
		Symbol: symbol,
		Bars:   tail,
		At:     time.Now(),
	}}
}
