package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"CandleScout/internal/model"
	"CandleScout/internal/notifier"
	"CandleScout/internal/recorder"
	"CandleScout/internal/scanner"
	"CandleScout/internal/universe"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily scan and serves Telegram commands.
type Scheduler struct {
	Cron     *cron.Cron
	Universe universe.Provider
	Scanner  *scanner.Scanner
	Notifier *notifier.TelegramNotifier
	Recorder recorder.Recorder
	Ctx      context.Context

	mu       sync.Mutex
	last     *model.ScanReport
	scanning bool
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, up universe.Provider, sc *scanner.Scanner, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	s := &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Universe: up,
		Scanner:  sc,
		Notifier: tn,
		Recorder: rec,
		Ctx:      ctx,
	}
	sc.OnProgress = s.logProgress
	return s
}

// RegisterAll registers the daily scan task.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.scanTask); err != nil {
		return fmt.Errorf("register daily scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	s.mu.Lock()
	if s.scanning {
		s.mu.Unlock()
		log.Println("[WARN] scan already in progress, skipping trigger")
		return
	}
	s.scanning = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.scanning = false
		s.mu.Unlock()
	}()

	log.Println("[INFO] running daily scan")
	symbols, err := s.Universe.Fetch(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] fetch universe: %v", err)
		s.trySend(fmt.Sprintf("❌ Scan aborted, universe unavailable: %v", err))
		return
	}

	report, err := s.Scanner.Scan(s.Ctx, s.Universe.Name(), symbols)
	if err != nil {
		// Cancelled mid-scan; partial results are dropped, not reported.
		log.Printf("[WARN] scan interrupted: %v", err)
		return
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	s.trySend(notifier.FormatScanReport(report))

	if err := s.Recorder.RecordScan(report); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}
}

func (s *Scheduler) logProgress(done, total int, symbol string) {
	if done%25 == 0 || done == total {
		log.Printf("[INFO] scan progress: %d/%d (%s)", done, total, symbol)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	cmd := strings.Fields(command)
	if len(cmd) == 0 {
		return ""
	}
	switch cmd[0] {
	case "/scan":
		go s.scanTask()
		return "🚦 Scan started, results will follow."
	case "/last":
		s.mu.Lock()
		last := s.last
		s.mu.Unlock()
		if last == nil {
			return "No scan has run yet. Use /scan to start one."
		}
		return notifier.FormatScanReport(last)
	case "/detail":
		if len(cmd) < 2 {
			return "Usage: /detail TICKER"
		}
		return s.detail(cmd[1])
	default:
		return "Commands:\n• /scan — run the reversal scan now\n• /last — last scan report\n• /detail TICKER — smoothed bars of a detection"
	}
}

func (s *Scheduler) detail(symbol string) string {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()
	if last == nil {
		return "No scan has run yet."
	}
	want := strings.ToUpper(symbol)
	if !strings.HasSuffix(want, ".TO") {
		want += ".TO"
	}
	for i := range last.Detections {
		if last.Detections[i].Symbol == want {
			return notifier.FormatDetectionDetail(&last.Detections[i])
		}
	}
	return fmt.Sprintf("%s was not among the last scan's detections.", want)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
