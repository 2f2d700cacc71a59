package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/thanesh002/Crypto-Note/internal/alert"
	"github.com/thanesh002/Crypto-Note/internal/notifier"
	"github.com/thanesh002/Crypto-Note/internal/scanner"
)

// Scheduler drives the periodic scan tick and handles Telegram commands.
type Scheduler struct {
	Cron    *cron.Cron
	Scanner *scanner.Scanner
	Store   alert.StateStore
	Ctx     context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sc *scanner.Scanner, store alert.StateStore) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Scanner: sc,
		Store:   store,
		Ctx:     ctx,
	}
}

// Register schedules the scan tick. Accepts cron expressions with a seconds
// field as well as @every intervals.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
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

// RunNow executes a scan immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Println("[INFO] running scan tick")
	s.Scanner.ScanOnce(s.Ctx)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/scan":
		go s.scanTask()
		return "scan started"
	case "/top":
		states, err := s.Store.All(s.Ctx)
		if err != nil {
			log.Printf("[ERROR] list states for /top: %v", err)
			return "failed to read signal store"
		}
		return notifier.FormatTop(states, 20)
	case "/status":
		st := s.Scanner.Status()
		last := "never"
		if !st.LastScan.IsZero() {
			last = st.LastScan.Format("2006-01-02 15:04:05 MST")
		}
		return fmt.Sprintf("watching %d assets, %d warm buffers\nlast scan: %s", st.Watched, st.Buffers, last)
	default:
		return "commands:\n• /scan — run a scan now\n• /top — highest-scoring assets\n• /status — scanner state"
	}
}
