package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"StockWatch/internal/dashboard"
	"StockWatch/internal/notifier"
	"StockWatch/internal/watchlist"

	"github.com/robfig/cron/v3"
)

// Sender delivers a message to the configured chat.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the periodic refresh and digest jobs and answers bot
// commands against one watchlist session.
type Scheduler struct {
	Cron      *cron.Cron
	Dashboard *dashboard.Service
	Session   *watchlist.Session
	Notifier  Sender
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *dashboard.Service, session *watchlist.Session, n Sender) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Dashboard: svc,
		Session:   session,
		Notifier:  n,
		Ctx:       ctx,
	}
}

// RegisterAll registers the refresh and digest tasks. An empty spec skips
// that task.
func (s *Scheduler) RegisterAll(refreshCron, digestCron string) error {
	if refreshCron != "" {
		if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
			return fmt.Errorf("register refresh task: %w", err)
		}
	}
	if digestCron != "" {
		if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
			return fmt.Errorf("register digest task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunDigestNow sends the digest immediately (for RUN_ON_START).
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

// refreshTask keeps the cache warm so commands answer from it.
func (s *Scheduler) refreshTask() {
	v, err := s.Dashboard.Refresh(s.Ctx, s.Session)
	switch {
	case errors.Is(err, dashboard.ErrEmptyWatchlist):
		log.Println("[INFO] refresh skipped: watchlist is empty")
	case err != nil:
		log.Printf("[ERROR] scheduled refresh: %v", err)
	default:
		log.Printf("[INFO] scheduled refresh %s: %d rows, %d failures, cached=%v",
			v.RunID, len(v.Rows), len(v.Failures), v.Cached)
	}
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] running digest task")
	s.trySend(s.overview())
}

func (s *Scheduler) overview() string {
	v, err := s.Dashboard.Refresh(s.Ctx, s.Session)
	if err != nil {
		if !errors.Is(err, dashboard.ErrEmptyWatchlist) {
			log.Printf("[ERROR] refresh: %v", err)
		}
		return notifier.FormatError(err)
	}
	return notifier.FormatView(v)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.HelpText
	}
	// "/add@MyBot TSLA" in group chats
	name := strings.ToLower(fields[0])
	if i := strings.IndexByte(name, '@'); i > 0 {
		name = name[:i]
	}
	args := fields[1:]

	switch name {
	case "/refresh", "/watchlist":
		return s.overview()
	case "/list":
		return notifier.FormatWatchlist(s.Session.Tickers())
	case "/add":
		if len(args) != 1 {
			return "Usage: /add SYM"
		}
		t, err := s.Dashboard.AddTicker(s.Ctx, s.Session, args[0])
		if err != nil {
			return notifier.FormatError(err)
		}
		return fmt.Sprintf("✅ Added %s to watchlist!", t)
	case "/remove":
		if len(args) != 1 {
			return "Usage: /remove SYM"
		}
		if err := s.Dashboard.RemoveTicker(s.Session, args[0]); err != nil {
			return notifier.FormatError(err)
		}
		return fmt.Sprintf("✅ Removed %s from watchlist!", watchlist.Normalize(args[0]))
	default:
		return notifier.HelpText
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
