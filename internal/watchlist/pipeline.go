package watchlist

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockWatch/internal/collector"
	"StockWatch/internal/model"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultTickerTimeout = 10 * time.Second
	defaultConcurrency   = 4
)

// Pipeline refreshes a whole watchlist. Each ticker is fetched on its own
// with its own timeout; one failing ticker never affects the others.
type Pipeline struct {
	Collector   *collector.Collector
	Timeout     time.Duration // per ticker
	Concurrency int
}

// NewPipeline creates a Pipeline over fetcher. Non-positive timeout or
// concurrency fall back to defaults.
func NewPipeline(fetcher collector.Fetcher, timeout time.Duration, concurrency int) *Pipeline {
	if timeout <= 0 {
		timeout = defaultTickerTimeout
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Pipeline{
		Collector:   collector.NewCollector(fetcher),
		Timeout:     timeout,
		Concurrency: concurrency,
	}
}

// outcome is the result for one ticker: exactly one of snapshot or failure.
type outcome struct {
	snapshot *model.TickerSnapshot
	failure  *model.TickerFailure
}

// Refresh fetches and derives a snapshot for every ticker. Tickers that fail
// are omitted from Snapshots and listed in Failures in input order.
func (p *Pipeline) Refresh(ctx context.Context, tickers []string, period model.Period) *model.RefreshReport {
	if period == "" {
		period = model.DefaultPeriod
	}
	report := &model.RefreshReport{
		RunID:     uuid.NewString(),
		Period:    period,
		Tickers:   append([]string(nil), tickers...),
		Snapshots: make(map[string]model.TickerSnapshot, len(tickers)),
	}

	outcomes := make([]outcome, len(tickers))
	var g errgroup.Group
	g.SetLimit(p.Concurrency)
	for i, t := range tickers {
		i, t := i, t
		g.Go(func() error {
			outcomes[i] = p.refreshOne(ctx, t, period)
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		switch {
		case o.snapshot != nil:
			report.Snapshots[o.snapshot.Ticker] = *o.snapshot
		case o.failure != nil:
			log.Printf("[WARN] refresh %s: %s: %s", report.RunID, o.failure.Ticker, o.failure.Reason)
			report.Failures = append(report.Failures, *o.failure)
		}
	}
	report.FetchedAt = time.Now()

	log.Printf("[INFO] refresh %s: %d/%d tickers resolved (period %s)",
		report.RunID, len(report.Snapshots), len(tickers), period)
	return report
}

func (p *Pipeline) refreshOne(ctx context.Context, ticker string, period model.Period) (o outcome) {
	defer func() {
		if r := recover(); r != nil {
			o = fail(ticker, fmt.Errorf("panic: %v", r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	snap, err := p.Collector.Collect(ctx, ticker, period)
	if err != nil {
		return fail(ticker, err)
	}
	snap.Ticker = ticker
	return outcome{snapshot: snap}
}

func fail(ticker string, err error) outcome {
	return outcome{failure: &model.TickerFailure{Ticker: ticker, Reason: err.Error()}}
}
