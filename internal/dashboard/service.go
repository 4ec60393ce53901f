// Package dashboard ties the watchlist session, validator, refresh pipeline
// and cache together behind the operations a user surface needs.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"StockWatch/internal/cache"
	"StockWatch/internal/model"
	"StockWatch/internal/watchlist"
)

var (
	// ErrInvalidTicker means the symbol does not resolve to a live instrument.
	ErrInvalidTicker = errors.New("could not validate ticker")
	// ErrDuplicateTicker means the symbol is already on the watchlist.
	ErrDuplicateTicker = errors.New("ticker is already in your watchlist")
	// ErrUnknownTicker means a removal named a symbol that is not on the watchlist.
	ErrUnknownTicker = errors.New("ticker is not in your watchlist")
	// ErrEmptyWatchlist is an empty state rather than a failure.
	ErrEmptyWatchlist = errors.New("your watchlist is empty")
	// ErrNoData means a non-empty watchlist produced no snapshots at all.
	ErrNoData = errors.New("could not fetch data for any tickers")
)

// EmptyBatchError carries the per-ticker failures behind ErrNoData.
type EmptyBatchError struct {
	Failures []model.TickerFailure
}

func (e *EmptyBatchError) Error() string {
	return fmt.Sprintf("%s (%d failed)", ErrNoData, len(e.Failures))
}

func (e *EmptyBatchError) Is(target error) bool { return target == ErrNoData }

// View is a refresh ready for rendering.
type View struct {
	RunID     string
	Period    model.Period
	Rows      []watchlist.Row
	Failures  []model.TickerFailure
	FetchedAt time.Time
	Cached    bool
}

// Service runs dashboard operations against a caller-owned session.
type Service struct {
	Pipeline  *watchlist.Pipeline
	Validator *watchlist.Validator
	Cache     *cache.Cache
	Period    model.Period
}

// New creates a Service. An empty period means the default lookback.
func New(p *watchlist.Pipeline, v *watchlist.Validator, c *cache.Cache, period model.Period) *Service {
	if period == "" {
		period = model.DefaultPeriod
	}
	return &Service{Pipeline: p, Validator: v, Cache: c, Period: period}
}

// AddTicker validates candidate and appends it to the session. It returns
// the normalized symbol. The session is untouched on any error.
func (s *Service) AddTicker(ctx context.Context, session *watchlist.Session, candidate string) (string, error) {
	res := s.Validator.Validate(ctx, candidate)
	if !res.OK {
		return res.Normalized, fmt.Errorf("%w %s", ErrInvalidTicker, res.Normalized)
	}
	if !session.Add(res.Normalized) {
		return res.Normalized, fmt.Errorf("%s: %w", res.Normalized, ErrDuplicateTicker)
	}
	log.Printf("[INFO] added %s to watchlist", res.Normalized)
	return res.Normalized, nil
}

// RemoveTicker drops ticker from the session.
func (s *Service) RemoveTicker(session *watchlist.Session, ticker string) error {
	t := watchlist.Normalize(ticker)
	if !session.Remove(t) {
		return fmt.Errorf("%s: %w", t, ErrUnknownTicker)
	}
	log.Printf("[INFO] removed %s from watchlist", t)
	return nil
}

// Refresh returns the current view of the session's watchlist, served from
// the cache while it is fresh. An empty watchlist yields ErrEmptyWatchlist;
// a batch where every ticker failed yields an *EmptyBatchError, which is
// never cached.
func (s *Service) Refresh(ctx context.Context, session *watchlist.Session) (*View, error) {
	tickers := session.Tickers()
	if len(tickers) == 0 {
		return nil, ErrEmptyWatchlist
	}

	key := cache.Key{Tickers: tickers, Period: s.Period}
	report, hit, err := s.Cache.GetOrCompute(ctx, key, func(ctx context.Context) (*model.RefreshReport, error) {
		r := s.Pipeline.Refresh(ctx, tickers, s.Period)
		if r.Empty() {
			return nil, &EmptyBatchError{Failures: r.Failures}
		}
		return r, nil
	})
	if err != nil {
		return nil, err
	}

	return &View{
		RunID:     report.RunID,
		Period:    report.Period,
		Rows:      watchlist.Rows(tickers, report),
		Failures:  report.Failures,
		FetchedAt: report.FetchedAt,
		Cached:    hit,
	}, nil
}
