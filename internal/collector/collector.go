package collector

import (
	"context"
	"errors"
	"fmt"
	"log"

	"StockWatch/internal/calculator"
	"StockWatch/internal/model"
)

// ErrNoPriceData is returned when the upstream has no bars for a ticker.
var ErrNoPriceData = errors.New("no price data")

// Collector builds the snapshot of a single ticker.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Collect fetches history and metadata for symbol and derives its snapshot.
// Fields missing from the quote fall back to defaults.
func (c *Collector) Collect(ctx context.Context, symbol string, period model.Period) (*model.TickerSnapshot, error) {
	bars, err := c.Fetcher.FetchHistory(ctx, symbol, period)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	if len(bars) == 0 {
		return nil, ErrNoPriceData
	}
	quote, err := c.Fetcher.FetchQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	if quote == nil {
		quote = &model.Quote{Symbol: symbol}
	}

	snap := &model.TickerSnapshot{
		Ticker:   symbol,
		Name:     stringOr(quote.ShortName, symbol),
		Sector:   stringOr(quote.Sector, model.NotAvailable),
		Industry: stringOr(quote.Industry, model.NotAvailable),
		Change1D: calculator.Change1D(bars),
		Change3D: calculator.Change3D(bars),
		Points:   len(bars),
	}

	if quote.RegularMarketPrice != nil {
		snap.Price = *quote.RegularMarketPrice
	} else {
		log.Printf("[WARN] %s: no regular market price, defaulting to 0", symbol)
	}
	if quote.Volume != nil {
		snap.Volume = *quote.Volume
	}
	if quote.MarketCap != nil {
		snap.MarketCap = *quote.MarketCap
	}

	return snap, nil
}

func stringOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
