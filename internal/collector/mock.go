package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"StockWatch/internal/model"
)

// MockSymbol is the canned upstream data for one symbol.
type MockSymbol struct {
	Bars       []model.OHLCV
	Quote      *model.Quote
	HistoryErr error
	QuoteErr   error
	// Delay is applied before answering; the call honours ctx while waiting.
	Delay time.Duration
	// Panic makes FetchQuote panic, to exercise fault isolation.
	Panic bool
}

// MockFetcher returns controllable fixed data for development and testing.
// Unknown symbols get an empty history and a quote error.
type MockFetcher struct {
	mu           sync.Mutex
	Symbols      map[string]MockSymbol
	historyCalls int
	quoteCalls   int
}

// NewMockFetcher creates a MockFetcher serving the given fixtures.
func NewMockFetcher(symbols map[string]MockSymbol) *MockFetcher {
	if symbols == nil {
		symbols = map[string]MockSymbol{}
	}
	return &MockFetcher{Symbols: symbols}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) lookup(symbol string, history bool) (MockSymbol, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if history {
		m.historyCalls++
	} else {
		m.quoteCalls++
	}
	s, ok := m.Symbols[symbol]
	return s, ok
}

// Set replaces the fixture for symbol.
func (m *MockFetcher) Set(symbol string, s MockSymbol) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Symbols[symbol] = s
}

// Calls returns how many history and quote lookups were made.
func (m *MockFetcher) Calls() (history, quote int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.historyCalls, m.quoteCalls
}

func (m *MockFetcher) FetchHistory(ctx context.Context, symbol string, _ model.Period) ([]model.OHLCV, error) {
	s, ok := m.lookup(symbol, true)
	if err := wait(ctx, s.Delay); err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	if s.HistoryErr != nil {
		return nil, s.HistoryErr
	}
	return append([]model.OHLCV(nil), s.Bars...), nil
}

func (m *MockFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	s, ok := m.lookup(symbol, false)
	if err := wait(ctx, s.Delay); err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("mock: unknown symbol %s", symbol)
	}
	if s.Panic {
		panic("mock: quote exploded for " + symbol)
	}
	if s.QuoteErr != nil {
		return nil, s.QuoteErr
	}
	if s.Quote == nil {
		return &model.Quote{Symbol: symbol}, nil
	}
	q := *s.Quote
	return &q, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// MockBars builds daily bars ending today from closing prices.
func MockBars(closes ...float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(len(closes) - i)),
			Open:   c * 0.999,
			High:   c * 1.005,
			Low:    c * 0.995,
			Close:  c,
			Volume: 1000000,
		}
	}
	return bars
}

// DemoFetcher returns a MockFetcher seeded with plausible data for the
// default watchlist.
func DemoFetcher() *MockFetcher {
	quote := func(name, sector, industry string, price float64, volume, mcap int64) *model.Quote {
		return &model.Quote{
			ShortName:          &name,
			Sector:             &sector,
			Industry:           &industry,
			RegularMarketPrice: &price,
			Volume:             &volume,
			MarketCap:          &mcap,
		}
	}
	return NewMockFetcher(map[string]MockSymbol{
		"AAPL":  {Bars: MockBars(100, 102, 101, 103, 105), Quote: quote("Apple Inc.", "Technology", "Consumer Electronics", 105, 1000000, 2500000000)},
		"MSFT":  {Bars: MockBars(410, 405, 412, 415, 414), Quote: quote("Microsoft Corporation", "Technology", "Software - Infrastructure", 414, 21000000, 3080000000000)},
		"GOOGL": {Bars: MockBars(160, 158, 162, 161, 165), Quote: quote("Alphabet Inc.", "Communication Services", "Internet Content & Information", 165, 25000000, 2030000000000)},
		"AMZN":  {Bars: MockBars(180, 182, 179, 178, 181), Quote: quote("Amazon.com, Inc.", "Consumer Cyclical", "Internet Retail", 181, 40000000, 1890000000000)},
		"META":  {Bars: MockBars(500, 505, 498, 510, 520), Quote: quote("Meta Platforms, Inc.", "Communication Services", "Internet Content & Information", 520, 15000000, 1320000000000)},
	})
}
