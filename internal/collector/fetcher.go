package collector

import (
	"context"

	"StockWatch/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchHistory returns daily bars for period, oldest first. An unknown
	// symbol may yield an empty slice rather than an error.
	FetchHistory(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error)
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
	Name() string
}
