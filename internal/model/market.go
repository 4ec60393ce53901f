package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Period is a lookback window understood by the upstream data source.
type Period string

const (
	Period1d  Period = "1d"
	Period5d  Period = "5d"
	Period1mo Period = "1mo"
	Period3mo Period = "3mo"
	Period6mo Period = "6mo"
	Period1y  Period = "1y"
)

// DefaultPeriod is five trading days.
const DefaultPeriod = Period5d

// Valid reports whether p is one of the known lookback windows.
func (p Period) Valid() bool {
	switch p {
	case Period1d, Period5d, Period1mo, Period3mo, Period6mo, Period1y:
		return true
	}
	return false
}

// Quote is instrument metadata as returned upstream. Nil fields were absent
// in the response.
type Quote struct {
	Symbol             string
	ShortName          *string
	Sector             *string
	Industry           *string
	RegularMarketPrice *float64
	Volume             *int64
	MarketCap          *int64
}
