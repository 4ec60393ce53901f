package model

import "time"

// NotAvailable fills descriptive fields the upstream did not report.
const NotAvailable = "N/A"

// TickerSnapshot is the derived per-ticker record of one refresh.
type TickerSnapshot struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	Industry  string  `json:"industry"`
	Price     float64 `json:"price"`
	Change1D  float64 `json:"change_1d"`
	Change3D  float64 `json:"change_3d"`
	Volume    int64   `json:"volume"`
	MarketCap int64   `json:"market_cap"`
	Points    int     `json:"points"`
}

// TickerFailure records why a ticker was left out of a refresh.
type TickerFailure struct {
	Ticker string `json:"ticker"`
	Reason string `json:"reason"`
}

// RefreshReport is the outcome of refreshing a whole watchlist. Snapshots
// only holds tickers that resolved; the rest are listed in Failures.
type RefreshReport struct {
	RunID     string                    `json:"run_id"`
	Period    Period                    `json:"period"`
	Tickers   []string                  `json:"tickers"`
	Snapshots map[string]TickerSnapshot `json:"snapshots"`
	Failures  []TickerFailure           `json:"failures"`
	FetchedAt time.Time                 `json:"fetched_at"`
}

// Empty reports whether no ticker resolved.
func (r *RefreshReport) Empty() bool {
	return r == nil || len(r.Snapshots) == 0
}
