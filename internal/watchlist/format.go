package watchlist

import (
	"math"
	"net/url"

	"StockWatch/internal/model"

	"github.com/Rhymond/go-money"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Heatmap bounds for renderers. Row returns are never clipped to them.
const (
	HeatmapMin = -5.0
	HeatmapMax = 5.0
)

const chartURLPattern = "https://charts2.finviz.com/chart.ashx?t="

var billion = decimal.New(1, 9)

// Row is a snapshot shaped for display. Returns stay numeric so renderers
// can color and sort them.
type Row struct {
	Ticker    string
	Name      string
	Price     string
	Sector    string
	Industry  string
	Volume    string
	MarketCap string
	Return1D  float64
	Return3D  float64
	ChartURL  string
}

// Rows shapes the report in watchlist order. Tickers without a snapshot are
// skipped.
func Rows(tickers []string, report *model.RefreshReport) []Row {
	if report == nil {
		return nil
	}
	rows := make([]Row, 0, len(report.Snapshots))
	for _, t := range tickers {
		snap, ok := report.Snapshots[t]
		if !ok {
			continue
		}
		rows = append(rows, NewRow(snap))
	}
	return rows
}

// NewRow formats a single snapshot.
func NewRow(s model.TickerSnapshot) Row {
	return Row{
		Ticker:    s.Ticker,
		Name:      s.Name,
		Price:     FormatPrice(s.Price),
		Sector:    s.Sector,
		Industry:  s.Industry,
		Volume:    FormatVolume(s.Volume),
		MarketCap: FormatMarketCap(s.MarketCap),
		Return1D:  s.Change1D,
		Return3D:  s.Change3D,
		ChartURL:  ChartURL(s.Ticker),
	}
}

// FormatPrice renders a USD price with two decimals, e.g. "$105.00".
func FormatPrice(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return model.NotAvailable
	}
	cents := decimal.NewFromFloat(p).Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD).Display()
}

// FormatVolume renders a share count with thousands separators.
func FormatVolume(v int64) string {
	return humanize.Comma(v)
}

// FormatMarketCap renders a market cap in billions, e.g. "$2.50B", or "N/A"
// when unknown.
func FormatMarketCap(c int64) string {
	if c <= 0 {
		return model.NotAvailable
	}
	return "$" + decimal.NewFromInt(c).Div(billion).StringFixed(2) + "B"
}

// ChartURL returns the external chart image for ticker.
func ChartURL(ticker string) string {
	return chartURLPattern + url.QueryEscape(ticker)
}
