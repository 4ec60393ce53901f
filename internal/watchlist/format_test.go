package watchlist

import (
	"testing"

	"StockWatch/internal/model"
)

func TestFormatMarketCap(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{2500000000, "$2.50B"},
		{0, "N/A"},
		{-1, "N/A"},
		{3080000000000, "$3080.00B"},
		{1234567, "$0.00B"},
	}
	for _, tt := range tests {
		if got := FormatMarketCap(tt.in); got != tt.want {
			t.Errorf("FormatMarketCap(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatVolume(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{1234567, "1,234,567"},
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
	}
	for _, tt := range tests {
		if got := FormatVolume(tt.in); got != tt.want {
			t.Errorf("FormatVolume(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{105, "$105.00"},
		{0, "$0.00"},
		{0.29, "$0.29"},
		{12.345, "$12.35"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.in); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRows_WatchlistOrderAndRawReturns(t *testing.T) {
	report := &model.RefreshReport{Snapshots: map[string]model.TickerSnapshot{
		"MSFT": {Ticker: "MSFT", Name: "Microsoft", Change1D: -12.5},
		"AAPL": {Ticker: "AAPL", Name: "Apple", Change1D: 7.25, Change3D: 9},
	}}
	rows := Rows([]string{"AAPL", "BADSYM", "MSFT"}, report)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Ticker != "AAPL" || rows[1].Ticker != "MSFT" {
		t.Errorf("rows out of watchlist order: %s, %s", rows[0].Ticker, rows[1].Ticker)
	}
	// outside the heatmap bounds and left as is
	if rows[1].Return1D != -12.5 || rows[0].Return1D != 7.25 {
		t.Errorf("returns were altered: %v, %v", rows[0].Return1D, rows[1].Return1D)
	}
	if rows[0].ChartURL != "https://charts2.finviz.com/chart.ashx?t=AAPL" {
		t.Errorf("ChartURL = %q", rows[0].ChartURL)
	}
	if rows[1].MarketCap != "N/A" {
		t.Errorf("MarketCap = %q, want N/A", rows[1].MarketCap)
	}
}
