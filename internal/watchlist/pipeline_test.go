package watchlist

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"StockWatch/internal/collector"
	"StockWatch/internal/model"
)

func appleFixture() collector.MockSymbol {
	name, sector := "Apple Inc.", "Technology"
	price := 105.0
	volume, mcap := int64(1000000), int64(2500000000)
	return collector.MockSymbol{
		Bars: collector.MockBars(100, 102, 101, 103, 105),
		Quote: &model.Quote{
			ShortName:          &name,
			Sector:             &sector,
			RegularMarketPrice: &price,
			Volume:             &volume,
			MarketCap:          &mcap,
		},
	}
}

func TestRefresh_SingleTicker(t *testing.T) {
	m := collector.NewMockFetcher(map[string]collector.MockSymbol{"AAPL": appleFixture()})
	report := NewPipeline(m, time.Second, 2).Refresh(context.Background(), []string{"AAPL"}, model.DefaultPeriod)

	if len(report.Failures) != 0 {
		t.Fatalf("unexpected failures: %+v", report.Failures)
	}
	snap, ok := report.Snapshots["AAPL"]
	if !ok {
		t.Fatal("AAPL missing from report")
	}
	if math.Abs(snap.Change1D-1.94) > 0.01 {
		t.Errorf("Change1D = %.4f, want ≈ 1.94", snap.Change1D)
	}
	if math.Abs(snap.Change3D-2.94) > 0.01 {
		t.Errorf("Change3D = %.4f, want ≈ 2.94", snap.Change3D)
	}
	if snap.Industry != model.NotAvailable {
		t.Errorf("Industry = %q, want %q", snap.Industry, model.NotAvailable)
	}

	row := NewRow(snap)
	if row.Price != "$105.00" {
		t.Errorf("Price = %q, want $105.00", row.Price)
	}
	if row.Volume != "1,000,000" {
		t.Errorf("Volume = %q, want 1,000,000", row.Volume)
	}
	if row.MarketCap != "$2.50B" {
		t.Errorf("MarketCap = %q, want $2.50B", row.MarketCap)
	}
	if report.RunID == "" || report.Period != model.Period5d || report.FetchedAt.IsZero() {
		t.Errorf("report metadata not filled: %+v", report)
	}
}

func TestRefresh_EmptySeriesOmitted(t *testing.T) {
	m := collector.NewMockFetcher(nil)
	report := NewPipeline(m, time.Second, 2).Refresh(context.Background(), []string{"BADSYM"}, model.DefaultPeriod)
	if !report.Empty() {
		t.Fatalf("expected empty report, got %+v", report.Snapshots)
	}
	if len(report.Failures) != 1 || report.Failures[0].Ticker != "BADSYM" {
		t.Errorf("expected one failure for BADSYM, got %+v", report.Failures)
	}
}

func TestRefresh_FaultIsolation(t *testing.T) {
	m := collector.NewMockFetcher(map[string]collector.MockSymbol{
		"AAPL":  appleFixture(),
		"BOOM":  {Bars: collector.MockBars(1, 2), Panic: true},
		"ERR":   {HistoryErr: errors.New("connection reset")},
		"SLOW":  {Bars: collector.MockBars(1, 2), Delay: time.Second},
		"NOQUO": {Bars: collector.MockBars(1, 2), QuoteErr: errors.New("malformed")},
	})
	tickers := []string{"BOOM", "AAPL", "BADSYM", "ERR", "SLOW", "NOQUO"}
	report := NewPipeline(m, 50*time.Millisecond, 3).Refresh(context.Background(), tickers, model.DefaultPeriod)

	if len(report.Snapshots) != 1 {
		t.Fatalf("expected only AAPL to resolve, got %d snapshots", len(report.Snapshots))
	}
	if _, ok := report.Snapshots["AAPL"]; !ok {
		t.Error("AAPL missing")
	}
	wantFailed := []string{"BOOM", "BADSYM", "ERR", "SLOW", "NOQUO"}
	if len(report.Failures) != len(wantFailed) {
		t.Fatalf("failures = %+v, want %v", report.Failures, wantFailed)
	}
	for i, f := range report.Failures {
		if f.Ticker != wantFailed[i] {
			t.Errorf("failure %d = %s, want %s (input order)", i, f.Ticker, wantFailed[i])
		}
		if f.Reason == "" {
			t.Errorf("failure %s has no reason", f.Ticker)
		}
	}
}

func TestRefresh_KeysSubsetOfInput(t *testing.T) {
	m := collector.DemoFetcher()
	tickers := []string{"MSFT", "NOPE", "META"}
	report := NewPipeline(m, time.Second, 0).Refresh(context.Background(), tickers, "")
	for k := range report.Snapshots {
		found := false
		for _, in := range tickers {
			if in == k {
				found = true
			}
		}
		if !found {
			t.Errorf("snapshot key %s not in input", k)
		}
	}
	if len(report.Snapshots) != 2 {
		t.Errorf("expected 2 snapshots, got %d", len(report.Snapshots))
	}
}

func TestRefresh_EmptyInput(t *testing.T) {
	m := collector.NewMockFetcher(nil)
	report := NewPipeline(m, time.Second, 1).Refresh(context.Background(), nil, model.DefaultPeriod)
	if !report.Empty() || len(report.Failures) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
	if h, q := m.Calls(); h != 0 || q != 0 {
		t.Errorf("no upstream calls expected, got %d/%d", h, q)
	}
}
