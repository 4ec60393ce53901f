package watchlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockWatch/internal/collector"
	"StockWatch/internal/model"
)

func priced(p float64) *model.Quote {
	return &model.Quote{RegularMarketPrice: &p}
}

func TestValidate(t *testing.T) {
	m := collector.NewMockFetcher(map[string]collector.MockSymbol{
		"TSLA":  {Quote: priced(250)},
		"NOPRC": {Quote: &model.Quote{}},
		"ERR":   {QuoteErr: errors.New("timeout")},
	})
	v := NewValidator(m, time.Second)

	tests := []struct {
		in   string
		want Validation
	}{
		{" tsla ", Validation{OK: true, Normalized: "TSLA"}},
		{"noprc", Validation{OK: false, Normalized: "NOPRC"}},
		{"err", Validation{OK: false, Normalized: "ERR"}},
		{"unknown", Validation{OK: false, Normalized: "UNKNOWN"}},
		{"   ", Validation{OK: false, Normalized: ""}},
		{"a,b", Validation{OK: false, Normalized: "A,B"}},
		{"tsla msft", Validation{OK: false, Normalized: "TSLA MSFT"}},
		{"aapl/x", Validation{OK: false, Normalized: "AAPL/X"}},
	}
	for _, tt := range tests {
		if got := v.Validate(context.Background(), tt.in); got != tt.want {
			t.Errorf("Validate(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
	if _, quotes := m.Calls(); quotes != 4 {
		t.Errorf("expected 4 upstream lookups (malformed input skipped), got %d", quotes)
	}
}

func TestValidate_Timeout(t *testing.T) {
	m := collector.NewMockFetcher(map[string]collector.MockSymbol{
		"SLOW": {Quote: priced(1), Delay: time.Second},
	})
	v := NewValidator(m, 20*time.Millisecond)
	if got := v.Validate(context.Background(), "slow"); got.OK {
		t.Error("slow lookup should fail validation")
	}
}

func TestValidate_DoesNotTouchSession(t *testing.T) {
	s := NewSession("AAPL")
	m := collector.NewMockFetcher(map[string]collector.MockSymbol{"TSLA": {Quote: priced(1)}})
	NewValidator(m, time.Second).Validate(context.Background(), "TSLA")
	if s.Len() != 1 || s.Contains("TSLA") {
		t.Errorf("validator mutated session: %v", s.Tickers())
	}
}

func TestValidate_RecoversFromPanic(t *testing.T) {
	m := collector.NewMockFetcher(map[string]collector.MockSymbol{
		"BOOM": {Quote: priced(1), Panic: true},
	})
	got := NewValidator(m, time.Second).Validate(context.Background(), "boom")
	if got != (Validation{OK: false, Normalized: "BOOM"}) {
		t.Errorf("Validate(boom) = %+v", got)
	}
}

func TestValidSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"AAPL", true},
		{"BRK-B", true},
		{"BF.B", true},
		{"^GSPC", true},
		{"EURUSD=X", true},
		{"", false},
		{"A,B", false},
		{"A B", false},
		{"-AB", false},
		{"aapl", false},
		{"ABCDEFGHIJKLMNOP", false},
	}
	for _, tt := range tests {
		if got := ValidSymbol(tt.in); got != tt.want {
			t.Errorf("ValidSymbol(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
