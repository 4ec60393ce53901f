package calculator

import (
	"math"
	"testing"
	"time"

	"StockWatch/internal/model"
)

func barsFromCloses(closes ...float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = model.OHLCV{Time: start.AddDate(0, 0, i), Close: c}
	}
	return bars
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLagReturn_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		lag    int
		want   float64
	}{
		{"empty", nil, 1, 0},
		{"single point, lag 1", []float64{100}, 1, 0},
		{"two points, lag 1", []float64{100, 110}, 1, 10},
		{"three points, lag 3", []float64{100, 101, 102}, 3, 0},
		{"four points, lag 3", []float64{100, 101, 102, 90}, 3, -10},
		{"zero base", []float64{0, 5}, 1, 0},
		{"non-positive lag", []float64{1, 2, 3}, 0, 0},
	}
	for _, tt := range tests {
		if got := LagReturn(tt.closes, tt.lag); !almostEqual(got, tt.want) {
			t.Errorf("%s: LagReturn = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestChange1DAnd3D_FivePointSeries(t *testing.T) {
	bars := barsFromCloses(100, 102, 101, 103, 105)

	want1 := (105.0/103.0 - 1) * 100
	if got := Change1D(bars); !almostEqual(got, want1) {
		t.Errorf("Change1D = %v, want %v", got, want1)
	}
	// index -4 is the second bar (102), not the first
	want3 := (105.0/102.0 - 1) * 100
	if got := Change3D(bars); !almostEqual(got, want3) {
		t.Errorf("Change3D = %v, want %v", got, want3)
	}
	if math.Abs(Change1D(bars)-1.94) > 0.01 {
		t.Errorf("Change1D ≈ %.2f, want ≈ 1.94", Change1D(bars))
	}
	if math.Abs(Change3D(bars)-2.94) > 0.01 {
		t.Errorf("Change3D ≈ %.2f, want ≈ 2.94", Change3D(bars))
	}
}

func TestChange3D_ExactlyFourPoints(t *testing.T) {
	bars := barsFromCloses(50, 60, 70, 75)
	if got, want := Change3D(bars), 50.0; !almostEqual(got, want) {
		t.Errorf("Change3D = %v, want %v", got, want)
	}
	if got := Change3D(bars[:3]); got != 0 {
		t.Errorf("Change3D with 3 points = %v, want 0", got)
	}
	if got := Change1D(bars[:1]); got != 0 {
		t.Errorf("Change1D with 1 point = %v, want 0", got)
	}
}
