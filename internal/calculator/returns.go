package calculator

import "StockWatch/internal/model"

// LagReturn returns the percentage change of the latest close versus the
// close lag bars earlier: (c[n-1]/c[n-1-lag] - 1) * 100.
// Returns 0 when there are fewer than lag+1 closes or the base close is 0.
func LagReturn(closes []float64, lag int) float64 {
	if lag <= 0 || len(closes) < lag+1 {
		return 0
	}
	last := closes[len(closes)-1]
	base := closes[len(closes)-1-lag]
	if base == 0 {
		return 0
	}
	return (last/base - 1) * 100
}

// Change1D returns the one-bar return in percent.
func Change1D(bars []model.OHLCV) float64 {
	return LagReturn(Closes(bars), 1)
}

// Change3D returns the latest close versus the close three bars earlier, in
// percent. Needs at least 4 bars.
func Change3D(bars []model.OHLCV) float64 {
	return LagReturn(Closes(bars), 3)
}

// Closes extracts closing prices in bar order.
func Closes(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
