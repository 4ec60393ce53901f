package watchlist

import (
	"context"
	"log"
	"time"

	"StockWatch/internal/collector"
)

// Validation is the result of checking a candidate ticker.
type Validation struct {
	OK         bool
	Normalized string
}

// Validator confirms that a symbol resolves to an instrument with a live
// price.
type Validator struct {
	Fetcher collector.Fetcher
	Timeout time.Duration
}

// NewValidator creates a Validator. A non-positive timeout means 10s.
func NewValidator(fetcher collector.Fetcher, timeout time.Duration) *Validator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Validator{Fetcher: fetcher, Timeout: timeout}
}

// Validate normalizes candidate and looks it up upstream. Malformed symbols
// are rejected without a lookup. Any lookup error or panic is reported as
// OK=false; nothing is returned to handle.
func (v *Validator) Validate(ctx context.Context, candidate string) (res Validation) {
	res = Validation{Normalized: Normalize(candidate)}
	if !ValidSymbol(res.Normalized) {
		return res
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] validate %s: panic: %v", res.Normalized, r)
			res.OK = false
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, v.Timeout)
	defer cancel()

	q, err := v.Fetcher.FetchQuote(ctx, res.Normalized)
	if err != nil {
		log.Printf("[WARN] validate %s: %v", res.Normalized, err)
		return res
	}
	res.OK = q != nil && q.RegularMarketPrice != nil
	return res
}
