// Package watchlist holds the user's watchlist session, the ticker validator
// and the refresh pipeline that turns a watchlist into display rows.
package watchlist

import (
	"regexp"
	"strings"
	"sync"
)

// DefaultSeed is the watchlist a new session starts with.
var DefaultSeed = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "META"}

// symbolPattern covers exchange tickers plus Yahoo's index (^GSPC), class
// (BRK-B, BF.B) and currency (EURUSD=X) forms.
var symbolPattern = regexp.MustCompile(`^[A-Z0-9^][A-Z0-9.\-=]{0,14}$`)

// Normalize upper-cases and trims a ticker symbol.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidSymbol reports whether a normalized symbol is shaped like a ticker.
func ValidSymbol(symbol string) bool {
	return symbolPattern.MatchString(symbol)
}

// Session is an in-memory, ordered set of unique tickers. It lives as long
// as the surface that owns it and is safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	tickers []string
}

// NewSession creates a session seeded with the given tickers. Seeds are
// normalized; blanks and duplicates are dropped.
func NewSession(seed ...string) *Session {
	s := &Session{}
	for _, t := range seed {
		s.Add(Normalize(t))
	}
	return s
}

// Add appends ticker unless it is malformed or already present. It reports
// whether the watchlist changed. Callers validate before adding.
func (s *Session) Add(ticker string) bool {
	if !ValidSymbol(ticker) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.tickers, ticker) >= 0 {
		return false
	}
	s.tickers = append(s.tickers, ticker)
	return true
}

// Remove deletes ticker and reports whether it was present.
func (s *Session) Remove(ticker string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.tickers, ticker)
	if i < 0 {
		return false
	}
	s.tickers = append(s.tickers[:i:i], s.tickers[i+1:]...)
	return true
}

// Contains reports whether ticker is on the watchlist.
func (s *Session) Contains(ticker string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.tickers, ticker) >= 0
}

// Tickers returns a copy of the watchlist in insertion order.
func (s *Session) Tickers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.tickers...)
}

// Len returns the number of tickers.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tickers)
}

func indexOf(list []string, v string) int {
	for i, t := range list {
		if t == v {
			return i
		}
	}
	return -1
}
