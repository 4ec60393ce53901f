package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockWatch/internal/model"
)

// RESTFetcher implements Fetcher against a generic market-data REST API.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *RESTFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RESTFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape of a bar.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

// restQuote mirrors the field names Yahoo uses so that proxies can pass them
// through unchanged.
type restQuote struct {
	ShortName          *string  `json:"shortName"`
	Sector             *string  `json:"sector"`
	Industry           *string  `json:"industry"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	Volume             *int64   `json:"volume"`
	MarketCap          *int64   `json:"marketCap"`
}

func (f *RESTFetcher) FetchHistory(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&range=%s",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(string(period)))

	var bars []restBar
	if err := f.getJSON(ctx, endpoint, &bars); err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	out := make([]model.OHLCV, len(bars))
	for i, b := range bars {
		out[i] = model.OHLCV{
			Time:   time.Unix(b.Timestamp, 0),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	// Ensure chronological order
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func (f *RESTFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s", f.BaseURL, url.QueryEscape(symbol))

	var rq restQuote
	if err := f.getJSON(ctx, endpoint, &rq); err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}
	return &model.Quote{
		Symbol:             symbol,
		ShortName:          rq.ShortName,
		Sector:             rq.Sector,
		Industry:           rq.Industry,
		RegularMarketPrice: rq.RegularMarketPrice,
		Volume:             rq.Volume,
		MarketCap:          rq.MarketCap,
	}, nil
}

func (f *RESTFetcher) getJSON(ctx context.Context, endpoint string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
