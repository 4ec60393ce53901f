package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"StockWatch/internal/model"
)

const (
	yahooBaseURL   = "https://query1.finance.yahoo.com"
	yahooCookieURL = "https://fc.yahoo.com"
)

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	Client    *http.Client
	BaseURL   string
	CookieURL string

	mu    sync.Mutex
	crumb string
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string, timeout time.Duration) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	jar, _ := cookiejar.New(nil)
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			Jar:       jar,
		},
		BaseURL:   yahooBaseURL,
		CookieURL: yahooCookieURL,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yahooRaw is Yahoo's {"raw": 1.0, "fmt": "1.00"} wrapper; absent values come
// back as {} or null.
type yahooRaw struct {
	Raw *float64 `json:"raw"`
}

type yahooQuoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				ShortName           *string   `json:"shortName"`
				RegularMarketPrice  *yahooRaw `json:"regularMarketPrice"`
				RegularMarketVolume *yahooRaw `json:"regularMarketVolume"`
				MarketCap           *yahooRaw `json:"marketCap"`
			} `json:"price"`
			AssetProfile *struct {
				Sector   *string `json:"sector"`
				Industry *string `json:"industry"`
			} `json:"assetProfile"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"quoteSummary"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// at tolerates the ragged arrays Yahoo sometimes returns.
func at(vals []interface{}, i int) float64 {
	if i >= len(vals) {
		return 0
	}
	return toFloat(vals[i])
}

func (f *YahooFetcher) get(ctx context.Context, u string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("yahoo read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func (f *YahooFetcher) FetchHistory(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		f.BaseURL, url.PathEscape(symbol), url.QueryEscape(string(period)))

	body, status, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		if status != http.StatusOK {
			return nil, fmt.Errorf("yahoo: status %d, body: %s", status, string(body))
		}
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", status, string(body))
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := at(quote.Open, i)
		h := at(quote.High, i)
		l := at(quote.Low, i)
		c := at(quote.Close, i)
		if c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: at(quote.Volume, i),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func (f *YahooFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price,assetProfile",
		f.BaseURL, url.PathEscape(symbol))
	if crumb := f.getCrumb(ctx); crumb != "" {
		u += "&crumb=" + url.QueryEscape(crumb)
	}

	body, status, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var qs yahooQuoteSummary
	if err := json.Unmarshal(body, &qs); err != nil {
		if status != http.StatusOK {
			return nil, fmt.Errorf("yahoo: status %d, body: %s", status, string(body))
		}
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if qs.QuoteSummary.Error != nil {
		if status == http.StatusUnauthorized {
			f.resetCrumb()
		}
		return nil, fmt.Errorf("yahoo api error: %s", qs.QuoteSummary.Error.Description)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", status, string(body))
	}
	if len(qs.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no quote for %s", symbol)
	}

	res := qs.QuoteSummary.Result[0]
	q := &model.Quote{Symbol: symbol}
	if p := res.Price; p != nil {
		q.ShortName = p.ShortName
		q.RegularMarketPrice = p.RegularMarketPrice.value()
		q.Volume = p.RegularMarketVolume.intValue()
		q.MarketCap = p.MarketCap.intValue()
	}
	if a := res.AssetProfile; a != nil {
		q.Sector = a.Sector
		q.Industry = a.Industry
	}
	return q, nil
}

func (r *yahooRaw) value() *float64 {
	if r == nil {
		return nil
	}
	return r.Raw
}

func (r *yahooRaw) intValue() *int64 {
	if r == nil || r.Raw == nil {
		return nil
	}
	n := int64(*r.Raw)
	return &n
}

// getCrumb returns the session crumb quoteSummary wants, fetching it once.
// Failures are logged and the request goes out without one.
func (f *YahooFetcher) getCrumb(ctx context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.crumb != "" {
		return f.crumb
	}

	if f.CookieURL != "" {
		// fc.yahoo.com answers 404 but sets the session cookie.
		if _, _, err := f.get(ctx, f.CookieURL); err != nil {
			log.Printf("[WARN] yahoo cookie: %v", err)
		}
	}
	body, status, err := f.get(ctx, f.BaseURL+"/v1/test/getcrumb")
	if err != nil || status != http.StatusOK {
		log.Printf("[WARN] yahoo crumb unavailable (status %d): %v", status, err)
		return ""
	}
	f.crumb = strings.TrimSpace(string(body))
	return f.crumb
}

func (f *YahooFetcher) resetCrumb() {
	f.mu.Lock()
	f.crumb = ""
	f.mu.Unlock()
}
