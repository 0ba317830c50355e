package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"SignalSentinel/internal/model"
)

// DefaultEODHDBaseURL is the public EOD Historical Data API host.
const DefaultEODHDBaseURL = "https://eodhd.com"

// EODHDFetcher implements Fetcher using the EOD Historical Data intraday API.
type EODHDFetcher struct {
	BaseURL  string
	APIKey   string
	Interval string
	Client   *http.Client
}

// NewEODHDFetcher creates a new fetcher with optional proxy support.
func NewEODHDFetcher(baseURL, apiKey, interval, proxyURL string, timeout time.Duration) *EODHDFetcher {
	if baseURL == "" {
		baseURL = DefaultEODHDBaseURL
	}
	if interval == "" {
		interval = "1m"
	}
	return &EODHDFetcher{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		Interval: interval,
		Client:   newHTTPClient(proxyURL, timeout),
	}
}

func (f *EODHDFetcher) Name() string { return "eodhd" }

// eodBar is the JSON shape of one intraday record. Prices are decoded
// loosely since the API may send numbers, strings or null.
type eodBar struct {
	Timestamp interface{} `json:"timestamp"`
	Datetime  string      `json:"datetime"`
	Open      interface{} `json:"open"`
	High      interface{} `json:"high"`
	Low       interface{} `json:"low"`
	Close     interface{} `json:"close"`
	Volume    interface{} `json:"volume"`
}

func (f *EODHDFetcher) FetchBars(ctx context.Context, symbol string) ([]model.OHLCV, error) {
	q := url.Values{}
	q.Set("api_token", f.APIKey)
	q.Set("interval", f.Interval)
	q.Set("fmt", "json")
	endpoint := fmt.Sprintf("%s/api/intraday/%s?%s", f.BaseURL, url.PathEscape(symbol), q.Encode())

	var records []eodBar
	if err := getJSON(ctx, f.Client, "eodhd", endpoint, nil, &records); err != nil {
		return nil, err
	}

	bars := make([]model.OHLCV, 0, len(records))
	for _, r := range records {
		ts := parseTime(r.Timestamp)
		if ts.IsZero() {
			ts = parseTime(r.Datetime)
		}
		bars = append(bars, model.OHLCV{
			Time:   ts,
			Open:   toFloat(r.Open),
			High:   toFloat(r.High),
			Low:    toFloat(r.Low),
			Close:  toFloat(r.Close),
			Volume: toFloat(r.Volume),
		})
	}
	return bars, nil
}
