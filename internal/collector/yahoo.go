package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"SignalSentinel/internal/model"
)

// DefaultYahooBaseURL is the Yahoo Finance chart API host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher reads intraday bars from the public chart API.
type YahooFetcher struct {
	BaseURL  string
	Interval string
	Range    string
	Client   *http.Client
	// Aliases maps configured symbols to Yahoo tickers.
	Aliases map[string]string
}

// NewYahooFetcher creates a fetcher for one trading day of 1m bars.
func NewYahooFetcher(proxyURL string, timeout time.Duration) *YahooFetcher {
	return &YahooFetcher{
		BaseURL:  DefaultYahooBaseURL,
		Interval: "1m",
		Range:    "1d",
		Client:   newHTTPClient(proxyURL, timeout),
		Aliases: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

type chartQuote struct {
	Open   []interface{} `json:"open"`
	High   []interface{} `json:"high"`
	Low    []interface{} `json:"low"`
	Close  []interface{} `json:"close"`
	Volume []interface{} `json:"volume"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []chartQuote `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// column returns col[i] as a float, NaN when the column is short or null.
func column(col []interface{}, i int) float64 {
	if i >= len(col) {
		return toFloat(nil)
	}
	return toFloat(col[i])
}

func (f *YahooFetcher) FetchBars(ctx context.Context, symbol string) ([]model.OHLCV, error) {
	ticker := symbol
	if alias, ok := f.Aliases[symbol]; ok {
		ticker = alias
	}
	q := url.Values{}
	q.Set("interval", f.Interval)
	q.Set("range", f.Range)
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.BaseURL, url.PathEscape(ticker), q.Encode())

	var chart chartResponse
	header := http.Header{"User-Agent": []string{"Mozilla/5.0"}}
	if err := getJSON(ctx, f.Client, "yahoo", endpoint, header, &chart); err != nil {
		return nil, err
	}
	if e := chart.Chart.Error; e != nil {
		return nil, fmt.Errorf("yahoo: %s: %s", e.Code, e.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	res := chart.Chart.Result[0]
	quote := res.Indicators.Quote[0]
	bars := make([]model.OHLCV, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		bars[i] = model.OHLCV{
			Time:   parseTime(ts),
			Open:   column(quote.Open, i),
			High:   column(quote.High, i),
			Low:    column(quote.Low, i),
			Close:  column(quote.Close, i),
			Volume: column(quote.Volume, i),
		}
	}
	return bars, nil
}
