package collector

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYahooFetcher_FetchBars(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/^GSPC", r.URL.Path)
		assert.Equal(t, "1m", r.URL.Query().Get("interval"))
		_, _ = w.Write([]byte(`{"chart": {"result": [{
			"timestamp": [1712583000, 1712583060],
			"indicators": {"quote": [{
				"open": [5200.1, null],
				"high": [5201.0, null],
				"low": [5199.5, null],
				"close": [5200.7, null],
				"volume": [100, null]
			}]}
		}], "error": null}}`))
	}))
	defer server.Close()

	f := NewYahooFetcher("", 0)
	f.BaseURL = server.URL

	bars, err := f.FetchBars(context.Background(), "SPX500")
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 5200.7, bars[0].Close)
	assert.True(t, math.IsNaN(bars[1].Close))
	assert.True(t, bars[1].Valid())
}

func TestYahooFetcher_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found"}}}`))
	}))
	defer server.Close()

	f := NewYahooFetcher("", 0)
	f.BaseURL = server.URL

	_, err := f.FetchBars(context.Background(), "NOPE")
	assert.ErrorContains(t, err, "No data found")
}
