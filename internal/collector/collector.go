package collector

import (
	"context"
	"fmt"
	"time"

	"SignalSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Count int
	Bars  []model.OHLCV
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ context.Context, _ string) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return generateMockBars(m.Price, m.Count, time.Now()), nil
}

// generateMockBars builds one-minute bars ending at `end` that drift down
// then back up.
func generateMockBars(basePrice float64, count int, end time.Time) []model.OHLCV {
	if basePrice <= 0 {
		basePrice = 100
	}
	if count <= 0 {
		count = 240
	}
	end = end.Truncate(time.Minute)
	bars := make([]model.OHLCV, count)
	prev := basePrice
	for i := 0; i < count; i++ {
		dist := float64(i - count/2)
		if dist < 0 {
			dist = -dist
		}
		p := basePrice * (1 - 0.05 + dist*0.0005)
		if i%7 == 0 {
			p *= 1.002
		}
		bars[i] = model.OHLCV{
			Time:   end.Add(-time.Duration(count-i) * time.Minute),
			Open:   prev,
			High:   max(prev, p) * 1.001,
			Low:    min(prev, p) * 0.999,
			Close:  p,
			Volume: 1000,
		}
		prev = p
	}
	return bars
}

// Collector fetches raw bars and aligns them onto the resampling grid.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
	Width   time.Duration
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, width time.Duration) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Width: width}
}

// Collect fetches raw bars and returns them resampled into a BarSeries.
// An empty fetch yields an empty series and no error.
func (c *Collector) Collect(ctx context.Context) (model.BarSeries, error) {
	raw, err := c.Fetcher.FetchBars(ctx, c.Symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	return Resample(raw, c.Width), nil
}
