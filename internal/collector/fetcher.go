package collector

import (
	"context"

	"SignalSentinel/internal/model"
)

// Fetcher defines the interface for fetching raw intraday bars.
// Returned bars may be unsorted, irregular, and carry NaN prices or zero
// timestamps for rows the source could not parse.
type Fetcher interface {
	FetchBars(ctx context.Context, symbol string) ([]model.OHLCV, error)
	Name() string
}
