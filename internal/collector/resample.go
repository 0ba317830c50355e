package collector

import (
	"math"
	"sort"
	"time"

	"SignalSentinel/internal/model"
)

// DefaultWidth is the bucket width used when none is configured.
const DefaultWidth = 5 * time.Minute

// Resample buckets raw bars into fixed-width intervals keyed by bucket start.
// Per bucket: open is the first valid open, high the max high, low the min
// low, close the last valid close, volume the sum. Rows without a timestamp
// are dropped, empty buckets are not synthesized, and a field with no valid
// value in its bucket stays NaN.
func Resample(raw []model.OHLCV, width time.Duration) model.BarSeries {
	if width <= 0 {
		width = DefaultWidth
	}

	rows := make([]model.OHLCV, 0, len(raw))
	for _, r := range raw {
		if r.Valid() {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return model.BarSeries{}
	}
	// stable keeps source order for rows sharing a timestamp
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Time.Before(rows[j].Time) })

	var series model.BarSeries
	var bucket model.OHLCV
	var started bool

	for _, r := range rows {
		start := r.Time.UTC().Truncate(width)
		if !started || !start.Equal(bucket.Time) {
			if started {
				series = append(series, bucket)
			}
			bucket = newBucket(start)
			started = true
		}
		merge(&bucket, r)
	}
	if started {
		series = append(series, bucket)
	}
	return series
}

func newBucket(start time.Time) model.OHLCV {
	nan := math.NaN()
	return model.OHLCV{Time: start, Open: nan, High: nan, Low: nan, Close: nan, Volume: nan}
}

func merge(b *model.OHLCV, r model.OHLCV) {
	if math.IsNaN(b.Open) {
		b.Open = r.Open
	}
	if !math.IsNaN(r.High) && (math.IsNaN(b.High) || r.High > b.High) {
		b.High = r.High
	}
	if !math.IsNaN(r.Low) && (math.IsNaN(b.Low) || r.Low < b.Low) {
		b.Low = r.Low
	}
	if !math.IsNaN(r.Close) {
		b.Close = r.Close
	}
	if !math.IsNaN(r.Volume) {
		if math.IsNaN(b.Volume) {
			b.Volume = 0
		}
		b.Volume += r.Volume
	}
}
