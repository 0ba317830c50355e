package collector

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalSentinel/internal/model"
)

var t0 = time.Date(2024, 4, 8, 13, 30, 0, 0, time.UTC)

func bar(offset time.Duration, o, h, l, c float64) model.OHLCV {
	return model.OHLCV{Time: t0.Add(offset), Open: o, High: h, Low: l, Close: c, Volume: 10}
}

func TestResample_Empty(t *testing.T) {
	out := Resample(nil, 5*time.Minute)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestResample_AggregatesBucket(t *testing.T) {
	raw := []model.OHLCV{
		bar(0, 10, 11, 9, 10.5),
		bar(1*time.Minute, 10.5, 12, 10, 11),
		bar(4*time.Minute, 11, 11.5, 8, 9),
		bar(5*time.Minute, 9, 9.5, 8.5, 9.2),
	}
	out := Resample(raw, 5*time.Minute)
	require.Len(t, out, 2)

	first := out[0]
	assert.True(t, first.Time.Equal(t0))
	assert.Equal(t, 10.0, first.Open)
	assert.Equal(t, 12.0, first.High)
	assert.Equal(t, 8.0, first.Low)
	assert.Equal(t, 9.0, first.Close)
	assert.Equal(t, 30.0, first.Volume)

	assert.True(t, out[1].Time.Equal(t0.Add(5*time.Minute)))
	assert.Equal(t, 9.2, out[1].Close)
}

func TestResample_DropsInvalidTimestampsAndGaps(t *testing.T) {
	raw := []model.OHLCV{
		{Open: 1, High: 1, Low: 1, Close: 1}, // no timestamp
		bar(0, 10, 11, 9, 10),
		bar(20*time.Minute, 10, 11, 9, 10),
	}
	out := Resample(raw, 5*time.Minute)
	require.Len(t, out, 2)
	assert.True(t, out[1].Time.Equal(t0.Add(20*time.Minute)))
}

func TestResample_UnsortedInput(t *testing.T) {
	raw := []model.OHLCV{
		bar(7*time.Minute, 5, 6, 4, 5.5),
		bar(0, 10, 11, 9, 10),
		bar(6*time.Minute, 4, 5, 3, 4.5),
	}
	out := Resample(raw, 5*time.Minute)
	require.Len(t, out, 2)
	assert.Equal(t, 4.0, out[1].Open)
	assert.Equal(t, 5.5, out[1].Close)
}

func TestResample_MissingValuesStayUndefined(t *testing.T) {
	nan := math.NaN()
	raw := []model.OHLCV{
		{Time: t0, Open: nan, High: nan, Low: nan, Close: nan, Volume: nan},
		bar(1*time.Minute, 10, 11, 9, nan),
		{Time: t0.Add(5 * time.Minute), Open: nan, High: nan, Low: nan, Close: nan, Volume: nan},
	}
	out := Resample(raw, 5*time.Minute)
	require.Len(t, out, 2)

	assert.Equal(t, 10.0, out[0].Open)
	assert.Equal(t, 11.0, out[0].High)
	assert.Equal(t, 9.0, out[0].Low)
	assert.True(t, math.IsNaN(out[0].Close))

	assert.True(t, math.IsNaN(out[1].Open))
	assert.True(t, math.IsNaN(out[1].Volume))
}

func TestResample_DefaultWidth(t *testing.T) {
	raw := []model.OHLCV{bar(0, 1, 1, 1, 1), bar(4*time.Minute, 1, 1, 1, 1)}
	assert.Len(t, Resample(raw, 0), 1)
}

func TestResample_OrderAndBarInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var raw []model.OHLCV
	price := 100.0
	for i := 0; i < 400; i++ {
		o := price
		c := price + rng.NormFloat64()
		h := math.Max(o, c) + rng.Float64()
		l := math.Min(o, c) - rng.Float64()
		jitter := time.Duration(rng.Intn(90)) * time.Second
		raw = append(raw, model.OHLCV{Time: t0.Add(time.Duration(i)*time.Minute + jitter), Open: o, High: h, Low: l, Close: c})
		price = c
	}
	rng.Shuffle(len(raw), func(i, j int) { raw[i], raw[j] = raw[j], raw[i] })

	out := Resample(raw, 5*time.Minute)
	require.NotEmpty(t, out)
	for i, b := range out {
		if i > 0 {
			assert.True(t, b.Time.After(out[i-1].Time), "bucket %d not increasing", i)
		}
		assert.LessOrEqual(t, b.Low, b.Open)
		assert.LessOrEqual(t, b.Low, b.Close)
		assert.GreaterOrEqual(t, b.High, b.Open)
		assert.GreaterOrEqual(t, b.High, b.Close)
	}
}
