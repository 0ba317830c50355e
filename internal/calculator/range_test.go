package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollingMaxMin(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2}

	hi, err := RollingMax(values, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3, 4, 4, 5, 9, 9}, hi)

	lo, err := RollingMin(values, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 1, 1, 1, 1, 2}, lo)
}

func TestRolling_SkipsMissing(t *testing.T) {
	nan := math.NaN()
	hi, err := RollingMax([]float64{nan, 2, nan, nan}, 2)
	require.NoError(t, err)

	assert.True(t, math.IsNaN(hi[0]))
	assert.Equal(t, 2.0, hi[1])
	assert.Equal(t, 2.0, hi[2])
	assert.True(t, math.IsNaN(hi[3]))
}

func TestRolling_InvalidWindow(t *testing.T) {
	_, err := RollingMin([]float64{1}, 0)
	assert.Error(t, err)
}
