package pipeline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name string
		xs   []float64
		p    float64
		want float64
	}{
		{"single", []float64{7}, 95, 7},
		{"interpolated p95", []float64{1, 2, 3, 4}, 95, 3.85},
		{"unsorted input", []float64{4, 1, 3, 2}, 95, 3.85},
		{"even median", []float64{1, 2, 3, 4}, 50, 2.5},
		{"odd median", []float64{5, 1, 3}, 50, 3},
		{"p0", []float64{9, 3, 6}, 0, 3},
		{"p100", []float64{9, 3, 6}, 100, 9},
		{"missing skipped", []float64{nan, 10, nan, 20}, 50, 15},
		{"twenty values", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, 95, 19.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(tt.xs, tt.p), 1e-9)
		})
	}
}

func TestPercentile_NoValues(t *testing.T) {
	assert.True(t, math.IsNaN(Percentile(nil, 95)))
	assert.True(t, math.IsNaN(Percentile([]float64{math.NaN()}, 95)))
	assert.True(t, math.IsNaN(Median(nil)))
}

func TestPercentile_DoesNotReorderInput(t *testing.T) {
	xs := []float64{3, 1, 2}
	Median(xs)
	assert.Equal(t, []float64{3, 1, 2}, xs)
}

func TestMeanAndSum(t *testing.T) {
	nan := math.NaN()

	assert.InDelta(t, 2.0, Mean([]float64{1, nan, 3}), 1e-12)
	assert.True(t, math.IsNaN(Mean([]float64{nan})))

	assert.InDelta(t, 0.06, Sum([]float64{0.01, 0.02, 0.03}), 1e-12)
	assert.Equal(t, 0.0, Sum([]float64{nan, nan}))
	assert.Equal(t, 0.0, Sum(nil))
}
