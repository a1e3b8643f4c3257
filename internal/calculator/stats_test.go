package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 2.5, Mean([]float64{1, 2, 3, 4}), 1e-12)
}

func TestSampleStdDev(t *testing.T) {
	assert.Equal(t, 0.0, SampleStdDev(nil))
	assert.Equal(t, 0.0, SampleStdDev([]float64{42}), "single value collapses to zero")
	assert.InDelta(t, 2.13809, SampleStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-5)
	assert.InDelta(t, 9.899495, SampleStdDev([]float64{10, -4}), 1e-6)
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{"median even", []float64{4, 1, 3, 2}, 0.5, 2.5},
		{"median odd", []float64{5, 1, 3}, 0.5, 3},
		{"p75 interpolated", []float64{1, 2, 3, 4}, 0.75, 3.25},
		{"p75 exact rank", []float64{1, 2, 3, 4, 5}, 0.75, 4},
		{"min", []float64{7, 3, 9}, 0, 3},
		{"max", []float64{7, 3, 9}, 1, 9},
		{"single", []float64{11}, 0.75, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quantile(tt.values, tt.q)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestQuantile_Errors(t *testing.T) {
	_, err := Quantile(nil, 0.5)
	assert.Error(t, err)
	_, err = Quantile([]float64{1}, 1.5)
	assert.Error(t, err)
}

func TestQuantile_DoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_, err := Median(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestFraction(t *testing.T) {
	positive := func(v float64) bool { return v > 0 }
	assert.Equal(t, 0.0, Fraction(nil, positive))
	assert.Equal(t, 0.5, Fraction([]float64{10, -4}, positive))
	assert.Equal(t, 0.0, Fraction([]float64{0, 0}, positive), "zero is not a win")
}
