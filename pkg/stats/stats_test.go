package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
}

func TestRMSE(t *testing.T) {
	assert.Equal(t, 0.0, RMSE(nil, nil))
	assert.Equal(t, 0.0, RMSE([]float64{1, 2}, []float64{1, 2}))
	assert.InDelta(t, 5.0, RMSE([]float64{0, 0}, []float64{5, -5}), 1e-9)
}

func TestAccuracyPercent(t *testing.T) {
	assert.Equal(t, 0.0, AccuracyPercent(1, 0))
	assert.Equal(t, 100.0, AccuracyPercent(0, 10))
	assert.Equal(t, 90.0, AccuracyPercent(1, 10))
	// Error larger than the mean clamps to zero rather than going negative.
	assert.Equal(t, 0.0, AccuracyPercent(20, 10))
	assert.Equal(t, 33.3, AccuracyPercent(2, 3))
}
