package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// RMSE calculates the root-mean-squared error between predictions and actuals.
func RMSE(predicted, actual []float64) float64 {
	if len(predicted) == 0 || len(predicted) != len(actual) {
		return 0
	}

	var sum float64
	for i := range predicted {
		diff := predicted[i] - actual[i]
		sum += diff * diff
	}

	return math.Sqrt(sum / float64(len(predicted)))
}

// AccuracyPercent converts a fit error into a 0-100 score relative to the
// mean of the observed values: 100 means a perfect in-sample fit, 0 means
// the error is at least as large as the mean itself.
func AccuracyPercent(rmse, mean float64) float64 {
	if mean <= 0 {
		return 0
	}

	acc := 100 * (1 - rmse/mean)
	if acc < 0 {
		return 0
	}

	return math.Round(acc*10) / 10
}
