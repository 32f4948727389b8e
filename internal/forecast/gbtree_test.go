package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGBTRegressorFitsSmallSample(t *testing.T) {
	features := [][]float64{{1}, {2}, {3}, {4}}
	targets := []float64{3, 8, 1, 10}

	model := &GBTRegressor{}
	model.Fit(features, targets)

	// Four distinct rows fit within the depth budget, so the residuals
	// contract geometrically over the boosting rounds.
	for i, row := range features {
		assert.InDelta(t, targets[i], model.Predict(row), 0.1, "row %d", i)
	}
}

func TestGBTRegressorConstantTarget(t *testing.T) {
	features := [][]float64{{1, 10}, {2, 20}, {3, 30}}
	targets := []float64{7, 7, 7}

	model := &GBTRegressor{}
	model.Fit(features, targets)

	assert.InDelta(t, 7.0, model.Predict([]float64{2, 20}), 1e-9)
	assert.InDelta(t, 7.0, model.Predict([]float64{99, -5}), 1e-9)
}

func TestGBTRegressorDeterministic(t *testing.T) {
	features := [][]float64{
		{1, 2020, 5},
		{2, 2020, 5}, // tie on the third feature
		{3, 2021, 9},
		{4, 2021, 2},
		{5, 2022, 9},
	}
	targets := []float64{4, 6, 11, 3, 12}

	a := &GBTRegressor{}
	a.Fit(features, targets)
	b := &GBTRegressor{}
	b.Fit(features, targets)

	probe := [][]float64{{1, 2020, 5}, {3, 2023, 7}, {6, 2022, 9}}
	for _, row := range probe {
		assert.Equal(t, a.Predict(row), b.Predict(row))
	}
}

func TestGBTRegressorBoundedExtrapolation(t *testing.T) {
	features := [][]float64{{1}, {2}, {3}, {4}}
	targets := []float64{3, 8, 1, 10}

	model := &GBTRegressor{}
	model.Fit(features, targets)

	// Trees route out-of-range inputs to an existing leaf, so the output
	// stays inside the observed target range rather than extrapolating.
	out := model.Predict([]float64{100})
	require.GreaterOrEqual(t, out, 0.5)
	require.LessOrEqual(t, out, 10.5)
}
