package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/pharmatrack/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monthlyEvents emits one sales event per month for the product, starting
// at start, with the given quantities.
func monthlyEvents(product string, start time.Time, quantities []int) []domain.SalesEvent {
	events := make([]domain.SalesEvent, len(quantities))
	for i, qty := range quantities {
		events[i] = domain.SalesEvent{
			Date:        start.AddDate(0, i, 4),
			ProductName: product,
			Quantity:    qty,
		}
	}
	return events
}

// seasonalQuantities generates months of demand on a yearly sinusoid
// around a base level of 10 units.
func seasonalQuantities(months int) []int {
	quantities := make([]int, months)
	for m := range quantities {
		quantities[m] = int(math.Round(10 + 5*math.Sin(2*math.Pi*float64(m)/12)))
	}
	return quantities
}

func TestPredictDemandNoData(t *testing.T) {
	engine := NewEngine(nil)

	_, err := engine.PredictDemand("Crocin Advance", 3)
	require.Error(t, err)
	assert.True(t, domain.IsInsufficientData(err))

	var insufficient *domain.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, domain.ReasonNoData, insufficient.Reason)
}

func TestPredictDemandShortHistory(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	quantities := make([]int, MinHistoryMonths-1)
	for i := range quantities {
		quantities[i] = 10
	}
	engine := NewEngine(monthlyEvents("Digene Gel (Mint)", start, quantities))

	_, err := engine.PredictDemand("Digene Gel (Mint)", 1)
	require.Error(t, err)

	var insufficient *domain.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, domain.ReasonShortHistory, insufficient.Reason)
	assert.Equal(t, "Digene Gel (Mint)", insufficient.ProductName)
}

func TestPredictDemandMinimumHistory(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	quantities := make([]int, MinHistoryMonths)
	for i := range quantities {
		quantities[i] = 10 + i%3
	}
	engine := NewEngine(monthlyEvents("Dolo 650 (Paracetamol)", start, quantities))

	forecast, err := engine.PredictDemand("Dolo 650 (Paracetamol)", 2)
	require.NoError(t, err)
	require.Len(t, forecast.Points, 2)

	// Forecast months continue directly after the last observed month.
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), forecast.Points[0].MonthStart)
	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), forecast.Points[1].MonthStart)

	for _, point := range forecast.Points {
		assert.GreaterOrEqual(t, point.PredictedQuantity, 0)
	}
}

func TestPredictDemandCoercesHorizon(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(monthlyEvents("Crocin Advance", start, seasonalQuantities(24)))

	forecast, err := engine.PredictDemand("Crocin Advance", 0)
	require.NoError(t, err)
	assert.Len(t, forecast.Points, 1)
}

func TestPredictDemandSeasonalSeries(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(monthlyEvents("Vicks VapoRub", start, seasonalQuantities(24)))

	forecast, err := engine.PredictDemand("Vicks VapoRub", 3)
	require.NoError(t, err)
	require.Len(t, forecast.Points, 3)

	// The seasonal lag makes last year's value an exact predictor, so the
	// in-sample fit should be strong and the forecast should track the
	// rising phase of the cycle into the new year.
	assert.Greater(t, forecast.Accuracy, 80.0)
	assert.Equal(t, 10, forecast.AvgMonthly)

	for _, point := range forecast.Points {
		assert.GreaterOrEqual(t, point.PredictedQuantity, 5)
		assert.LessOrEqual(t, point.PredictedQuantity, 18)
	}
	assert.Greater(t, forecast.Points[2].PredictedQuantity, forecast.Points[0].PredictedQuantity)
}

func TestPredictDemandDeterministic(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	events := monthlyEvents("Vicks VapoRub", start, seasonalQuantities(30))

	first, err := NewEngine(events).PredictDemand("Vicks VapoRub", 6)
	require.NoError(t, err)
	second, err := NewEngine(events).PredictDemand("Vicks VapoRub", 6)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestForecastTotalAndPointFor(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(monthlyEvents("Vicks VapoRub", start, seasonalQuantities(24)))

	forecast, err := engine.PredictDemand("Vicks VapoRub", 3)
	require.NoError(t, err)

	sum := 0
	for _, point := range forecast.Points {
		sum += point.PredictedQuantity
	}
	assert.Equal(t, sum, forecast.Total())

	second := forecast.PointFor(forecast.Points[1].MonthStart)
	assert.Equal(t, forecast.Points[1].PredictedQuantity, second)

	// Months outside the horizon report zero demand.
	assert.Zero(t, forecast.PointFor(time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPredictNextMonthAllocation(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	engine := NewEngine(monthlyEvents("Vicks VapoRub", start, seasonalQuantities(24)))

	qty, accuracy := engine.PredictNextMonthAllocation("Vicks VapoRub")
	assert.Greater(t, qty, 0)
	assert.Greater(t, accuracy, 0.0)

	// Unknown products degrade to no guidance instead of an error.
	qty, accuracy = engine.PredictNextMonthAllocation("No Such Product")
	assert.Zero(t, qty)
	assert.Zero(t, accuracy)
}

func TestEngineTopProducts(t *testing.T) {
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	events := append(
		monthlyEvents("Vicks VapoRub", start, []int{5, 5}),
		monthlyEvents("Crocin Advance", start, []int{20})...,
	)

	engine := NewEngine(events)
	assert.Equal(t, []string{"Crocin Advance", "Vicks VapoRub"}, engine.TopProducts(5))
}
