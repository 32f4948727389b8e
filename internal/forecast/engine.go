// backend-go/internal/forecast/engine.go
package forecast

import (
	"github.com/pharmatrack/backend-go/internal/domain"
	"github.com/pharmatrack/backend-go/pkg/stats"
	"github.com/rs/zerolog/log"
)

// Engine trains a fresh demand model per product and produces recursive
// multi-month forecasts. It operates on the sales table loaded for the
// current run; construct a new Engine per run rather than reusing one,
// so every report sees current history.
type Engine struct {
	events []domain.SalesEvent
}

func NewEngine(events []domain.SalesEvent) *Engine {
	return &Engine{events: events}
}

// TopProducts ranks the run's products by total quantity sold.
func (e *Engine) TopProducts(n int) []string {
	return TopProducts(e.events, n)
}

// PredictDemand aggregates the product's history into months, trains a
// boosted-tree model on lag features, and forecasts monthsAhead future
// months. It returns an InsufficientDataError when the product has no
// events or fewer than 15 aggregated months.
//
// Forecasting is recursive: each predicted month is appended to the
// running history and feeds the next month's lag features, so prediction
// errors can compound across the horizon. That feedback loop is inherent
// to the method, and the reported accuracy is an in-sample fit score,
// not held-out validation.
func (e *Engine) PredictDemand(productName string, monthsAhead int) (*domain.Forecast, error) {
	if monthsAhead < 1 {
		monthsAhead = 1
	}

	series := AggregateMonthly(e.events, productName)
	if len(series) == 0 {
		return nil, &domain.InsufficientDataError{ProductName: productName, Reason: domain.ReasonNoData}
	}
	if len(series) < MinHistoryMonths {
		return nil, &domain.InsufficientDataError{ProductName: productName, Reason: domain.ReasonShortHistory}
	}

	rows := BuildFeatures(series)

	features := make([][]float64, len(rows))
	targets := make([]float64, len(rows))
	for i, row := range rows {
		features[i] = row.Vector()
		targets[i] = row.Target
	}

	model := &GBTRegressor{}
	model.Fit(features, targets)

	// In-sample fit: predict the training rows back and score the error
	// against the mean monthly quantity.
	fitted := make([]float64, len(rows))
	for i, row := range features {
		fitted[i] = model.Predict(row)
	}
	avg := stats.Mean(targets)
	accuracy := stats.AccuracyPercent(stats.RMSE(fitted, targets), avg)

	history := make([]float64, len(series))
	for i, point := range series {
		history[i] = float64(point.Quantity)
	}

	points := make([]domain.ForecastPoint, 0, monthsAhead)
	lastMonth := series[len(series)-1].MonthStart

	for step := 0; step < monthsAhead; step++ {
		next := lastMonth.AddDate(0, 1, 0)

		lag12 := 0.0
		if len(history) > seasonalLag {
			lag12 = history[len(history)-seasonalLag]
		}
		window := history[len(history)-rollingWindow:]

		pred := model.Predict([]float64{
			float64(int(next.Month())),
			float64(next.Year()),
			lag12,
			history[len(history)-1],
			stats.Mean(window),
		})

		// Never forecast negative sales; truncate to whole units.
		if pred < 0 {
			pred = 0
		}
		qty := int(pred)

		points = append(points, domain.ForecastPoint{MonthStart: next, PredictedQuantity: qty})
		history = append(history, float64(qty))
		lastMonth = next
	}

	log.Debug().
		Str("product", productName).
		Int("history_months", len(series)).
		Int("horizon", monthsAhead).
		Float64("accuracy", accuracy).
		Msg("forecast: demand predicted")

	return &domain.Forecast{
		ProductName: productName,
		Points:      points,
		AvgMonthly:  int(avg),
		Accuracy:    accuracy,
	}, nil
}

// PredictNextMonthAllocation forecasts just the next month and returns
// the predicted quantity with the model's accuracy score. Any failure
// degrades to (0, 0); allocation callers treat that as "no guidance".
func (e *Engine) PredictNextMonthAllocation(productName string) (int, float64) {
	forecast, err := e.PredictDemand(productName, 1)
	if err != nil || len(forecast.Points) == 0 {
		return 0, 0
	}
	return forecast.Points[0].PredictedQuantity, forecast.Accuracy
}
