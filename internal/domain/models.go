// backend-go/internal/domain/models.go
package domain

import "time"

// SalesEvent is a single historical sale pulled from the transactions store.
// Events are immutable once loaded; ordering is irrelevant for aggregation.
type SalesEvent struct {
	Date        time.Time `json:"date" db:"transaction_date"`
	ProductName string    `json:"product_name" db:"product_name"`
	Quantity    int       `json:"quantity" db:"quantity"`
}

// MonthlyPoint is one month of aggregated sales for a product.
type MonthlyPoint struct {
	MonthStart time.Time `json:"month_start"`
	Quantity   int       `json:"quantity"`
}

// MonthlySeries is a chronological sequence of monthly sales totals, one
// row per month that had sales. Months without sales are not zero-filled;
// lag features are computed over the rows that exist.
type MonthlySeries []MonthlyPoint

// FeatureRow is one supervised training row derived from a MonthlySeries.
// Target is the same-month quantity.
type FeatureRow struct {
	Month        int
	Year         int
	Lag12        float64
	Lag1         float64
	RollingMean3 float64
	Target       float64
}

// Vector returns the feature values in model input order.
func (r FeatureRow) Vector() []float64 {
	return []float64{float64(r.Month), float64(r.Year), r.Lag12, r.Lag1, r.RollingMean3}
}

// ForecastPoint is a single predicted month. Predictions are clamped at
// zero and truncated to whole units.
type ForecastPoint struct {
	MonthStart        time.Time `json:"month_start"`
	PredictedQuantity int       `json:"predicted_quantity"`
}

// Forecast is the result of one demand prediction run for one product.
type Forecast struct {
	ProductName string          `json:"product_name"`
	Points      []ForecastPoint `json:"points"`
	AvgMonthly  int             `json:"avg_monthly_sales"`
	Accuracy    float64         `json:"accuracy_percent"`
}

// Total returns the summed predicted quantity across the horizon.
func (f *Forecast) Total() int {
	total := 0
	for _, p := range f.Points {
		total += p.PredictedQuantity
	}
	return total
}

// PointFor returns the predicted quantity for the given month, or 0 if
// the month is not part of the forecast horizon.
func (f *Forecast) PointFor(month time.Time) int {
	for _, p := range f.Points {
		if p.MonthStart.Year() == month.Year() && p.MonthStart.Month() == month.Month() {
			return p.PredictedQuantity
		}
	}
	return 0
}

// Product is the metadata the forecasting core reads from the catalog.
type Product struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Category string `json:"category" db:"category"`
}

// ReportView selects the reporting granularity for a forecast report:
// the horizon total, or a single month within the horizon.
type ReportView struct {
	Cumulative bool      `json:"cumulative"`
	Month      time.Time `json:"month,omitempty"`
}

// ReportParams configures one report generation run.
type ReportParams struct {
	TopN        int        `json:"top_n"`
	MonthsAhead int        `json:"months_ahead"`
	View        ReportView `json:"view"`
}

// ReportRow is one classified product in the demand forecast report.
type ReportRow struct {
	ProductName     string      `json:"product_name"`
	Category        string      `json:"category"`
	CurrentStock    int         `json:"current_stock"`
	PredictedDemand int         `json:"predicted_demand"`
	HorizonLabel    string      `json:"horizon"`
	Status          StockStatus `json:"status"`
	Confidence      float64     `json:"model_confidence"`
}
