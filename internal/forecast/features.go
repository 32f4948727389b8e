// backend-go/internal/forecast/features.go
package forecast

import (
	"github.com/pharmatrack/backend-go/internal/domain"
	"github.com/pharmatrack/backend-go/pkg/stats"
)

// Feature windows. Lag12 captures annual seasonality, Lag1 captures
// momentum, RollingMean3 smooths noise. A deliberately small,
// interpretable set: short series overfit anything richer.
const (
	seasonalLag   = 12
	rollingWindow = 3
	// MinHistoryMonths is the shortest series the model accepts: twelve
	// months to populate the seasonal lag plus a three-month training buffer.
	MinHistoryMonths = 15
)

// BuildFeatures turns a monthly series into supervised training rows.
// Row i carries month-of-year, year, the quantities 12 and 1 months
// prior, and the mean of the 3 preceding months (current month excluded).
// Rows where any window reaches before the start of the series are
// dropped, so the first usable row is at index 12.
func BuildFeatures(series domain.MonthlySeries) []domain.FeatureRow {
	rows := make([]domain.FeatureRow, 0, len(series))

	for i, point := range series {
		if i < seasonalLag {
			continue
		}

		window := make([]float64, 0, rollingWindow)
		for j := i - rollingWindow; j < i; j++ {
			window = append(window, float64(series[j].Quantity))
		}

		rows = append(rows, domain.FeatureRow{
			Month:        int(point.MonthStart.Month()),
			Year:         point.MonthStart.Year(),
			Lag12:        float64(series[i-seasonalLag].Quantity),
			Lag1:         float64(series[i-1].Quantity),
			RollingMean3: stats.Mean(window),
			Target:       float64(point.Quantity),
		})
	}

	return rows
}
