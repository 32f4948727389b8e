// backend-go/internal/forecast/series.go
package forecast

import (
	"sort"
	"time"

	"github.com/pharmatrack/backend-go/internal/domain"
)

// monthStart truncates a date to the first day of its calendar month.
func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AggregateMonthly buckets a product's sales events into calendar months
// and sums the quantities. The result is chronological with one row per
// month that had sales; months without sales produce no row.
func AggregateMonthly(events []domain.SalesEvent, productName string) domain.MonthlySeries {
	totals := make(map[time.Time]int)
	for _, ev := range events {
		if ev.ProductName != productName {
			continue
		}
		totals[monthStart(ev.Date)] += ev.Quantity
	}

	series := make(domain.MonthlySeries, 0, len(totals))
	for month, qty := range totals {
		series = append(series, domain.MonthlyPoint{MonthStart: month, Quantity: qty})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].MonthStart.Before(series[j].MonthStart)
	})

	return series
}

// TopProducts ranks products by total historical quantity sold, descending,
// and returns at most n names. Ties keep a stable alphabetical order so
// repeated runs rank identically. Empty input yields an empty slice.
func TopProducts(events []domain.SalesEvent, n int) []string {
	if len(events) == 0 || n <= 0 {
		return []string{}
	}

	totals := make(map[string]int)
	for _, ev := range events {
		totals[ev.ProductName] += ev.Quantity
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > n {
		names = names[:n]
	}

	return names
}
