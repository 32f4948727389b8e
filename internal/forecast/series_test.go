package forecast

import (
	"testing"
	"time"

	"github.com/pharmatrack/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregateMonthly(t *testing.T) {
	events := []domain.SalesEvent{
		{Date: date(2024, time.March, 5), ProductName: "Vicks VapoRub", Quantity: 2},
		{Date: date(2024, time.January, 10), ProductName: "Vicks VapoRub", Quantity: 3},
		{Date: date(2024, time.January, 28), ProductName: "Vicks VapoRub", Quantity: 4},
		{Date: date(2024, time.January, 15), ProductName: "Digene Gel (Mint)", Quantity: 9},
	}

	series := AggregateMonthly(events, "Vicks VapoRub")

	// One row per month with sales, chronological; February had no sales
	// and produces no row.
	require.Len(t, series, 2)
	assert.Equal(t, date(2024, time.January, 1), series[0].MonthStart)
	assert.Equal(t, 7, series[0].Quantity)
	assert.Equal(t, date(2024, time.March, 1), series[1].MonthStart)
	assert.Equal(t, 2, series[1].Quantity)
}

func TestAggregateMonthlyNoEvents(t *testing.T) {
	assert.Empty(t, AggregateMonthly(nil, "Volini Spray"))

	events := []domain.SalesEvent{
		{Date: date(2024, time.March, 5), ProductName: "Vicks VapoRub", Quantity: 2},
	}
	assert.Empty(t, AggregateMonthly(events, "Volini Spray"))
}

func TestTopProducts(t *testing.T) {
	events := []domain.SalesEvent{
		{Date: date(2024, time.January, 2), ProductName: "Crocin Advance", Quantity: 5},
		{Date: date(2024, time.January, 3), ProductName: "Dolo 650 (Paracetamol)", Quantity: 20},
		{Date: date(2024, time.February, 3), ProductName: "Crocin Advance", Quantity: 4},
		{Date: date(2024, time.February, 9), ProductName: "Electral Powder (ORS)", Quantity: 9},
	}

	top := TopProducts(events, 2)
	assert.Equal(t, []string{"Dolo 650 (Paracetamol)", "Electral Powder (ORS)"}, top)

	all := TopProducts(events, 10)
	assert.Equal(t, []string{"Dolo 650 (Paracetamol)", "Electral Powder (ORS)", "Crocin Advance"}, all)
}

func TestTopProductsTieOrderIsStable(t *testing.T) {
	events := []domain.SalesEvent{
		{Date: date(2024, time.January, 2), ProductName: "Volini Spray", Quantity: 5},
		{Date: date(2024, time.January, 2), ProductName: "Betadine Ointment", Quantity: 5},
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, []string{"Betadine Ointment", "Volini Spray"}, TopProducts(events, 5))
	}
}

func TestTopProductsEmptyInput(t *testing.T) {
	assert.Empty(t, TopProducts(nil, 10))
	assert.Empty(t, TopProducts([]domain.SalesEvent{}, 10))
	assert.Empty(t, TopProducts([]domain.SalesEvent{{ProductName: "x", Quantity: 1}}, 0))
}
