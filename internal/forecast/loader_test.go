package forecast

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pharmatrack/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSalesRepo struct {
	events []domain.SalesEvent
	err    error
	calls  int
}

func (f *fakeSalesRepo) ListSalesEvents(_ context.Context, limit, offset int) ([]domain.SalesEvent, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if offset >= len(f.events) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.events) {
		end = len(f.events)
	}
	return f.events[offset:end], nil
}

func makeEvents(n int) []domain.SalesEvent {
	events := make([]domain.SalesEvent, n)
	for i := range events {
		events[i] = domain.SalesEvent{
			Date:        time.Date(2024, time.January, 1+i, 0, 0, 0, 0, time.UTC),
			ProductName: "Crocin Advance",
			Quantity:    1,
		}
	}
	return events
}

func TestLoaderPagesUntilShortPage(t *testing.T) {
	repo := &fakeSalesRepo{events: makeEvents(5)}
	loader := NewLoader(repo, 2)

	events := loader.LoadEvents(context.Background())

	require.Len(t, events, 5)
	assert.Equal(t, 3, repo.calls)
}

func TestLoaderExactPageMultiple(t *testing.T) {
	repo := &fakeSalesRepo{events: makeEvents(4)}
	loader := NewLoader(repo, 2)

	events := loader.LoadEvents(context.Background())

	// Two full pages, then one empty page to learn the history ended.
	require.Len(t, events, 4)
	assert.Equal(t, 3, repo.calls)
}

func TestLoaderSubstitutesUnknownProduct(t *testing.T) {
	repo := &fakeSalesRepo{events: []domain.SalesEvent{
		{Date: time.Now(), ProductName: "", Quantity: 2},
		{Date: time.Now(), ProductName: "Volini Spray", Quantity: 1},
	}}
	loader := NewLoader(repo, 10)

	events := loader.LoadEvents(context.Background())

	require.Len(t, events, 2)
	assert.Equal(t, "Unknown", events[0].ProductName)
	assert.Equal(t, "Volini Spray", events[1].ProductName)
}

func TestLoaderStoreFailure(t *testing.T) {
	repo := &fakeSalesRepo{err: errors.New("connection refused")}
	loader := NewLoader(repo, 10)

	assert.Nil(t, loader.LoadEvents(context.Background()))
}

func TestLoaderDefaultPageSize(t *testing.T) {
	loader := NewLoader(&fakeSalesRepo{}, 0)
	assert.Equal(t, defaultPageSize, loader.pageSize)
}
