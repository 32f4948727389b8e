// backend-go/internal/forecast/loader.go
package forecast

import (
	"context"

	"github.com/pharmatrack/backend-go/internal/domain"
	"github.com/pharmatrack/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

const defaultPageSize = 1000

// Loader pulls the full historical sales log from the transactions store
// in bounded pages. The loaded table lives for one report run; it is
// never cached across runs because stock decisions cannot tolerate stale
// history.
type Loader struct {
	repo     repository.SalesEventRepository
	pageSize int
}

func NewLoader(repo repository.SalesEventRepository, pageSize int) *Loader {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Loader{repo: repo, pageSize: pageSize}
}

// LoadEvents retrieves the complete sales history, paging until the store
// returns a short page. Store failures degrade to an empty result: the
// error is logged and downstream components report "no data" per product
// instead of crashing the run.
func (l *Loader) LoadEvents(ctx context.Context) []domain.SalesEvent {
	var events []domain.SalesEvent
	offset := 0

	for {
		page, err := l.repo.ListSalesEvents(ctx, l.pageSize, offset)
		if err != nil {
			log.Error().Err(err).Int("offset", offset).Msg("forecast: loading sales events failed")
			return nil
		}

		for _, ev := range page {
			if ev.ProductName == "" {
				ev.ProductName = "Unknown"
			}
			events = append(events, ev)
		}

		if len(page) < l.pageSize {
			break
		}
		offset += l.pageSize

		log.Debug().Int("fetched", len(events)).Msg("forecast: fetching sales history")
	}

	log.Info().Int("records", len(events)).Msg("forecast: sales history loaded")
	return events
}
