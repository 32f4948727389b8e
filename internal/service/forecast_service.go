// backend-go/internal/service/forecast_service.go
package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/pharmatrack/backend-go/internal/cache"
	"github.com/pharmatrack/backend-go/internal/domain"
	"github.com/pharmatrack/backend-go/internal/forecast"
	"github.com/pharmatrack/backend-go/internal/repository"
	"github.com/pharmatrack/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkers = 4
	exportPrefix   = "forecast_reports/"
)

// ForecastService orchestrates ranking, per-product model training and
// stock classification into demand forecast reports. Repositories are
// injected; the service holds no ambient store handle and no state
// between runs.
type ForecastService struct {
	sales    repository.SalesEventRepository
	stock    repository.StockRepository
	products repository.ProductRepository
	cache    cache.ReportCache
	storage  storage.ObjectStorage
	pageSize int
	workers  int
}

func NewForecastService(
	sales repository.SalesEventRepository,
	stock repository.StockRepository,
	products repository.ProductRepository,
	cacheImpl cache.ReportCache,
	store storage.ObjectStorage,
	pageSize, workers int,
) *ForecastService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	if store == nil {
		store = storage.NoopStorage{}
	}
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &ForecastService{
		sales:    sales,
		stock:    stock,
		products: products,
		cache:    cacheImpl,
		storage:  store,
		pageSize: pageSize,
		workers:  workers,
	}
}

// newEngine loads the full sales history fresh from the store and wraps
// it in a prediction engine for one run.
func (s *ForecastService) newEngine(ctx context.Context) *forecast.Engine {
	loader := forecast.NewLoader(s.sales, s.pageSize)
	return forecast.NewEngine(loader.LoadEvents(ctx))
}

// TopProducts returns the n best-selling products by total history.
func (s *ForecastService) TopProducts(ctx context.Context, n int) []string {
	return s.newEngine(ctx).TopProducts(n)
}

// Forecast predicts demand for one product over the given horizon.
func (s *ForecastService) Forecast(ctx context.Context, productName string, monthsAhead int) (*domain.Forecast, error) {
	return s.newEngine(ctx).PredictDemand(productName, monthsAhead)
}

// BuildReport generates one classified report row per forecastable
// product in the top-N ranked set. Products whose history fails the
// model's preconditions are skipped, not reported as zero demand, and no
// single product's failure aborts the batch.
func (s *ForecastService) BuildReport(ctx context.Context, params domain.ReportParams) ([]domain.ReportRow, error) {
	if rows, ok, err := s.cache.GetReport(ctx, params); err == nil && ok {
		return rows, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("forecast report: cache get failed")
	}

	engine := s.newEngine(ctx)
	ranked := engine.TopProducts(params.TopN)

	// One slot per ranked product keeps report order stable regardless
	// of which worker finishes first.
	slots := make([]*domain.ReportRow, len(ranked))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, name := range ranked {
		g.Go(func() error {
			row := s.buildRow(gctx, engine, name, params)
			if row != nil {
				mu.Lock()
				slots[i] = row
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([]domain.ReportRow, 0, len(ranked))
	for _, row := range slots {
		if row != nil {
			rows = append(rows, *row)
		}
	}

	if err := s.cache.SetReport(ctx, params, rows); err != nil {
		log.Warn().Err(err).Msg("forecast report: cache set failed")
	}

	return rows, nil
}

// buildRow forecasts one product and cross-references its stock. Any
// failure is logged and yields nil so the product is simply left out of
// the report.
func (s *ForecastService) buildRow(ctx context.Context, engine *forecast.Engine, productName string, params domain.ReportParams) *domain.ReportRow {
	fc, err := engine.PredictDemand(productName, params.MonthsAhead)
	if err != nil {
		if domain.IsInsufficientData(err) {
			log.Debug().Str("product", productName).Str("reason", err.Error()).Msg("forecast report: product skipped")
		} else {
			log.Warn().Err(err).Str("product", productName).Msg("forecast report: prediction failed")
		}
		return nil
	}

	var predicted int
	var horizonLabel string
	if params.View.Cumulative {
		predicted = fc.Total()
		horizonLabel = fmt.Sprintf("%d Months (Total)", params.MonthsAhead)
	} else {
		predicted = fc.PointFor(params.View.Month)
		horizonLabel = params.View.Month.Format("January 2006") + " Only"
	}

	currentStock, err := s.stock.GetCurrentStock(ctx, productName)
	if err != nil {
		log.Warn().Err(err).Str("product", productName).Msg("forecast report: stock lookup failed")
		return nil
	}

	category := "Unknown"
	if product, err := s.products.GetProduct(ctx, productName); err != nil {
		log.Warn().Err(err).Str("product", productName).Msg("forecast report: product lookup failed")
	} else if product != nil {
		category = product.Category
	}

	return &domain.ReportRow{
		ProductName:     productName,
		Category:        category,
		CurrentStock:    currentStock,
		PredictedDemand: predicted,
		HorizonLabel:    horizonLabel,
		Status:          domain.ClassifyStock(currentStock, predicted),
		Confidence:      fc.Accuracy,
	}
}

// RenderReportCSV renders report rows in the column order the dashboard
// shows them.
func RenderReportCSV(rows []domain.ReportRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Medicine", "Category", "Current Stock", "Predicted Demand", "Horizon", "Status", "Model Confidence"})
	for _, row := range rows {
		w.Write([]string{
			row.ProductName,
			row.Category,
			strconv.Itoa(row.CurrentStock),
			strconv.Itoa(row.PredictedDemand),
			row.HorizonLabel,
			string(row.Status),
			fmt.Sprintf("%.1f%%", row.Confidence),
		})
	}
	w.Flush()

	return buf.Bytes()
}

// ExportReport uploads a CSV snapshot of the report to object storage
// and returns the object key.
func (s *ForecastService) ExportReport(ctx context.Context, rows []domain.ReportRow) (string, error) {
	key := fmt.Sprintf("%s%s.csv", exportPrefix, time.Now().UTC().Format("20060102_150405"))
	if err := s.storage.UploadObject(ctx, key, RenderReportCSV(rows), "text/csv"); err != nil {
		return "", fmt.Errorf("export report: %w", err)
	}
	return key, nil
}

// ListExports returns the report snapshots previously uploaded to object
// storage.
func (s *ForecastService) ListExports(ctx context.Context) ([]storage.ObjectInfo, error) {
	exports, err := s.storage.ListObjects(ctx, exportPrefix)
	if err != nil {
		return nil, fmt.Errorf("list report exports: %w", err)
	}
	return exports, nil
}

// InvalidateReportCache drops every cached report so the next request is
// rebuilt against current history.
func (s *ForecastService) InvalidateReportCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}
