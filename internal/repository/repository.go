// backend-go/internal/repository/repository.go
package repository

import (
	"context"

	"github.com/pharmatrack/backend-go/internal/domain"
)

// SalesEventRepository reads the historical sales log from the
// transactions store. ListSalesEvents returns at most limit rows starting
// at offset, newest first; a short page signals end of data.
type SalesEventRepository interface {
	ListSalesEvents(ctx context.Context, limit, offset int) ([]domain.SalesEvent, error)
}

// StockRepository reads current on-hand stock, summed across all active
// batches of a product.
type StockRepository interface {
	GetCurrentStock(ctx context.Context, productName string) (int, error)
}

// ProductRepository reads product metadata from the catalog.
type ProductRepository interface {
	GetProduct(ctx context.Context, productName string) (*domain.Product, error)
}
