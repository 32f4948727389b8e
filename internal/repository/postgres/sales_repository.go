// backend-go/internal/repository/postgres/sales_repository.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pharmatrack/backend-go/internal/domain"
	"github.com/pharmatrack/backend-go/internal/repository"
)

type salesRepository struct {
	db *DB
}

// NewSalesRepository returns repository implementations backed by the
// transactions, batches and products tables. All reads go through the
// DB wrapper so its query slots bound the report fan-out.
func NewSalesRepository(db *DB) repository.SalesEventRepository {
	return &salesRepository{db: db}
}

// ListSalesEvents returns one page of the sales log, newest first.
// Transactions with a missing product linkage are kept with the sentinel
// name 'Unknown' rather than dropped.
func (r *salesRepository) ListSalesEvents(ctx context.Context, limit, offset int) ([]domain.SalesEvent, error) {
	query := `
        SELECT
            t.transaction_date,
            t.quantity,
            COALESCE(p.name, 'Unknown') AS product_name
        FROM transactions t
        LEFT JOIN products p ON p.id = t.product_id
        WHERE t.transaction_type = 'SALE'
        ORDER BY t.transaction_date DESC, t.id DESC
        LIMIT $1 OFFSET $2
    `

	var events []domain.SalesEvent
	if err := r.db.SelectContext(ctx, &events, query, limit, offset); err != nil {
		return nil, fmt.Errorf("error listing sales events: %w", err)
	}

	return events, nil
}

type stockRepository struct {
	db *DB
}

func NewStockRepository(db *DB) repository.StockRepository {
	return &stockRepository{db: db}
}

// GetCurrentStock sums quantity_remaining across all batches of the
// product. Products without batches report zero stock.
func (r *stockRepository) GetCurrentStock(ctx context.Context, productName string) (int, error) {
	query := `
        SELECT COALESCE(SUM(b.quantity_remaining), 0)
        FROM batches b
        JOIN products p ON p.id = b.product_id
        WHERE p.name = $1
    `

	var stock int
	if err := r.db.GetContext(ctx, &stock, query, productName); err != nil {
		return 0, fmt.Errorf("error getting current stock for %q: %w", productName, err)
	}

	return stock, nil
}

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetProduct(ctx context.Context, productName string) (*domain.Product, error) {
	query := `
        SELECT id, name, COALESCE(category, 'Unknown') AS category
        FROM products
        WHERE name = $1
    `

	var product domain.Product
	if err := r.db.GetContext(ctx, &product, query, productName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting product %q: %w", productName, err)
	}

	return &product, nil
}
