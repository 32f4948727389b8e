// cmd/seed/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pharmatrack/backend-go/internal/repository/postgres"
	"github.com/urfave/cli/v2"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const insertChunkSize = 1000

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		category TEXT,
		seasonal_tag TEXT,
		requires_prescription BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS batches (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL REFERENCES products(id),
		internal_batch_code TEXT NOT NULL,
		expiry_date DATE NOT NULL,
		manufacture_date DATE NOT NULL,
		quantity_remaining INT NOT NULL DEFAULT 0,
		supplier_batch_number TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id BIGSERIAL PRIMARY KEY,
		product_id TEXT REFERENCES products(id),
		batch_id TEXT,
		quantity INT NOT NULL,
		transaction_type TEXT NOT NULL DEFAULT 'SALE',
		unit_price NUMERIC(10,2),
		total_amount NUMERIC(10,2),
		transaction_date DATE NOT NULL,
		customer_phone TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (transaction_date DESC)`,
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with a synthetic pharmacy sales history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db-url",
				Usage:    "Database connection string",
				Required: true,
				EnvVars:  []string{"DATABASE_URL"},
			},
			&cli.IntFlag{
				Name:  "years",
				Usage: "Years of transaction history to generate",
				Value: 5,
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Random seed, fixed for reproducible datasets",
				Value: 42,
			},
			&cli.BoolFlag{
				Name:  "wipe",
				Usage: "Delete existing products, batches and transactions first",
			},
		},
		Action: runSeeder,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func runSeeder(c *cli.Context) error {
	conn, err := sqlx.Connect("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	db := postgres.NewDBFromConn(conn)
	ctx := c.Context

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if c.Bool("wipe") {
		log.Println("Wiping existing data...")
		for _, table := range []string{"transactions", "batches", "products"} {
			if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to wipe %s: %w", table, err)
			}
		}
	}

	rng := rand.New(rand.NewSource(c.Int64("seed")))
	now := time.Now().UTC().Truncate(24 * time.Hour)

	productIDs, err := seedProducts(ctx, db)
	if err != nil {
		return err
	}
	log.Printf("Seeded %d products", len(productIDs))

	batchIDs, err := seedBatches(ctx, db, rng, productIDs, now)
	if err != nil {
		return err
	}
	log.Printf("Seeded %d active batches", len(batchIDs))

	total, err := seedTransactions(ctx, db, rng, productIDs, batchIDs, now, c.Int("years"))
	if err != nil {
		return err
	}
	log.Printf("Seeded %d transactions across %d years", total, c.Int("years"))

	return nil
}

func seedProducts(ctx context.Context, db *postgres.DB) (map[string]string, error) {
	ids := make(map[string]string, len(catalog))

	for _, item := range catalog {
		id := uuid.NewString()
		_, err := db.ExecContext(ctx, `
			INSERT INTO products (id, name, category, seasonal_tag, requires_prescription)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (name) DO UPDATE SET category = EXCLUDED.category
			`, id, item.Name, item.Category, item.Seasonal, item.RequiresPrescription)
		if err != nil {
			return nil, fmt.Errorf("failed to insert product %q: %w", item.Name, err)
		}

		// The insert may have hit an existing row; read the id back.
		if err := db.QueryRowContext(ctx, "SELECT id FROM products WHERE name = $1", item.Name).Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to read back product %q: %w", item.Name, err)
		}
		ids[item.Name] = id
	}

	return ids, nil
}

func seedBatches(ctx context.Context, db *postgres.DB, rng *rand.Rand, productIDs map[string]string, now time.Time) (map[string]string, error) {
	batchIDs := make(map[string]string, len(catalog))

	for _, item := range catalog {
		id := uuid.NewString()
		mfg := now.AddDate(0, 0, -30)
		expiry := now.AddDate(0, 0, item.ShelfLifeDays)
		qty := 50 + rng.Intn(151)

		_, err := db.ExecContext(ctx, `
			INSERT INTO batches (id, product_id, internal_batch_code, expiry_date, manufacture_date, quantity_remaining, supplier_batch_number)
			VALUES ($1, $2, $3, $4, $5, $6, 'SEEDED-STOCK')
			`, id, productIDs[item.Name], batchCode(item.Name, mfg), expiry, mfg, qty)
		if err != nil {
			return nil, fmt.Errorf("failed to insert batch for %q: %w", item.Name, err)
		}
		batchIDs[item.Name] = id
	}

	return batchIDs, nil
}

func seedTransactions(ctx context.Context, db *postgres.DB, rng *rand.Rand, productIDs, batchIDs map[string]string, now time.Time, years int) (int, error) {
	if years <= 0 {
		years = 5
	}
	start := now.AddDate(-years, 0, 0)

	type txnRow struct {
		productID string
		batchID   string
		quantity  int
		unitPrice float64
		date      time.Time
		phone     string
	}

	var (
		buffer []txnRow
		total  int
	)

	flush := func() error {
		if len(buffer) == 0 {
			return nil
		}

		var (
			sb   strings.Builder
			args []interface{}
		)
		sb.WriteString(`INSERT INTO transactions
			(product_id, batch_id, quantity, transaction_type, unit_price, total_amount, transaction_date, customer_phone) VALUES `)

		for i, row := range buffer {
			if i > 0 {
				sb.WriteString(",")
			}
			base := i * 7
			fmt.Fprintf(&sb, "($%d, $%d, $%d, 'SALE', $%d, $%d, $%d, $%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7)
			args = append(args,
				row.productID, row.batchID, row.quantity,
				row.unitPrice, float64(row.quantity)*row.unitPrice, row.date, row.phone)
		}

		// Each chunk commits atomically; a failed chunk rolls back rather
		// than leaving a partial day behind.
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, sb.String(), args...); err != nil {
				return fmt.Errorf("failed to insert transaction chunk: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		total += len(buffer)
		buffer = buffer[:0]
		return nil
	}

	for day := start; day.Before(now); day = day.AddDate(0, 0, 1) {
		dailyTxns := 8 + rng.Intn(5)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			dailyTxns += 5
		}

		for i := 0; i < dailyTxns; i++ {
			item := catalog[rng.Intn(len(catalog))]
			// Off-season products get a second draw half the time, which
			// skews daily volume toward whatever is in season.
			if seasonalMultiplier(rng, int(day.Month()), item.Seasonal) < 1.0 && rng.Float64() < 0.5 {
				item = catalog[rng.Intn(len(catalog))]
			}

			buffer = append(buffer, txnRow{
				productID: productIDs[item.Name],
				batchID:   batchIDs[item.Name],
				quantity:  pickQuantity(rng),
				unitPrice: item.Price,
				date:      day,
				phone:     fmt.Sprintf("98765%05d", rng.Intn(200)),
			})

			if len(buffer) >= insertChunkSize {
				if err := flush(); err != nil {
					return total, err
				}
			}
		}
	}

	if err := flush(); err != nil {
		return total, err
	}

	return total, nil
}

// batchCode builds an internal batch code from the product name and
// manufacture month, e.g. DOLO6-202608-001.
func batchCode(name string, mfg time.Time) string {
	var clean strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			clean.WriteRune(r)
		}
		if clean.Len() == 5 {
			break
		}
	}
	return fmt.Sprintf("%s-%s-001", strings.ToUpper(clean.String()), mfg.Format("200601"))
}
