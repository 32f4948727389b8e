// cmd/report/main.go
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pharmatrack/backend-go/internal/cache"
	"github.com/pharmatrack/backend-go/internal/config"
	"github.com/pharmatrack/backend-go/internal/domain"
	"github.com/pharmatrack/backend-go/internal/repository/postgres"
	"github.com/pharmatrack/backend-go/internal/service"
	"github.com/pharmatrack/backend-go/internal/storage"
	"github.com/urfave/cli/v2"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env file: %v\n", err)
	}

	app := &cli.App{
		Name:  "report",
		Usage: "Generate a demand forecast report against the inventory store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db-url",
				Usage:    "Database connection string",
				Required: true,
				EnvVars:  []string{"DATABASE_URL"},
			},
			&cli.IntFlag{
				Name:  "months",
				Usage: "Forecast horizon in months",
				Value: 1,
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "Number of top-selling products to forecast",
				Value: 50,
			},
			&cli.StringFlag{
				Name:  "view",
				Usage: "Report view: 'cumulative' or a month as YYYY-MM",
				Value: "cumulative",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Write the report as CSV to this path",
			},
			&cli.BoolFlag{
				Name:  "upload",
				Usage: "Upload a CSV snapshot to the configured object storage",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "List previously uploaded report snapshots and exit",
			},
		},
		Action: runReport,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runReport(c *cli.Context) error {
	db, err := sqlx.Connect("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	cfg := config.Load()
	store := postgres.NewDBFromConn(db)

	objectStorage := storage.ObjectStorage(storage.NoopStorage{})
	if c.Bool("upload") || c.Bool("list") {
		objectStorage, err = storage.NewMinioClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize object storage: %w", err)
		}
	}

	svc := service.NewForecastService(
		postgres.NewSalesRepository(store),
		postgres.NewStockRepository(store),
		postgres.NewProductRepository(store),
		cache.NewNoopReportCache(),
		objectStorage,
		cfg.Forecast.PageSize,
		cfg.Forecast.Workers,
	)

	if c.Bool("list") {
		return printExports(c, svc)
	}

	params := domain.ReportParams{
		TopN:        c.Int("top"),
		MonthsAhead: c.Int("months"),
	}

	view := strings.TrimSpace(c.String("view"))
	if strings.EqualFold(view, "cumulative") {
		params.View = domain.ReportView{Cumulative: true}
	} else {
		month, err := time.Parse("2006-01", view)
		if err != nil {
			return fmt.Errorf("invalid view %q: expected 'cumulative' or YYYY-MM", view)
		}
		params.View = domain.ReportView{Month: month}
	}

	rows, err := svc.BuildReport(c.Context, params)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	printReport(rows)

	if out := c.String("out"); out != "" {
		if err := os.WriteFile(out, service.RenderReportCSV(rows), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Printf("Report written to %s\n", out)
	}

	if c.Bool("upload") {
		key, err := svc.ExportReport(c.Context, rows)
		if err != nil {
			return err
		}
		fmt.Printf("Report uploaded as %s\n", key)
	}

	return nil
}

func printExports(c *cli.Context, svc *service.ForecastService) error {
	exports, err := svc.ListExports(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list report snapshots: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tSIZE")
	for _, obj := range exports {
		fmt.Fprintf(w, "%s\t%d\n", obj.Key, obj.Size)
	}
	w.Flush()
	fmt.Printf("%d snapshots\n", len(exports))
	return nil
}

func printReport(rows []domain.ReportRow) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MEDICINE\tCATEGORY\tSTOCK\tPREDICTED\tHORIZON\tSTATUS\tCONFIDENCE")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%.1f%%\n",
			row.ProductName, row.Category, row.CurrentStock, row.PredictedDemand,
			row.HorizonLabel, row.Status, row.Confidence)
	}
	w.Flush()
	fmt.Printf("%d products forecast\n", len(rows))
}
