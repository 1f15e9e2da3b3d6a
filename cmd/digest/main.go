package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/replenish-engine/internal/config"
	"github.com/andresuchdata/replenish-engine/internal/domain"
	"github.com/andresuchdata/replenish-engine/internal/repository/postgres"
	"github.com/andresuchdata/replenish-engine/internal/service"
	"github.com/andresuchdata/replenish-engine/internal/storage"
	"github.com/andresuchdata/replenish-engine/pkg/logger"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sqlx.Connect("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sqlx.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func newService(c *cli.Context) (*service.ReplenishmentService, error) {
	db, ok := c.Context.Value(dbKey).(*sqlx.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	repo := postgres.NewReplenishmentRepository(db)
	return service.NewReplenishmentService(repo, nil, config.Load().Engine), nil
}

func runDigest(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}

	result, err := svc.RunDigest(c.Context)
	if err != nil {
		return fmt.Errorf("digest run failed: %w", err)
	}

	var buf bytes.Buffer
	if err := service.WriteDigestCSV(&buf, result); err != nil {
		return err
	}

	date := time.Now().Format("20060102")
	outDir := c.String("output-dir")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to ensure output dir %s: %w", outDir, err)
	}

	outPath := filepath.Join(outDir, date+".csv")
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write digest %s: %w", outPath, err)
	}
	logger.Log.Info().
		Str("path", outPath).
		Int("products", len(result.Results)).
		Int("failures", len(result.Failures)).
		Msg("digest snapshot written")

	if !c.Bool("upload") {
		return nil
	}

	client, err := storage.NewMinioClient(config.Load().Storage)
	if err != nil {
		return err
	}
	key := "digests/" + date + ".csv"
	if err := client.UploadObject(c.Context, key, "text/csv", buf.Bytes()); err != nil {
		return err
	}
	logger.Log.Info().Str("key", key).Msg("digest snapshot uploaded")

	return nil
}

func printRisks(c *cli.Context) error {
	svc, err := newService(c)
	if err != nil {
		return err
	}

	filter := domain.AnalysisFilter{
		Urgency: c.String("urgency"),
		Limit:   c.Int("limit"),
	}
	risks, failures, err := svc.GetStockoutRisks(c.Context, filter)
	if err != nil {
		return fmt.Errorf("risk computation failed: %w", err)
	}

	fmt.Printf("%-16s %-10s %-8s %-14s %s\n", "SKU", "URGENCY", "STOCK", "DAYS LEFT", "MESSAGE")
	for _, r := range risks {
		daysLeft := "-"
		if r.Stockout.DaysRemaining != nil {
			daysLeft = fmt.Sprintf("%.1f", *r.Stockout.DaysRemaining)
		}
		fmt.Printf("%-16s %-10s %-8d %-14s %s\n", r.SKU, r.Stockout.Urgency, r.Stock, daysLeft, r.Stockout.Message)
	}
	if len(failures) > 0 {
		fmt.Printf("\n%d product(s) skipped:\n", len(failures))
		for _, f := range failures {
			fmt.Printf("  %s: %s\n", f.SKU, f.Reason)
		}
	}

	return nil
}

func listSnapshots(c *cli.Context) error {
	client, err := storage.NewMinioClient(config.Load().Storage)
	if err != nil {
		return err
	}

	objects, err := client.ListObjects(c.Context, "digests/")
	if err != nil {
		return err
	}

	for _, obj := range objects {
		fmt.Printf("%s\t%d bytes\t%s\n", obj.Key, obj.Size, obj.LastModified.Format(time.RFC3339))
	}
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debug().Err(err).Msg("no .env file loaded")
	}

	app := &cli.App{
		Name:  "digest",
		Usage: "Run the replenishment analytics digest",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Compute the full-catalog digest and write a CSV snapshot",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "output-dir",
						Usage:   "Directory for digest CSV snapshots",
						Value:   "./data/digests",
						EnvVars: []string{"DIGEST_OUTPUT_DIR"},
					},
					&cli.BoolFlag{
						Name:  "upload",
						Usage: "Upload the snapshot to object storage",
						Value: false,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runDigest,
			},
			{
				Name:  "risks",
				Usage: "Print the current stockout risk table",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:  "urgency",
						Usage: "Only show one urgency tier (critical, high, medium, low)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of rows to print",
						Value: 0,
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: printRisks,
			},
			{
				Name:   "snapshots",
				Usage:  "List digest snapshots in object storage",
				Action: listSnapshots,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("digest command failed")
	}
}
