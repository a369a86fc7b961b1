package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"numcmp/adapters/postgres"
	"numcmp/internal"
	"numcmp/internal/config"
	"numcmp/internal/testkit"
	"numcmp/ports"
	"numcmp/ui"
)

// Report browser entrypoint: read-only HTML views over the run ledger.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.DefaultLogger

	var ledger ports.RunLedgerPort
	if cfg.Database.Enabled {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := postgres.Migrate(context.Background(), db); err != nil {
			log.Fatalf("Failed to migrate ledger schema: %v", err)
		}
		ledger = postgres.NewRunRepository(db)
	} else {
		ledger = testkit.NewInMemoryRunLedger()
		logger.Warn("DATABASE_URL not set, the browser will show an empty ledger")
	}

	app := ui.NewApp(ledger, logger)
	if err := app.Run(":" + cfg.Server.UIPort); err != nil {
		logger.Error("report browser stopped: %v", err)
		os.Exit(1)
	}
}
