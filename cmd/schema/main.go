// Command schema inspects and runs the collection migration from the
// legacy generation to the versioned one. It is an operator tool, kept
// separate from the API server so migrations never run on startup.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cphunt/backend/internal/config"
	"github.com/cphunt/backend/internal/db"
	"github.com/cphunt/backend/internal/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(filepath.Join("configs", "config.yaml"))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	mongoDB, err := db.NewMongo(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}
	defer func() { _ = mongoDB.Close(context.Background()) }()

	schema := db.NewSchema(cfg.Schema.Version, cfg.Schema.LegacyFallback)
	migrator := db.NewMigrator(mongoDB.DB, schema)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	switch os.Args[1] {
	case "status":
		reports, meta, err := migrator.Status(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to read schema status")
			os.Exit(1)
		}
		printReports(reports)
		if meta != nil {
			fmt.Printf("\nlast migration: version=%s namespace=%s at=%s\n",
				meta.ActiveVersion, meta.ActiveNamespace, meta.MigratedAt.Format(time.RFC3339))
		} else {
			fmt.Println("\nno migration recorded yet")
		}
	case "migrate":
		meta, err := migrator.Run(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("Migration failed")
			os.Exit(1)
		}
		printReports(meta.Collections)
		fmt.Printf("\nmigration complete: version=%s namespace=%s\n", meta.ActiveVersion, meta.ActiveNamespace)
	default:
		usage()
		os.Exit(2)
	}
}

func printReports(reports []db.CollectionReport) {
	fmt.Printf("%-22s %-28s %-34s %10s %10s %8s\n", "KEY", "LEGACY", "VERSIONED", "LEGACY#", "VERSION#", "COPIED")
	for _, r := range reports {
		fmt.Printf("%-22s %-28s %-34s %10d %10d %8d\n",
			r.Key, r.Legacy, r.Versioned, r.LegacyCount, r.VersionedCount, r.Copied)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s <status|migrate>\n", filepath.Base(os.Args[0]))
}
