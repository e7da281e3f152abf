package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/roostlabs/roost/internal/archive"
	"github.com/roostlabs/roost/internal/db"
	"github.com/roostlabs/roost/internal/importer"
	"github.com/roostlabs/roost/internal/semantic"
	"github.com/roostlabs/roost/pkg/config"
	"github.com/roostlabs/roost/pkg/logging"
	"github.com/roostlabs/roost/pkg/telemetry"
)

func main() {
	archivePath := flag.String("archive", "", "path to an export archive (.json or .zip)")
	embed := flag.Bool("embed", false, "rebuild the vector index after importing")
	model := flag.String("model", "", "embedding model override")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logging.InitLogger(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.GetLogger().Sync()

	logger := logging.GetLogger()
	logger.Info("Starting Roost Importer")

	// Initialize telemetry
	telemetryShutdown, err := telemetry.Init(&cfg.Telemetry)
	if err != nil {
		logger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer telemetryShutdown()

	path := *archivePath
	if path == "" {
		path = cfg.Import.ArchivePath
	}
	if path == "" {
		logger.Fatal("No archive given, pass -archive or set import.archive_path")
	}

	// Open and migrate the store
	database, err := db.New(&cfg.Database, cfg.Logging.Level)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()

	doc, err := archive.LoadFile(path)
	if err != nil {
		logger.Fatal("Failed to load archive",
			zap.String("path", path),
			zap.Error(err))
	}

	engine := importer.NewEngine(database, cfg.Import.BatchSize)
	counts, err := engine.Import(ctx, doc)
	if err != nil {
		logger.Fatal("Import failed", zap.Error(err))
	}

	logger.Info("Import complete",
		zap.String("path", path),
		zap.Any("inserted", counts))

	if *embed {
		svc := semantic.NewService(database, &cfg.Embedding, nil)
		embedded, err := svc.EmbedPending(ctx, *model, cfg.Embedding.BatchSize)
		if err != nil {
			logger.Fatal("Embedding rebuild failed",
				zap.Int("embedded", embedded),
				zap.Error(err))
		}
		logger.Info("Embedding rebuild complete", zap.Int("embedded", embedded))
	}
}
