package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/stockmesh/backend/internal/domain/integration"
	"github.com/stockmesh/backend/internal/infrastructure/config"
	"github.com/stockmesh/backend/internal/infrastructure/logger"
	"github.com/stockmesh/backend/internal/infrastructure/persistence"
)

func main() {
	var (
		logLevel string
		timeout  time.Duration
	)
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "Overall command timeout")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	db, err := persistence.Open(ctx, &cfg.Database,
		persistence.WithGormLogger(logger.NewGormLogger(log, logger.MapGormLogLevel(logLevel))))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	log.Info("Migration CLI started",
		zap.String("command", command),
		zap.String("database", cfg.Database.DBName),
	)

	switch command {
	case "up":
		if err := db.AutoMigrate(ctx); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema is up to date")

	case "status":
		for _, st := range schemaStatus(db.DB) {
			log.Info("Table", zap.String("name", st.Table), zap.Bool("exists", st.Exists))
		}

	case "seed":
		channels := make([]integration.ChannelCode, 0, len(cfg.Channels))
		for _, ch := range cfg.Channels {
			if ch.Enabled {
				channels = append(channels, integration.ChannelCode(ch.Code))
			}
		}
		if err := db.AutoMigrate(ctx); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		res, err := seedSandbox(ctx, db.DB, channels, time.Now().UTC())
		if err != nil {
			log.Fatal("Seed failed", zap.Error(err))
		}
		log.Info("Sandbox data seeded",
			zap.Int("items", res.Items),
			zap.Int("listings", res.Listings),
			zap.Int("orders", res.Orders),
		)

	case "drop":
		if !hasConfirm(args[1:]) {
			log.Fatal("Drop cancelled. Use 'migrate drop -confirm' to confirm.")
		}
		log.Warn("Dropping all stockmesh tables")
		if err := db.DropAll(ctx); err != nil {
			log.Fatal("Drop failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func hasConfirm(args []string) bool {
	for _, arg := range args {
		if arg == "-confirm" || arg == "--confirm" {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Println(`stockmesh database tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Create or update every table
  status                Show which tables exist
  seed                  Create demo items, listings and orders on the enabled channels
  drop -confirm         Drop every stockmesh table (DANGEROUS)

Flags:
  -log-level string     Log level: debug, info, warn, error (default: info)
  -timeout duration     Overall command timeout (default: 5m)

Environment Variables:
  STOCKMESH_DATABASE_HOST, STOCKMESH_DATABASE_PORT, STOCKMESH_DATABASE_USER,
  STOCKMESH_DATABASE_PASSWORD, STOCKMESH_DATABASE_DBNAME, STOCKMESH_DATABASE_SSLMODE`)
}
