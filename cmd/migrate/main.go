package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// migrate applies migrations/ to the database named by the DB_* variables.
// It shells out to the atlas binary, found on PATH unless -atlas is given.
func main() {
	var (
		dir      = flag.String("dir", "file://migrations", "migration directory URL")
		atlasBin = flag.String("atlas", "atlas", "path to the atlas binary")
		dryRun   = flag.Bool("dry-run", false, "print pending migrations without applying them")
		timeout  = flag.Duration("timeout", 2*time.Minute, "overall timeout")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := atlasexec.NewClient(".", *atlasBin)
	if err != nil {
		logger.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.BuildDSN(),
		DirURL: *dir,
		DryRun: *dryRun,
	})
	if err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	for _, f := range res.Applied {
		logger.Info("applied migration", "version", f.Version, "name", f.Description)
	}
	logger.Info("database is up to date",
		"current", res.Current,
		"target", res.Target,
		"applied", len(res.Applied),
		"dry_run", *dryRun,
	)
}
