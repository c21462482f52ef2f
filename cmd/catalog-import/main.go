package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/secondnest/internal/catalog"
	"github.com/angelmondragon/secondnest/pkg/config"
	"github.com/angelmondragon/secondnest/pkg/db"
	pkgerrors "github.com/angelmondragon/secondnest/pkg/errors"
	"github.com/angelmondragon/secondnest/pkg/logger"
	"github.com/angelmondragon/secondnest/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "catalog-import"})

	_ = godotenv.Load()

	file := flag.String("file", "", "listings JSON document (defaults to the embedded seed)")
	prune := flag.Bool("prune", false, "delete listings missing from the document")
	dryRun := flag.Bool("dry-run", false, "validate the document without touching the database")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "catalog-import",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	source := strings.TrimSpace(*file)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"source": sourceLabel(source),
		"prune":  *prune,
	})

	listings, err := load(source)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Details() != nil {
			ctx = logg.WithField(ctx, "problems", typed.Details())
		}
		requireResource(ctx, logg, "listings document", err)
	}
	ctx = logg.WithField(ctx, "listings", len(listings))

	if *dryRun {
		logg.Info(ctx, "catalog document valid")
		return
	}

	if !cfg.DatabaseEnabled() {
		requireResource(ctx, logg, "database", fmt.Errorf("set %s or %s=true", config.EnvDBDSN, config.EnvUseSQLite))
	}
	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	requireResource(ctx, logg, "migrations", migrate.MaybeRunDev(ctx, cfg, logg, dbClient))

	result, err := catalog.NewRepository(dbClient.DB()).Import(ctx, listings, *prune)
	requireResource(ctx, logg, "catalog import", err)

	ctx = logg.WithFields(ctx, map[string]any{"upserted": result.Upserted, "pruned": result.Pruned})
	logg.Info(ctx, "catalog import complete")
}

func load(path string) ([]catalog.Listing, error) {
	if path == "" {
		return catalog.DefaultListings()
	}
	return catalog.LoadFile(path)
}

func sourceLabel(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
