package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/angelmondragon/secondnest/api"
	"github.com/angelmondragon/secondnest/api/routes"
	"github.com/angelmondragon/secondnest/internal/catalog"
	"github.com/angelmondragon/secondnest/internal/chat"
	"github.com/angelmondragon/secondnest/internal/checkout"
	"github.com/angelmondragon/secondnest/internal/state"
	"github.com/angelmondragon/secondnest/pkg/config"
	"github.com/angelmondragon/secondnest/pkg/db"
	"github.com/angelmondragon/secondnest/pkg/instance"
	"github.com/angelmondragon/secondnest/pkg/logger"
	"github.com/angelmondragon/secondnest/pkg/metrics"
	"github.com/angelmondragon/secondnest/pkg/migrate"
	"github.com/angelmondragon/secondnest/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger) (err error) {
	deps := routes.Dependencies{Config: cfg, Logger: logg}

	var dbClient *db.Client
	if cfg.DatabaseEnabled() {
		dbClient, err = db.New(ctx, cfg.DB, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, dbClient.Close()) }()

		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			return err
		}
		deps.DB = dbClient
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()
		deps.Redis = redisClient
	}

	var repo *catalog.Repository
	if dbClient != nil {
		repo = catalog.NewRepository(dbClient.DB())
	}
	listings, err := catalog.Open(ctx, cfg.Catalog, repo)
	if err != nil {
		return err
	}
	deps.Catalog = listings

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Metrics = metrics.NewStorefront(reg)
	deps.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	store, err := state.Open(cfg.State, redisClient, dbClient)
	if err != nil {
		return err
	}
	deps.State = state.Instrument(store, logg, deps.Metrics)

	rates, err := checkout.RatesFromConfig(cfg.Checkout)
	if err != nil {
		return err
	}
	deps.Calculator = checkout.NewCalculator(rates)
	deps.Replies = chat.NewRandomPicker()

	server := api.NewServer(cfg, routes.NewRouter(deps))

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":           cfg.App.Env,
		"addr":          server.Addr,
		"instance":      instance.GetID(),
		"listings":      listings.Len(),
		"state_backend": cfg.State.Kind(),
	})
	logg.Info(logCtx, "starting api server")

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
