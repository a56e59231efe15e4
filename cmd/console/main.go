package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/aimingmed/sctracker-console/api/controllers"
	"github.com/aimingmed/sctracker-console/api/routes"
	"github.com/aimingmed/sctracker-console/api/views"
	"github.com/aimingmed/sctracker-console/internal/apiclient"
	"github.com/aimingmed/sctracker-console/internal/workspace"
	"github.com/aimingmed/sctracker-console/pkg/config"
	"github.com/aimingmed/sctracker-console/pkg/logger"
	"github.com/aimingmed/sctracker-console/pkg/metrics"
	"github.com/aimingmed/sctracker-console/pkg/redis"
	"github.com/aimingmed/sctracker-console/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "console"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: cfg.App.ServiceName(),
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	probes := map[string]controllers.Pinger{}
	factory := storage.MemoryFactory()
	if cfg.Storage.Driver == config.StorageDriverRedis {
		redisClient, err := redis.New(runCtx, cfg.Redis, logg)
		if err != nil {
			logg.Error(runCtx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		factory = storage.RedisFactory(redisClient, cfg.Redis.StorageTTL)
		probes["redis"] = redisClient
	}

	client, err := apiclient.New(apiclient.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Metrics: metrics.NewAPIClientMetrics(reg),
		Logger:  logg,
	})
	if err != nil {
		logg.Error(runCtx, "failed to create api client", err)
		os.Exit(1)
	}

	registry, err := workspace.NewRegistry(workspace.RegistryParams{
		Client:        client,
		Storage:       factory,
		TokenKey:      cfg.Storage.TokenKey,
		Permissions:   cfg.Permissions,
		IdleTTL:       cfg.Console.WorkspaceIdleTTL,
		SweepInterval: cfg.Console.SweepInterval,
		Metrics:       metrics.NewWorkspaceMetrics(reg),
		Logger:        logg,
	})
	if err != nil {
		logg.Error(runCtx, "failed to create workspace registry", err)
		os.Exit(1)
	}
	defer registry.Close()

	renderer, err := views.New(logg)
	if err != nil {
		logg.Error(runCtx, "failed to parse templates", err)
		os.Exit(1)
	}

	handler, err := routes.NewRouter(routes.Params{
		Config:     cfg,
		Logger:     logg,
		Registry:   registry,
		Renderer:   renderer,
		Gatherer:   reg,
		ReadyProbe: probes,
	})
	if err != nil {
		logg.Error(runCtx, "failed to build router", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(runCtx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"api_base": cfg.API.BaseURL,
		"storage":  cfg.Storage.Driver,
	})
	logg.Info(ctx, "starting console server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := registry.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logg.Error(ctx, "console server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "console server stopped")
}
