// cmd/advisor/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"insurance-advisor/internal/claims"
	"insurance-advisor/internal/common/config"
	"insurance-advisor/internal/common/database"
	"insurance-advisor/internal/common/logger"
	"insurance-advisor/internal/common/observability"
	"insurance-advisor/internal/matcher"
	"insurance-advisor/internal/pricing"
	"insurance-advisor/internal/recommend"
	"insurance-advisor/internal/scorer"
	"insurance-advisor/internal/server"
	"insurance-advisor/internal/taxonomy"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting insurance advisor...",
		zap.String("environment", cfg.App.Environment),
		zap.String("address", cfg.Server.Address),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// Taxonomy never blocks startup: a bad source falls back to the
	// default catalog.
	store := taxonomy.Load(cfg.Taxonomy.Path, log)
	if store.UsedFallback() {
		zapLog.Warn("Using default product catalog")
	}

	// --- Claims source: Postgres, or Elasticsearch when enabled ---
	var source recommend.ClaimsSource

	if cfg.Database.Elasticsearch.Enabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 5, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Warn("Elasticsearch unavailable, claims history disabled", zap.Error(err))
		} else {
			source = claims.NewSearchSource(esClient.Client, cfg.Database.Elasticsearch.ClaimsIndex, cfg.Claims.QueryLimit, log)
			zapLog.Info("Elasticsearch connected successfully")
		}
	} else if cfg.Database.Postgres.Host != "" {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Warn("PostgreSQL unavailable, claims history disabled", zap.Error(err))
		} else {
			defer pg.Close()
			source = claims.NewRepository(pg.DB, cfg.Claims.QueryLimit, log)
			zapLog.Info("PostgreSQL connected successfully")
		}
	}

	// --- Summary cache: optional, failures are soft ---
	var cache *claims.SummaryCache
	if cfg.Database.Redis.Address != "" {
		redis, err := database.NewRedis(cfg.Database.Redis)
		if err == nil && redis.Ping(ctx) == nil {
			defer redis.Close()
			cache = claims.NewSummaryCache(redis.Client, time.Duration(cfg.Claims.CacheTTL)*time.Second, log)
			zapLog.Info("Redis connected successfully")
		} else {
			zapLog.Warn("Redis unavailable, claims summaries will not be cached")
		}
	}

	service := recommend.NewService(
		store,
		matcher.New(store, log),
		scorer.New(log),
		pricing.NewCalculator(cfg.Pricing.Currency),
		nil, // no marketplace collaborator wired
		source,
		cache,
		log,
	)

	srv := server.New(service, obs, log)
	httpServer := &fasthttp.Server{
		Handler:      srv.Handler,
		ReadTimeout:  time.Duration(cfg.Server.RequestTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("API server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(cfg.Server.Address); err != nil {
			zapLog.Error("API server failed", zap.Error(err))
		}
	}()

	// Ops listener: Prometheus metrics and pprof on a separate port.
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Metrics server listening", zap.String("address", cfg.Server.MetricsAddress))
		if err := http.ListenAndServe(cfg.Server.MetricsAddress, nil); err != nil {
			zapLog.Error("Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	if err := httpServer.Shutdown(); err != nil {
		zapLog.Error("Error shutting down API server", zap.Error(err))
	}

	zapLog.Info("Insurance advisor stopped gracefully")
}
