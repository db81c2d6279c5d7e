package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eviction-cache/internal/config"
	"eviction-cache/internal/console"
	"eviction-cache/internal/core/service"
	"eviction-cache/internal/observability"
	"eviction-cache/internal/store"
	"eviction-cache/internal/store/policy"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var (
		maxSize     = flag.Int("max_size", cfg.MaxSize, "Maximum number of cached entries")
		policyName  = flag.String("policy", cfg.Policy, "Initial eviction policy (LRU or LFU)")
		logFormat   = flag.String("log_format", cfg.LogFormat, "Log format (text or json)")
		logLevel    = flag.String("log_level", cfg.LogLevel, "Log level (debug, info, warn, error)")
		metricsAddr = flag.String("metrics_addr", cfg.MetricsAddr, "Address to serve /metrics on, empty to disable")
	)
	flag.Parse()

	cfg.MaxSize, cfg.Policy = *maxSize, *policyName
	cfg.LogFormat, cfg.LogLevel, cfg.MetricsAddr = *logFormat, *logLevel, *metricsAddr
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}

	kind, err := policy.ParseKind(cfg.Policy)
	if err != nil {
		log.Fatalf("Invalid policy: %v", err)
	}
	printer := console.NewPrinter(os.Stdout)
	kvStore, err := store.New[string, string](
		store.Config{MaxSize: cfg.MaxSize, Policy: kind},
		printer,
		observability.NewLogObserver[string, string](logger),
		observability.NewMetricsObserver[string, string](),
	)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}

	svc := service.New(kvStore, service.WithLogger(logger))
	interp := console.NewInterpreter(svc, printer, os.Stdout, logger)
	interp.Prompt = "> "

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Leaving the console ends the process, metrics server included.
		defer stop()
		return interp.Run(gctx, os.Stdin)
	})

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

		g.Go(func() error {
			logger.Info("metrics listening", slog.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	logger.Info("cache ready",
		slog.Int("max_size", cfg.MaxSize),
		observability.Policy(kind.String()),
	)
	if err := g.Wait(); err != nil {
		logger.Error("cachectl stopped", observability.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := observability.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := []observability.LoggerOption{
		observability.WithLevel(level),
		observability.WithAttr(observability.RunID(uuid.NewString())),
	}
	if cfg.LogFormat == "json" {
		opts = append(opts, observability.WithJSONFormatter())
	}
	return observability.NewLogger(opts...), nil
}
