package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"friendgraph/backend/internal/api"
	"friendgraph/backend/internal/friendship"
	"friendgraph/backend/internal/graph"
	"friendgraph/backend/internal/metrics"
	"friendgraph/backend/pkg/config"
	"friendgraph/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting friendship API server...", zap.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Server exited with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	log.Info("Server exited")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	// Initialize Neo4j driver
	driver, err := graph.NewDriver(graph.DriverConfig{
		URI:            cfg.Neo4jURI,
		Username:       cfg.Neo4jUser,
		Password:       cfg.Neo4jPassword,
		MaxPoolSize:    cfg.Neo4jMaxPoolSize,
		AcquireTimeout: cfg.Neo4jAcquireTimeout,
	})
	if err != nil {
		return err
	}

	repo := graph.NewRepository(driver,
		graph.WithDatabase(cfg.Neo4jDatabase),
		graph.WithTxTimeout(cfg.Neo4jTxTimeout),
	)
	defer repo.Close(context.Background())

	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}

	var limiter api.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = api.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 5*time.Minute)
	}

	router, err := api.NewRouter(api.RouterConfig{
		Service:        friendship.NewService(repo),
		Health:         repo,
		Metrics:        metrics.New(),
		Logger:         log,
		RateLimiter:    limiter,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Production:     cfg.IsProduction(),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
