package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-news-globe/internal/news/bootstrap"
	"golang-news-globe/internal/news/config"
	"golang-news-globe/internal/news/delivery/consumer"
	delivery "golang-news-globe/internal/news/delivery/http"
	_ "golang-news-globe/internal/news/docs"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/postgres"
	"golang-news-globe/pkg/redis"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the news API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting News API Service", logger.Field("name", cfg.App.Name))

	checks := make(map[string]delivery.HealthCheck)
	infra := bootstrap.Infra{Publish: true}

	if cfg.Database.Enabled {
		db, err := postgres.NewDB(cfg.Database.Postgres())
		if err != nil {
			appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
		}
		sqlDB, err := db.DB.DB()
		if err != nil {
			appLogger.Fatal("Failed to get database handle", logger.ErrorField(err))
		}
		defer sqlDB.Close()
		infra.DB = db.DB
		checks["postgres"] = sqlDB.PingContext
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(cfg.Redis.Client())
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
		infra.Redis = redisClient.Client
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	infra.Registerer = reg

	pipeline, err := bootstrap.Build(ctx, cfg, infra, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build news pipeline", logger.ErrorField(err))
	}

	// Drop local copies of scopes rewritten by the refresher or other replicas.
	if redisClient != nil {
		invalidations := consumer.NewInvalidationConsumer(redisClient.Client, pipeline.MemoryStore, appLogger)
		invalidations.Start(ctx)
		defer invalidations.Stop()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	apiV1 := e.Group("/api/v1")
	delivery.NewNewsHandler(pipeline.News, appLogger).RegisterRoutes(apiV1)
	delivery.NewAnalyzeHandler(pipeline.Analyze, appLogger).RegisterRoutes(apiV1)
	delivery.NewHealthHandler(checks).RegisterRoutes(e)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title News Globe API
// @version 1.0
// @description Aggregated, AI-analyzed news with credibility scoring.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
