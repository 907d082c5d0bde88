package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-news-globe/internal/news/bootstrap"
	"golang-news-globe/internal/refresher/config"
	"golang-news-globe/internal/refresher/service"
	"golang-news-globe/pkg/logger"
	"golang-news-globe/pkg/postgres"
	"golang-news-globe/pkg/redis"
	"golang-news-globe/pkg/telegram"
	"golang-news-globe/pkg/utils"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the scheduled news refresher",
	Run:   runServe,
}

var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Refreshes every configured scope once and exits",
	Run:   runOnce,
}

type app struct {
	cfg       *config.Config
	logger    *logger.Logger
	refresher service.RefresherService
	closers   []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.logger.Sync()
}

func setup(ctx context.Context) *app {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	a := &app{cfg: cfg, logger: appLogger}

	appLogger.Info("Starting News Refresher Service", logger.Field("name", cfg.App.Name))

	var infra bootstrap.Infra
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(cfg.Database.Postgres())
		if err != nil {
			appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
		}
		if sqlDB, err := db.DB.DB(); err == nil {
			a.closers = append(a.closers, func() { _ = sqlDB.Close() })
		}
		infra.DB = db.DB
	}
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg.Redis.Client())
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		infra.Redis = redisClient.Client
	}

	pipeline, err := bootstrap.Build(ctx, &cfg.Config, infra, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build news pipeline", logger.ErrorField(err))
	}

	opts := service.Options{
		Scopes:       cfg.Refresher.Scopes,
		TopHeadlines: cfg.Refresher.TopHeadlines,
		Retention:    cfg.News.RetentionPeriod,
		Publisher:    pipeline.Publisher,
	}
	if pipeline.Articles != nil {
		opts.Pruners = append(opts.Pruners, pipeline.Articles, pipeline.FetchLogs)
	}
	if cfg.Telegram.Enabled {
		notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Error("Failed to initialize Telegram notifier, digests disabled", logger.ErrorField(err))
		} else {
			opts.Notifier = notifier
		}
	}
	a.refresher = service.NewRefresherService(pipeline.News, opts, appLogger)
	return a
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := setup(ctx)
	defer a.close()

	refresh := func() {
		start := time.Now()
		outcomes := a.refresher.RefreshAll(ctx)
		a.logger.Info("Refresh run finished", logger.IntField("scopes", len(outcomes)), logger.DurationField("elapsed", time.Since(start)))
	}
	prune := func() {
		if _, err := a.refresher.Prune(ctx); err != nil {
			a.logger.Error("Prune failed", logger.ErrorField(err))
		}
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(a.cfg.Refresher.Schedule, func() { utils.RunSafe(refresh) }); err != nil {
		a.logger.Fatal("Invalid refresh schedule", logger.ErrorField(err), logger.StringField("schedule", a.cfg.Refresher.Schedule))
	}
	if _, err := c.AddFunc(a.cfg.Refresher.PruneSchedule, func() { utils.RunSafe(prune) }); err != nil {
		a.logger.Fatal("Invalid prune schedule", logger.ErrorField(err), logger.StringField("schedule", a.cfg.Refresher.PruneSchedule))
	}

	if a.cfg.Refresher.RunOnStart {
		utils.GoSafe(refresh)
	}

	c.Start()
	a.logger.Info("Refresher scheduled",
		logger.StringField("schedule", a.cfg.Refresher.Schedule),
		logger.Field("scopes", a.cfg.Refresher.Scopes),
	)

	<-ctx.Done()

	a.logger.Info("Shutting down refresher...")
	<-c.Stop().Done()
	a.logger.Info("Refresher exiting")
}

func runOnce(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := setup(ctx)
	defer a.close()

	for _, o := range a.refresher.RefreshAll(ctx) {
		switch {
		case o.Err != nil:
			fmt.Printf("%-28s failed: %v\n", o.Scope, o.Err)
		case o.Result.Skipped:
			fmt.Printf("%-28s fresh (%dh old)\n", o.Scope, o.Result.HoursSince)
		case o.Result.Changed:
			fmt.Printf("%-28s updated, %d articles\n", o.Scope, o.Result.Response.TotalArticles)
		default:
			fmt.Printf("%-28s unchanged\n", o.Scope)
		}
	}
}

func main() {
	rootCmd := &cobra.Command{Use: "refresher-service"}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-refresher.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd, onceCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing refresher-service CLI: %s\n", err)
		os.Exit(1)
	}
}
