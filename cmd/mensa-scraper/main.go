package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pribylovaa/mensa-upb-stats/internal/config"
	"github.com/pribylovaa/mensa-upb-stats/internal/menu"
	"github.com/pribylovaa/mensa-upb-stats/internal/metrics"
	"github.com/pribylovaa/mensa-upb-stats/internal/service"
	"github.com/pribylovaa/mensa-upb-stats/internal/storage/postgres"
	logctx "github.com/pribylovaa/mensa-upb-stats/pkg/log"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// Режимы запуска.
const (
	modeWeek  = "week"
	modeToday = "today"
	modeServe = "serve"
)

func main() {
	var (
		configPath string
		mode       string
		migrate    bool
	)
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.StringVar(&mode, "mode", modeWeek, "run mode: week (7-day window with dedup), today (all canteens for today), serve (periodic ingest + HTTP API)")
	flag.BoolVar(&migrate, "migrate", true, "apply embedded migrations before work; when set explicitly overrides db.skip_migrate")
	flag.Parse()

	// .env не перекрывает уже выставленные переменные окружения.
	_ = godotenv.Load()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting mensa-scraper", "env", cfg.Env, "mode", mode)

	if err := run(cfg, mode, cfg.DB.ShouldMigrate(explicitBool("migrate", migrate)), log); err != nil {
		log.Error("run_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("mensa-scraper stopped")
}

func run(cfg *config.Config, mode string, migrate bool, log *slog.Logger) error {
	switch mode {
	case modeWeek, modeToday, modeServe:
	default:
		return fmt.Errorf("unknown mode %q (want %s, %s or %s)", mode, modeWeek, modeToday, modeServe)
	}

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()
	rootCtx = logctx.Into(rootCtx, log)

	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	store, err := postgres.New(dbCtx, cfg.DB.URL)
	dbCancel()
	if err != nil {
		return fmt.Errorf("postgres_connect: %w", err)
	}
	defer store.Close()
	log.Info("postgres_connected")

	if migrate {
		applied, err := store.Migrate(rootCtx)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("migrations_applied", slog.Int("applied", applied))
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	scraper, err := menu.New(&http.Client{Timeout: cfg.Timeouts.Request}, menu.Options{
		BaseURL:       cfg.Scraper.BaseURL,
		ImageBaseURL:  cfg.Scraper.ImageBaseURL,
		UserAgent:     cfg.Scraper.UserAgent,
		MaxConcurrent: cfg.Scraper.Concurrency,
		RPS:           cfg.Scraper.RPS,
		Metrics:       m,
	})
	if err != nil {
		return err
	}

	svc := service.New(store, *cfg, service.WithMetrics(m))
	log.Info("service_initialized")

	switch mode {
	case modeToday:
		sum := svc.IngestToday(rootCtx, scraper)
		log.Info("today_done", slog.Int("scraped", sum.Scraped), slog.Int("failed", sum.Failed))
		return nil
	case modeServe:
		return serve(rootCtx, cfg, svc, store, scraper, log)
	default:
		sum, err := svc.IngestWeek(rootCtx, scraper)
		if err != nil {
			return err
		}
		log.Info("week_done", slog.Int("scraped", sum.Scraped), slog.Int("failed", sum.Failed))
		return nil
	}
}

// explicitBool возвращает значение флага name, только если он передан в командной строке.
func explicitBool(name string, value bool) *bool {
	var set bool
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	if !set {
		return nil
	}

	return &value
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
