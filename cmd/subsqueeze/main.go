package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"subsqueeze/internal/config"
	"subsqueeze/internal/gateways/cli"
	"subsqueeze/internal/repository/jsonfile"
	"subsqueeze/internal/repository/sqlite"
	"subsqueeze/internal/transfer"
	"subsqueeze/internal/usecase"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	log := setupLogger(cfg.Env, cfg.LogLevel)
	log.Debug("starting",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage),
		slog.String("data_dir", cfg.DataDir))

	repos, err := buildRepositories(cfg)
	if err != nil {
		log.Error("init storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	uc := cli.UseCases{
		Subs:      usecase.NewSubscription(repos.subs, repos.events),
		Usage:     usecase.NewUsage(repos.usage, repos.subs),
		Methods:   usecase.NewPaymentMethods(repos.methods, repos.subs),
		Settings:  usecase.NewSettings(repos.settings),
		Insights:  usecase.NewInsights(repos.subs, repos.usage, repos.events, repos.settings),
		Reminders: usecase.NewReminders(repos.subs, repos.events, repos.settings),
		Importer:  transfer.NewImporter(repos.subs, repos.events),
	}

	root := cli.New(uc, log)
	if err := root.ExecuteContext(ctx); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

type repositories struct {
	subs     usecase.SubscriptionRepository
	events   usecase.EventRepository
	usage    usecase.UsageRepository
	methods  usecase.PaymentMethodRepository
	settings usecase.SettingsRepository
}

func buildRepositories(cfg *config.Config) (*repositories, error) {
	if cfg.Storage == config.StorageSQLite {
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &repositories{
			subs:     sqlite.NewSubRepository(db),
			events:   sqlite.NewEventRepository(db),
			usage:    sqlite.NewUsageRepository(db),
			methods:  sqlite.NewPaymentMethodRepository(db),
			settings: sqlite.NewSettingsRepository(db),
		}, nil
	}

	store, err := jsonfile.NewStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return &repositories{
		subs:     jsonfile.NewSubRepository(store),
		events:   jsonfile.NewEventRepository(store),
		usage:    jsonfile.NewUsageRepository(store),
		methods:  jsonfile.NewPaymentMethodRepository(store),
		settings: jsonfile.NewSettingsRepository(store),
	}, nil
}

func setupLogger(env, level string) *slog.Logger {
	lv := parseLevel(level)
	switch strings.ToLower(env) {
	case config.EnvLocal:
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lv,
			TimeFormat: time.DateTime,
		}))
	default:
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
