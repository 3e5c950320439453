package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/todoserver/internal/config"
	"github.com/iudanet/todoserver/internal/server"
	"github.com/iudanet/todoserver/internal/server/session"
	"github.com/iudanet/todoserver/internal/server/storage/boltdb"
	"github.com/iudanet/todoserver/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Parse flags
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", "", "Listen address (overrides TODO_ADDR)")
	dbPath := flag.String("db", "", "SQLite database path (overrides TODO_DB_PATH)")
	sessionsPath := flag.String("sessions", "", "Sessions database path (overrides TODO_SESSIONS_PATH)")
	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if err := run(*addr, *dbPath, *sessionsPath); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func run(addr, dbPath, sessionsPath string) error {
	cfg := config.Load()

	// Флаги имеют приоритет над окружением
	if addr != "" {
		cfg.Addr = addr
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if sessionsPath != "" {
		cfg.SessionsPath = sessionsPath
	}

	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Основное хранилище: users и todos в SQLite
	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open sqlite storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close sqlite storage", slog.Any("error", err))
		}
	}()

	// Сессии в BoltDB
	sessStore, err := boltdb.New(ctx, cfg.SessionsPath)
	if err != nil {
		return fmt.Errorf("failed to open sessions storage: %w", err)
	}
	defer func() {
		if err := sessStore.Close(); err != nil {
			logger.Error("failed to close sessions storage", slog.Any("error", err))
		}
	}()

	sessions := session.NewManager(logger, sessStore, cfg.SessionTTL)

	// Чистим просроченные сессии один раз на старте, фоновых таймеров нет
	purged, err := sessions.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge expired sessions: %w", err)
	}
	if purged > 0 {
		logger.Info("purged expired sessions", slog.Int("count", purged))
	}

	logger.Info("starting todoserver",
		slog.String("version", Version),
		slog.String("addr", cfg.Addr),
		slog.String("db", cfg.DatabasePath))

	srv := server.New(logger, cfg.Addr, store, sessions)

	return srv.Run(ctx)
}

// newLogger создает slog логгер с уровнем из конфига
func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func printVersion() {
	fmt.Printf("Todo Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
