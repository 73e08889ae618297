package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/alexanderramin/viva/internal/cli"
	"github.com/alexanderramin/viva/internal/db"
	"github.com/alexanderramin/viva/internal/httpapi"
	"github.com/alexanderramin/viva/internal/orchestrator"
	"github.com/alexanderramin/viva/internal/progress"
	"github.com/alexanderramin/viva/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.viva/viva.db
	dbPath := os.Getenv("VIVA_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".viva", "viva.db")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	// Plain output when piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	dataSource := repository.NewSQLiteDataSource(database)
	runRepo := repository.NewSQLiteRunRepo(database)
	scheduleRepo := repository.NewSQLiteScheduleRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	hub := progress.NewHub(log)
	orch := orchestrator.New(dataSource, runRepo, uow, hub, orchestrator.NewLogRunObserver(os.Stderr), log)

	app := &cli.App{
		Orch:     orch,
		Runs:     runRepo,
		Schedule: scheduleRepo,
		API:      httpapi.NewServer(orch, runRepo, scheduleRepo, hub, log),
		SeedDemo: func(ctx context.Context) error {
			return repository.SeedDemoData(ctx, database)
		},
	}

	return cli.NewRootCmd(app).Execute()
}
