package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/example/boardsync/internal/cli"
	"github.com/example/boardsync/internal/db"
	"github.com/example/boardsync/internal/engine"
	"github.com/example/boardsync/internal/repository"
	"github.com/example/boardsync/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.boardsync/boardsync.db
	dbPath := os.Getenv("BOARDSYNC_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".boardsync", "boardsync.db")
	}

	logLevel := slog.LevelWarn
	if os.Getenv("BOARDSYNC_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire the backing store, live repositories and sync engine
	store := repository.NewSQLiteStore(database)
	items := repository.NewMemoryItemRepo()
	groups := repository.NewMemoryGroupRepo()
	eng := engine.New(engine.Config{
		Items:  items,
		Groups: groups,
		Store:  store,
		Logger: logger,
	})

	ctx := context.Background()
	if err := eng.Bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrapping session: %w", err)
	}

	// Detached persistence failures surface here rather than crashing.
	go func() {
		for err := range eng.Errors() {
			logger.Error("background task failed", "error", err)
		}
	}()

	app := &cli.App{
		Board:   service.NewBoardService(eng, items, groups, store),
		Engine:  eng,
		Store:   store,
		Logger:  logger,
		NoColor: !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	err = cli.NewRootCmd(app).Execute()

	// Let in-flight writes land before the process exits.
	eng.Flush()
	return err
}
