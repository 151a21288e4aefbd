package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"tinysort/src/features/classes"
	"tinysort/src/features/config"
	"tinysort/src/features/hosting"
	"tinysort/src/features/jobs"
	"tinysort/src/features/logging"
	"tinysort/src/features/projects"
	"tinysort/src/features/scanning"
	"tinysort/src/features/sorting"
	"tinysort/src/infra/files"
	"tinysort/src/infra/imaging"
	"tinysort/src/infra/watcher"
)

func main() {
	// Load configuration
	cfgManager, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := cfgManager.Get()

	// Setup default logger with slog
	logger := logging.SetupLogger(cfgManager)
	slog.SetDefault(logger)

	// Bitmap cache and loaders
	cache, err := imaging.NewCache(cfg.Cache.Size)
	if err != nil {
		log.Fatalf("failed to create bitmap cache: %v", err)
	}
	loader := imaging.NewLoader(cache)

	pool := jobs.NewPool(cfg.Sorter.Workers)
	defer pool.Shutdown()
	asyncLoader := imaging.NewAsyncLoader(loader, pool)

	scanner := scanning.NewScanner()
	mover := files.NewMover()

	// Create the job service
	jobService := jobs.NewService()

	// Directory watcher for open class directories
	var dirWatcher *watcher.DirectoryWatcher
	if cfg.Watcher.Enabled {
		dirWatcher, err = watcher.NewDirectoryWatcher(time.Duration(cfg.Watcher.DebounceSeconds) * time.Second)
		if err != nil {
			log.Fatalf("failed to create directory watcher: %v", err)
		}
		dirWatcher.Start(context.Background())
		defer dirWatcher.Stop()
	}

	// Create the sorting service
	opts := sorting.Options{
		ChunkSize:   cfg.Sorter.ChunkSize,
		HistorySize: cfg.Sorter.HistorySize,
		ScanDepth:   cfg.Scan.MaxDepth,
	}
	var watchSlice sorting.DirectoryWatcher
	if dirWatcher != nil {
		watchSlice = dirWatcher
	}
	sortingService := sorting.NewService(scanner, asyncLoader, mover, jobService, watchSlice, opts)
	jobService.RegisterHandler(sorting.JobTypeReenumerate, sorting.NewReenumerateTask(sortingService))

	if dirWatcher != nil {
		go func() {
			for ev := range dirWatcher.Events() {
				sortingService.HandleDirectoryEvent(ev.Path)
			}
		}()
	}

	classService := classes.NewService(scanner)
	projectStore := projects.NewStore(cfg.Projects.File)

	// Create and start the HTTP server
	server := hosting.NewServer(cfgManager, sortingService, classService, projectStore, jobService, loader)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfg.Server.Port)

	// Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	slog.Info("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		log.Fatalf("failed to shutdown server: %v", err)
	}
	slog.Info("Server gracefully shut down.")
}
