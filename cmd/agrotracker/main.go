package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/richardbarrera32/agrotracker/internal/api"
	"github.com/richardbarrera32/agrotracker/internal/config"
	"github.com/richardbarrera32/agrotracker/internal/recorder"
	"github.com/richardbarrera32/agrotracker/internal/scheduler"
	"github.com/richardbarrera32/agrotracker/internal/source"
)

func main() {
	_ = godotenv.Load() // load .env if present; not fatal if missing

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] AgroTracker starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher and cache
	fetcher := source.NewSheetFetcher(cfg.Source.CSVURL, cfg.SourceTimeout())
	cache := source.NewCache(fetcher)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresher := &scheduler.Refresher{Cache: cache, Source: fetcher.Name(), Recorder: rec}

	// Initial load: the table must be available before any view is served.
	table, rep, err := refresher.Refresh(ctx, "STARTUP")
	if err != nil {
		log.Fatalf("[FATAL] initial load: %v", err)
	}
	log.Printf("[INFO] loaded %d rows (%d dropped, %d prices skipped)",
		len(table), rep.RowsDropped, rep.ValuesSkipped)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, refresher)
	if err := sched.RegisterRefresh(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start API server
	srv := api.NewServer(cache, refresher, cfg.LatestPriceLookback())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe(ctx, cfg.Server.Addr)
	}()

	log.Println("[INFO] AgroTracker is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
		if err := <-serveErr; err != nil {
			log.Printf("[ERROR] server shutdown: %v", err)
		}
	case err := <-serveErr:
		log.Fatalf("[FATAL] api server: %v", err)
	}

	log.Println("[INFO] AgroTracker stopped")
}
