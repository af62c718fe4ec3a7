package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"k-stock-insight/src/config"
	"k-stock-insight/src/logger"
)

// -----------------------------------------------------------------------------

func main() {
	// 1. Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// 2. Load config
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// 3. Setup Logger
	appLogger := logger.NewLogger(conf.MConfig, conf.Name)
	defer logger.CloseFiles()
	appLogger.Info("Mode: %s, backend: %s", conf.ModeValue(), conf.BaseURL())

	// 4. Setup Components
	apiStore, err := setupStore(conf)
	if err != nil {
		appLogger.Critical("Failed to init API client: %v", err)
	}

	db, err := setupDatabase(conf.MConfig, appLogger)
	if err != nil {
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup

	if db != nil {
		archiver := setupArchiver(conf.MConfig, db)
		apiStore.AddListener(archiver.Listen)
		wg.Add(1)
		go func() {
			defer wg.Done()
			archiver.Run(ctx)
		}()
	}

	// 5. Initial load
	if !apiStore.RefreshAll(ctx) {
		appLogger.Warning("Initial refresh failed, backend at %s may be down", conf.BaseURL())
	}

	// 6. Start Servers
	srv, grpcServer := startServers(apiStore, db, conf, appLogger)

	// 7. Periodic refresh
	if conf.Refresh.Enabled {
		scheduler := setupScheduler(conf.MConfig, apiStore)
		wg.Add(1)
		go func() {
			defer wg.Done()
			scheduler.Run(ctx)
		}()
	}

	// 8. Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received %s, shutting down...", sig)

	grpcServer.GracefulStop()
	if err := srv.Stop(); err != nil {
		appLogger.Error("Relay server shutdown: %v", err)
	}
	cancel()
	wg.Wait()
	appLogger.Info("Shutdown complete.")
}
