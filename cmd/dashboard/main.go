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

	"github.com/mediamirror/dashboard/internal/api"
	"github.com/mediamirror/dashboard/internal/config"
	"github.com/mediamirror/dashboard/internal/disk"
	"github.com/mediamirror/dashboard/internal/envfile"
	"github.com/mediamirror/dashboard/internal/logger"
	"github.com/mediamirror/dashboard/internal/logtail"
	"github.com/mediamirror/dashboard/internal/service"
	"github.com/mediamirror/dashboard/internal/state"
	"github.com/mediamirror/dashboard/internal/supervisor"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLog := logger.New(nil)
	logger.SetDefaultLogger(appLog)
	defer logger.Sync()

	// Shared-file stores. All state lives in files owned jointly with the
	// worker; nothing is cached between requests.
	stateStore := state.NewStore(cfg.Paths.StateFile)
	configStore := envfile.NewStore(cfg.Paths.ConfigFile)

	// Process supervisor for the worker script
	sup := supervisor.New(supervisor.Options{
		InstallDir:  cfg.Paths.InstallDir,
		LogDir:      cfg.Paths.LogDir,
		Script:      cfg.Runner.Script,
		PidFile:     cfg.Runner.PidFile,
		SettleDelay: cfg.Runner.SettleDelay,
	})

	// Probes
	prober := disk.NewProber(configStore, cfg.Disk.LocalTimeout, cfg.Disk.RemoteTimeout)
	tailer := logtail.NewTailer(cfg.Paths.LogDir, cfg.Logs.TailLines, cfg.Logs.TailTimeout)

	// Status aggregation
	statusService := service.NewStatusService(stateStore, configStore, prober, sup)

	// Setup router
	router := api.SetupRouter(
		statusService,
		stateStore,
		configStore,
		sup,
		tailer,
		cfg.Paths.InstallDir,
		cfg.Server.Mode,
		appLog,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLog.Infof("Starting dashboard server: port=%d, state_file=%s", cfg.Server.Port, cfg.Paths.StateFile)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatalf("Server forced to shutdown: %v", err)
	}

	appLog.Info("Server exited")
}
