package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/joho/godotenv"

	"github.com/mylittlefarma/pharmacy-api/config"
	"github.com/mylittlefarma/pharmacy-api/handlers"
	"github.com/mylittlefarma/pharmacy-api/logging"
	"github.com/mylittlefarma/pharmacy-api/scheduler"
	"github.com/mylittlefarma/pharmacy-api/server"
	"github.com/mylittlefarma/pharmacy-api/store"
	"github.com/mylittlefarma/pharmacy-api/validation"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logging.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs", cfg.LogRetentionWeeks)

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logging.Error("Failed to open database", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.SeedData {
		if err := db.SeedSampleData(context.Background()); err != nil {
			logging.Error("Failed to seed sample data", "error", err)
			os.Exit(1)
		}
	}

	validator := validation.NewDataValidator()
	handler := handlers.NewHTTPHandler(db, validator)

	sched := scheduler.NewScheduler(db, cfg.LowStockThreshold, time.Duration(cfg.PendingOrderMaxH)*time.Hour)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, handler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
		os.Exit(1)
	}
}
