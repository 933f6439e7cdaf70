package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/miky2184/chargeability-manager-api/internal/auth"
	"github.com/miky2184/chargeability-manager-api/internal/config"
	"github.com/miky2184/chargeability-manager-api/internal/db"
	"github.com/miky2184/chargeability-manager-api/internal/httpserver"
	"github.com/miky2184/chargeability-manager-api/internal/repo"
	"github.com/miky2184/chargeability-manager-api/internal/scheduler"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg.LogFormat)

	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		log.Fatal("SECRETKEY must be set in prod")
	}

	if err := db.Migrate(cfg.DatabaseURL()); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	dsn := db.DSN(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)

	// Pooled handle for the user store; the executor dials per call.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	userDB, err := db.Connect(ctx, dsn)
	cancel()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer userDB.Close()

	users := repo.NewUserRepo(userDB)
	exec := db.NewExecutor(db.Dialer(dsn))
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpireMinutes)*time.Minute)

	cr, err := scheduler.Start(exec, cfg.ViewRefreshCron)
	if err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	if cr != nil {
		defer cr.Stop()
	}

	router := httpserver.New(cfg, exec, users, tokens)

	slog.Info("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
