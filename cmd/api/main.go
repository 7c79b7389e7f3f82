package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"staffsync/internal/bus"
	"staffsync/internal/config"
	"staffsync/internal/httpserver"
	"staffsync/internal/logger"
	"staffsync/internal/storage"
	"staffsync/internal/store"
	"staffsync/internal/webhook"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	lg := logger.New(cfg.LogLevel)
	defer lg.Sync()

	var backend storage.Backend
	switch cfg.StorageDriver {
	case config.DriverMemory:
		backend = storage.NewMemory()
	case config.DriverFile:
		fb, err := storage.NewFile(cfg.DataDir)
		if err != nil {
			lg.Fatalw("data dir init failed", "dir", cfg.DataDir, "error", err)
		}
		backend = fb
	case config.DriverPostgres:
		if cfg.DatabaseURL == "" {
			lg.Fatalw("DATABASE_URL is empty")
		}
		gb, err := storage.NewGorm(cfg.DatabaseURL)
		if err != nil {
			lg.Fatalw("db connect failed", "error", err)
		}
		backend = gb
	default:
		lg.Fatalw("unknown storage driver", "driver", cfg.StorageDriver)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	}
	b := bus.New(rdb, lg)
	defer b.Close()

	st := store.New(backend, b)
	wh := webhook.New(cfg.Webhook, lg)
	if !wh.Enabled() {
		lg.Infow("webhook forwarding disabled")
	}

	router := httpserver.NewRouter(st, wh, cfg.OrganizationID, lg)
	lg.Infow("listening", "port", cfg.HTTPPort, "storage", cfg.StorageDriver)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, router); err != nil {
		lg.Fatalw("server stopped", "error", err)
	}
}
