package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"physioblog/internal/app"
	"physioblog/internal/config"
	"physioblog/internal/server"
	"physioblog/internal/util"
	"physioblog/pkg/ai"
	"physioblog/pkg/storage"
	"physioblog/pkg/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	db, err := store.NewGormStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to init database: %v", err)
	}

	var blobs storage.BlobStore
	switch cfg.StorageBackend {
	case "minio":
		blobs, err = storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	default:
		blobs, err = storage.NewFileStore(cfg.UploadDir)
	}
	if err != nil {
		log.Fatalf("failed to init blob storage: %v", err)
	}

	var gateway *ai.Client
	if cfg.LLMAPIKey != "" {
		gateway, err = ai.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey)
		if err != nil {
			log.Fatalf("failed to init completion client: %v", err)
		}
	} else {
		slog.Warn("no LLM API key configured, chat endpoints will be unavailable")
	}

	appCore, err := app.New(app.Config{
		Store:          db,
		Blobs:          blobs,
		Registry:       ai.NewRegistry(),
		Gateway:        gateway,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	httpServer, err := server.New(server.Config{
		App:                    appCore,
		RedisAddr:              cfg.RedisAddr,
		RedisPassword:          cfg.RedisPassword,
		ChatRateLimitPerMinute: cfg.ChatRateLimitPerMinute,
		TrustedProxies:         cfg.TrustedProxies,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("physioblog server listening", "addr", addr, "storage", cfg.StorageBackend, "llm_configured", gateway != nil)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
