// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mindstore/order-service/internal/config"
	"github.com/mindstore/order-service/internal/infrastructure/storage"
	storageredis "github.com/mindstore/order-service/internal/infrastructure/storage/redis"
	httpserver "github.com/mindstore/order-service/internal/interfaces/http"
	"github.com/mindstore/order-service/internal/interfaces/http/middleware"
	"github.com/mindstore/order-service/internal/notify"
	"github.com/mindstore/order-service/internal/pkg/telegram"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	logger := middleware.NewLogger(cfg)

	// Connect to the snapshot store. Development falls back to the
	// in-memory store when Redis is unreachable.
	var store storage.Store
	var redisClient *goredis.Client

	conn, err := storageredis.NewConnection(cfg)
	if err != nil {
		if cfg.IsProduction() {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Printf("⚠️  Redis unavailable (%v), using in-memory snapshot store", err)
		store = storage.NewMemoryStore()
	} else {
		defer conn.Close()
		redisClient = conn.GetClient()
		store = storageredis.NewStore(redisClient)
	}

	// Wire the notification relay
	registry := notify.NewRegistry(cfg.Telegram.FixedChatID)
	sender := telegram.NewClient(cfg.Telegram.APIBaseURL, cfg.Telegram.BotToken, cfg.Telegram.SendTimeout)
	notifyService := notify.NewService(registry, sender, logger, cfg.Telegram.SendTimeout)

	if cfg.UsingFixedChatID() {
		log.Printf("📌 Using fixed chat ID: %s", cfg.Telegram.FixedChatID)
	} else {
		log.Println("No fixed chat ID set. Message your bot or set TELEGRAM_CHAT_ID in .env file.")
	}

	log.Println("✅ All systems operational!")

	// Create and start HTTP server
	server := httpserver.NewServer(cfg, store, redisClient, notifyService, sender, logger)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	log.Println("✅ Server shutdown completed")
}
