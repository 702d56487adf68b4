// internal/interfaces/http/handlers/handlers_test.go
package handlers

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindstore/order-service/internal/config"
	"github.com/mindstore/order-service/internal/infrastructure/storage"
	"github.com/mindstore/order-service/internal/notify"
	"github.com/sirupsen/logrus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "MindStore Order Service",
			Version:     "test",
			Environment: "development",
		},
		Telegram: config.TelegramConfig{
			BotToken:       "test-bot-token",
			APIBaseURL:     "https://api.telegram.org",
			SendTimeout:    time.Second,
			SupportContact: "0703 15 33 55",
		},
		JWT: config.JWTConfig{
			Secret:            "test-secret-that-is-long-enough-for-hs256",
			AccessTokenExpiry: time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost: 4,
		},
	}
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// sentMessage records one delivery attempt made through the fake sender
type sentMessage struct {
	ChatID string
	Text   string
}

// fakeSender is a thread-safe in-memory telegram.Sender
type fakeSender struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[string]bool
}

func (f *fakeSender) SendMessage(ctx context.Context, chatID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFor[chatID] {
		return fmt.Errorf("chat %s unreachable", chatID)
	}
	f.sent = append(f.sent, sentMessage{ChatID: chatID, Text: text})
	return nil
}

func (f *fakeSender) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]sentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

// testEnv bundles the wiring every handler test needs
type testEnv struct {
	router   *gin.Engine
	store    storage.Store
	config   *config.Config
	registry *notify.Registry
	sender   *fakeSender
	notify   *notify.Service
}

// newTestEnv wires the handlers onto a fresh router backed by the
// in-memory store and the fake sender
func newTestEnv(fixedChatID string) *testEnv {
	cfg := testConfig()
	cfg.Telegram.FixedChatID = fixedChatID
	logger := testLogger()

	store := storage.NewMemoryStore()
	registry := notify.NewRegistry(fixedChatID)
	sender := &fakeSender{failFor: map[string]bool{}}
	notifyService := notify.NewService(registry, sender, logger, cfg.Telegram.SendTimeout)

	router := gin.New()

	cartHandler := NewCartHandler(store, notifyService, cfg, logger)
	favoritesHandler := NewFavoritesHandler(store, cfg, logger)
	notificationHandler := NewNotificationHandler(notifyService, cfg)
	webhookHandler := NewWebhookHandler(store, notifyService, sender, cfg, logger)

	api := router.Group("/api/v1")
	{
		api.GET("/cart", cartHandler.GetCart)
		api.POST("/cart/items", cartHandler.AddToCart)
		api.PUT("/cart/items/:id", cartHandler.UpdateCartItem)
		api.DELETE("/cart/items/:id", cartHandler.RemoveFromCart)
		api.DELETE("/cart", cartHandler.ClearCart)
		api.POST("/cart/checkout", cartHandler.Checkout)

		api.GET("/favorites", favoritesHandler.GetFavorites)
		api.POST("/favorites", favoritesHandler.AddFavorite)
		api.GET("/favorites/:id", favoritesHandler.IsFavorite)
		api.DELETE("/favorites/:id", favoritesHandler.RemoveFavorite)
	}

	router.POST("/send-order-notification", notificationHandler.SendOrderNotification)
	router.POST("/send-reservation-notification", notificationHandler.SendReservationNotification)
	router.POST("/webhook/:botToken", webhookHandler.HandleUpdate)
	router.GET("/subscribed-chats", webhookHandler.GetSubscribedChats)

	return &testEnv{
		router:   router,
		store:    store,
		config:   cfg,
		registry: registry,
		sender:   sender,
		notify:   notifyService,
	}
}
