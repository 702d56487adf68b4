// internal/interfaces/http/server.go
package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindstore/order-service/internal/config"
	"github.com/mindstore/order-service/internal/infrastructure/storage"
	"github.com/mindstore/order-service/internal/interfaces/http/middleware"
	"github.com/mindstore/order-service/internal/interfaces/http/routes"
	"github.com/mindstore/order-service/internal/notify"
	"github.com/mindstore/order-service/internal/pkg/telegram"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	config        *config.Config
	gin           *gin.Engine
	httpServer    *http.Server
	store         storage.Store
	redisClient   *redis.Client // nil for in-memory deployments
	notifyService *notify.Service
	sender        telegram.Sender
	logger        *logrus.Logger
}

// NewServer creates a new HTTP server instance
func NewServer(cfg *config.Config, store storage.Store, redisClient *redis.Client, notifyService *notify.Service, sender telegram.Sender, logger *logrus.Logger) *Server {
	return &Server{
		config:        cfg,
		store:         store,
		redisClient:   redisClient,
		notifyService: notifyService,
		sender:        sender,
		logger:        logger,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on environment
	if s.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Create Gin engine
	s.gin = gin.New()

	// Setup middleware
	s.setupMiddleware()

	// Setup routes
	s.setupRoutes()

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	log.Printf("🚀 HTTP Server starting on port %s", s.config.Server.Port)
	log.Printf("🌐 API Base URL: http://localhost:%s/api/v1", s.config.Server.Port)
	log.Printf("📊 Health Check: http://localhost:%s/health", s.config.Server.Port)
	if s.config.Telegram.BotToken != "" {
		log.Printf("🤖 Webhook URL: http://localhost:%s/webhook/<bot token>", s.config.Server.Port)
	}

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	log.Println("🛑 Shutting down HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	log.Println("✅ HTTP server stopped gracefully")
	return nil
}

// setupMiddleware configures all middleware for the server
func (s *Server) setupMiddleware() {
	// Recovery middleware - recover from panics
	s.gin.Use(gin.Recovery())

	// Custom logger middleware
	s.gin.Use(middleware.Logger(s.config, s.logger))

	// Request ID middleware
	s.gin.Use(middleware.RequestID())

	// CORS middleware
	s.gin.Use(middleware.CORS(s.config))

	// Security headers middleware
	s.gin.Use(middleware.SecurityHeaders())

	// Rate limiting middleware
	s.gin.Use(middleware.RateLimit(s.config, s.redisClient))

	// Timeout middleware
	s.gin.Use(middleware.Timeout(30 * time.Second))
}

// setupRoutes configures all routes for the server
func (s *Server) setupRoutes() {
	// Health check endpoint (no auth required)
	s.gin.GET("/health", s.healthCheck)

	// Relay endpoints live at the root, not under /api/v1
	routes.SetupRelayRoutes(s.gin, s.store, s.notifyService, s.sender, s.config, s.logger)

	// API v1 routes
	apiV1 := s.gin.Group("/api/v1")
	routes.SetupAPIRoutes(apiV1, s.store, s.notifyService, s.config, s.logger)

	// Root endpoint in development
	if s.config.IsDevelopment() {
		s.gin.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"message":     s.config.App.Name,
				"version":     s.config.App.Version,
				"environment": s.config.App.Environment,
				"health":      "/health",
				"endpoints": gin.H{
					"cart":         "/api/v1/cart",
					"favorites":    "/api/v1/favorites",
					"auth":         "/api/v1/auth",
					"orders":       "/send-order-notification",
					"reservations": "/send-reservation-notification",
					"subscribers":  "/subscribed-chats",
				},
			})
		})
	}
}

// healthCheck handles health check requests
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := s.store.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "snapshot store ping failed",
		})
		return
	}

	registry := s.notifyService.Registry()
	c.JSON(http.StatusOK, gin.H{
		"status":           "Notification service is running",
		"timestamp":        time.Now().UTC(),
		"version":          s.config.App.Version,
		"environment":      s.config.App.Environment,
		"subscribedChats":  registry.Count(),
		"fixedChatId":      registry.FixedChatID(),
		"usingFixedChatId": registry.UsingFixed(),
	})
}
