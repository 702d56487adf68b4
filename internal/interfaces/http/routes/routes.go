// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mindstore/order-service/internal/config"
	"github.com/mindstore/order-service/internal/infrastructure/storage"
	"github.com/mindstore/order-service/internal/interfaces/http/handlers"
	"github.com/mindstore/order-service/internal/notify"
	"github.com/mindstore/order-service/internal/pkg/telegram"
	"github.com/sirupsen/logrus"
)

// SetupAPIRoutes sets up the versioned API routes
func SetupAPIRoutes(rg *gin.RouterGroup, store storage.Store, notifyService *notify.Service, cfg *config.Config, logger *logrus.Logger) {
	cartHandler := handlers.NewCartHandler(store, notifyService, cfg, logger)
	favoritesHandler := handlers.NewFavoritesHandler(store, cfg, logger)
	authHandler := handlers.NewAuthHandler(store, cfg, logger)

	// Cart routes work with guest sessions identified by the X-Session-ID header
	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/checkout", cartHandler.Checkout)
	}

	favorites := rg.Group("/favorites")
	{
		favorites.GET("", favoritesHandler.GetFavorites)
		favorites.POST("", favoritesHandler.AddFavorite)
		favorites.GET("/:id", favoritesHandler.IsFavorite)
		favorites.DELETE("/:id", favoritesHandler.RemoveFavorite)
	}

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", authHandler.GetProfile)
	}
}

// SetupRelayRoutes sets up the notification relay endpoints. These live at
// the root so bot webhooks and relay callers keep stable paths.
func SetupRelayRoutes(r *gin.Engine, store storage.Store, notifyService *notify.Service, sender telegram.Sender, cfg *config.Config, logger *logrus.Logger) {
	notificationHandler := handlers.NewNotificationHandler(notifyService, cfg)
	webhookHandler := handlers.NewWebhookHandler(store, notifyService, sender, cfg, logger)

	r.POST("/send-order-notification", notificationHandler.SendOrderNotification)
	r.POST("/send-reservation-notification", notificationHandler.SendReservationNotification)
	r.POST("/webhook/:botToken", webhookHandler.HandleUpdate)
	r.GET("/subscribed-chats", webhookHandler.GetSubscribedChats)
}
