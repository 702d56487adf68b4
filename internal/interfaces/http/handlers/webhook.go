// internal/interfaces/http/handlers/webhook.go
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mindstore/order-service/internal/config"
	"github.com/mindstore/order-service/internal/domain/cart"
	"github.com/mindstore/order-service/internal/infrastructure/storage"
	"github.com/mindstore/order-service/internal/notify"
	"github.com/mindstore/order-service/internal/pkg/telegram"
	"github.com/sirupsen/logrus"
)

// WebhookHandler handles inbound Telegram updates. Any message from a chat
// registers it as a notification recipient (unless a fixed recipient is
// configured); /start and /cart get a direct reply.
type WebhookHandler struct {
	notifyService *notify.Service
	cartService   *cart.Service
	sender        telegram.Sender
	config        *config.Config
	logger        *logrus.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(store storage.Store, notifyService *notify.Service, sender telegram.Sender, cfg *config.Config, logger *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{
		notifyService: notifyService,
		cartService:   cart.NewService(store, cfg, logger),
		sender:        sender,
		config:        cfg,
		logger:        logger,
	}
}

// HandleUpdate handles POST /webhook/:botToken. The response carries only
// a status code; Telegram retries non-200 responses.
func (h *WebhookHandler) HandleUpdate(c *gin.Context) {
	if c.Param("botToken") != h.config.Telegram.BotToken {
		c.Status(http.StatusNotFound)
		return
	}

	var update telegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.logger.WithError(err).Warn("Unreadable webhook update")
		c.Status(http.StatusOK)
		return
	}

	if update.Message == nil || update.Message.Text == "" {
		c.Status(http.StatusOK)
		return
	}

	chatID := strconv.FormatInt(update.Message.Chat.ID, 10)
	if h.notifyService.Registry().Subscribe(chatID) {
		h.logger.WithField("chat_id", chatID).Info("New subscriber")
	}

	switch update.Message.Text {
	case "/start":
		h.reply(c.Request.Context(), chatID, notify.FormatWelcome(chatID))
	case "/cart":
		// The chat ID doubles as the session key for bot-driven carts
		current, err := h.cartService.Get(c.Request.Context(), chatID)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		h.reply(c.Request.Context(), chatID, notify.FormatCart(current.Snapshot()))
	}

	c.Status(http.StatusOK)
}

// reply sends a direct response to one chat; failures are logged only
func (h *WebhookHandler) reply(ctx context.Context, chatID, text string) {
	sendCtx, cancel := context.WithTimeout(ctx, h.config.Telegram.SendTimeout)
	defer cancel()

	if err := h.sender.SendMessage(sendCtx, chatID, text); err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).
			Warn("Failed to reply to chat")
	}
}

// GetSubscribedChats handles GET /subscribed-chats
func (h *WebhookHandler) GetSubscribedChats(c *gin.Context) {
	registry := h.notifyService.Registry()

	subscribed := []string{}
	if !registry.UsingFixed() {
		subscribed = registry.Recipients()
	}

	c.JSON(http.StatusOK, gin.H{
		"subscribedChats":  subscribed,
		"fixedChatId":      registry.FixedChatID(),
		"usingFixedChatId": registry.UsingFixed(),
	})
}
