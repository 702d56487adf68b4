// internal/interfaces/http/handlers/notification.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindstore/order-service/internal/config"
	"github.com/mindstore/order-service/internal/domain/order"
	"github.com/mindstore/order-service/internal/domain/reservation"
	"github.com/mindstore/order-service/internal/notify"
)

// NotificationHandler handles the relay endpoints. Both endpoints accept a
// finalized payload, format the fixed message template, and report the
// delivery attempt. A 200 with success=true means the message was
// accepted, not that it was delivered.
type NotificationHandler struct {
	notifyService *notify.Service
	config        *config.Config
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifyService *notify.Service, cfg *config.Config) *NotificationHandler {
	return &NotificationHandler{
		notifyService: notifyService,
		config:        cfg,
	}
}

type orderNotificationRequest struct {
	Order order.Snapshot `json:"order" binding:"required"`
}

type reservationNotificationRequest struct {
	Reservation reservation.Request `json:"reservation" binding:"required"`
}

// SendOrderNotification handles POST /send-order-notification
func (h *NotificationHandler) SendOrderNotification(c *gin.Context) {
	var req orderNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	if err := req.Order.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	message := notify.FormatOrder(req.Order, time.Now())
	result := h.notifyService.Send(c.Request.Context(), message)

	c.JSON(http.StatusOK, result)
}

// SendReservationNotification handles POST /send-reservation-notification
func (h *NotificationHandler) SendReservationNotification(c *gin.Context) {
	var req reservationNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request data: " + err.Error(),
		})
		return
	}

	if err := req.Reservation.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	message := notify.FormatReservation(req.Reservation, h.config.Telegram.SupportContact, time.Now())
	result := h.notifyService.Send(c.Request.Context(), message)

	c.JSON(http.StatusOK, result)
}
