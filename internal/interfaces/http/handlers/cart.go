// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindstore/order-service/internal/config"
	"github.com/mindstore/order-service/internal/domain/cart"
	"github.com/mindstore/order-service/internal/domain/order"
	"github.com/mindstore/order-service/internal/infrastructure/storage"
	"github.com/mindstore/order-service/internal/notify"
	"github.com/sirupsen/logrus"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService   *cart.Service
	orderService  *order.Service
	notifyService *notify.Service
	config        *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store storage.Store, notifyService *notify.Service, cfg *config.Config, logger *logrus.Logger) *CartHandler {
	cartService := cart.NewService(store, cfg, logger)
	return &CartHandler{
		cartService:   cartService,
		orderService:  order.NewService(cartService, logger),
		notifyService: notifyService,
		config:        cfg,
	}
}

// cartResponse pairs the cart items with freshly derived totals
func cartResponse(c *cart.Cart) gin.H {
	return gin.H{
		"session_id": c.SessionID,
		"items":      c.Items,
		"totals":     c.Totals(),
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	current, err := h.cartService.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartResponse(current),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var req cart.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	current, err := h.cartService.Add(c.Request.Context(), sessionID, req.Item, req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartResponse(current),
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	itemID := c.Param("id")

	var req cart.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown item type",
		})
		return
	}

	current, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, itemID, req.Type, req.Quantity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    cartResponse(current),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	itemID := c.Param("id")

	itemType := cart.ItemType(c.Query("type"))
	if !itemType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown item type",
		})
		return
	}

	current, err := h.cartService.Remove(c.Request.Context(), sessionID, itemID, itemType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartResponse(current),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	current, err := h.cartService.Clear(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    cartResponse(current),
	})
}

// Checkout handles POST /cart/checkout. The order-placed confirmation
// depends only on the local cart snapshot and clear; the notification
// outcome is a secondary status that never fails the checkout.
func (h *CartHandler) Checkout(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var contact order.CustomerContact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	snapshot, err := h.orderService.PlaceOrder(c.Request.Context(), sessionID, contact)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	message := notify.FormatOrder(*snapshot, time.Now())
	result := h.notifyService.Send(c.Request.Context(), message)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data": gin.H{
			"order":        snapshot,
			"notification": gin.H{
				"status":    notificationStatus(result),
				"message":   result.Message,
				"delivered": result.Delivered,
				"failed":    result.Failed,
			},
		},
	})
}

// notificationStatus collapses a delivery result into the user-visible
// secondary status line
func notificationStatus(result notify.Result) string {
	switch {
	case len(result.Delivered) > 0 && len(result.Failed) == 0:
		return "sent"
	case len(result.Delivered) > 0:
		return "warning"
	case len(result.Failed) > 0:
		return "failed"
	default:
		return "logged"
	}
}
