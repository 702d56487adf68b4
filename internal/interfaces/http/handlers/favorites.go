// internal/interfaces/http/handlers/favorites.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mindstore/order-service/internal/config"
	"github.com/mindstore/order-service/internal/domain/favorites"
	"github.com/mindstore/order-service/internal/infrastructure/storage"
	"github.com/sirupsen/logrus"
)

// FavoritesHandler handles favorites endpoints
type FavoritesHandler struct {
	favoritesService *favorites.Service
	config           *config.Config
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(store storage.Store, cfg *config.Config, logger *logrus.Logger) *FavoritesHandler {
	return &FavoritesHandler{
		favoritesService: favorites.NewService(store, cfg, logger),
		config:           cfg,
	}
}

// GetFavorites handles GET /favorites
func (h *FavoritesHandler) GetFavorites(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	f, err := h.favoritesService.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve favorites",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorites retrieved successfully",
		"data": gin.H{
			"session_id": f.SessionID,
			"items":      f.Items,
			"count":      len(f.Items),
		},
	})
}

// AddFavorite handles POST /favorites
func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	var item favorites.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	f, err := h.favoritesService.Add(c.Request.Context(), sessionID, item)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to favorites",
		"data": gin.H{
			"items": f.Items,
			"count": len(f.Items),
		},
	})
}

// RemoveFavorite handles DELETE /favorites/:id
func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)

	f, err := h.favoritesService.Remove(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove favorite",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from favorites",
		"data": gin.H{
			"items": f.Items,
			"count": len(f.Items),
		},
	})
}

// IsFavorite handles GET /favorites/:id
func (h *FavoritesHandler) IsFavorite(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	id := c.Param("id")

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":          id,
			"is_favorite": h.favoritesService.IsFavorite(c.Request.Context(), sessionID, id),
		},
	})
}
