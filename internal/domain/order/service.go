// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/mindstore/order-service/internal/domain/cart"
	"github.com/sirupsen/logrus"
)

// Service builds order snapshots from live carts
type Service struct {
	cartService *cart.Service
	logger      *logrus.Logger
}

// NewService creates a new order service
func NewService(cartService *cart.Service, logger *logrus.Logger) *Service {
	return &Service{
		cartService: cartService,
		logger:      logger,
	}
}

// PlaceOrder snapshots the session cart, validates it, and clears the cart.
// Clearing is unconditional once the snapshot is taken: the purchase intent
// is committed from the customer's perspective whatever the relay does next.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, contact CustomerContact) (*Snapshot, error) {
	if contact.Name == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	if contact.Email == "" {
		return nil, fmt.Errorf("customer email is required")
	}

	c, err := s.cartService.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	snapshot := NewSnapshot(c.Snapshot(), contact, time.Now().UTC())
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.cartService.Clear(ctx, sessionID); err != nil {
		// The order stands even if the persisted cart could not be cleared
		s.logger.WithError(err).WithField("session_id", sessionID).
			Warn("Failed to clear cart after checkout")
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":   snapshot.ID,
		"session_id": sessionID,
		"items":      len(snapshot.Items),
		"total":      snapshot.Total.StringFixed(2),
	}).Info("Order placed")

	return &snapshot, nil
}
