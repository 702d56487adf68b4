// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mindstore/order-service/internal/config"
	"github.com/mindstore/order-service/internal/infrastructure/storage"
	"github.com/sirupsen/logrus"
)

// snapshotTTL matches the guest session lifetime
const snapshotTTL = 24 * time.Hour

// Service handles cart business logic. The snapshot store is
// constructor-injected so tests can substitute an in-memory fake.
type Service struct {
	store  storage.Store
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new cart service
func NewService(store storage.Store, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		config: cfg,
		logger: logger,
	}
}

// AddItemRequest represents an add-to-cart request
type AddItemRequest struct {
	Item     LineItem `json:"item" binding:"required"`
	Quantity int      `json:"quantity"`
}

// UpdateItemRequest represents an update-quantity request
type UpdateItemRequest struct {
	Type     ItemType `json:"type" binding:"required"`
	Quantity int      `json:"quantity"`
}

// Get retrieves the cart for a session, falling back to an empty cart when
// the persisted snapshot is missing or unreadable
func (s *Service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}
	return s.load(ctx, sessionID), nil
}

// Add merges an item into the cart: an existing (id, type) line has its
// quantity incremented, otherwise a new line is appended. Quantity defaults
// to 1. No upper bound is enforced.
func (s *Service) Add(ctx context.Context, sessionID string, item LineItem, quantity int) (*Cart, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		quantity = 1
	}

	c := s.load(ctx, sessionID)

	if idx := c.find(item.ID, item.Type); idx >= 0 {
		c.Items[idx].Quantity += quantity
	} else {
		item.Quantity = quantity
		item.AddedAt = time.Now().UTC()
		c.Items = append(c.Items, item)
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity sets the matching line's quantity exactly. A quantity
// below 1 removes the line instead. Unknown (id, type) is a no-op.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, id string, itemType ItemType, quantity int) (*Cart, error) {
	if quantity < 1 {
		return s.Remove(ctx, sessionID, id, itemType)
	}

	c := s.load(ctx, sessionID)

	idx := c.find(id, itemType)
	if idx < 0 {
		return c, nil
	}
	c.Items[idx].Quantity = quantity

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove deletes the matching line item, if present
func (s *Service) Remove(ctx context.Context, sessionID, id string, itemType ItemType) (*Cart, error) {
	c := s.load(ctx, sessionID)

	idx := c.find(id, itemType)
	if idx < 0 {
		return c, nil
	}
	c.Items = append(c.Items[:idx], c.Items[idx+1:]...)

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, sessionID string) (*Cart, error) {
	c := s.load(ctx, sessionID)
	c.Items = []LineItem{}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Count returns the sum of all quantities in the cart
func (s *Service) Count(ctx context.Context, sessionID string) int {
	return s.load(ctx, sessionID).Totals().TotalQuantity
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// load reads the persisted snapshot. Any read or parse failure is
// non-fatal: it logs a warning and yields an empty cart.
func (s *Service) load(ctx context.Context, sessionID string) *Cart {
	empty := &Cart{
		SessionID: sessionID,
		Items:     []LineItem{},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	data, err := s.store.Get(ctx, cartKey(sessionID))
	if err != nil {
		if err != storage.ErrNotFound {
			s.logger.WithError(err).WithField("session_id", sessionID).
				Warn("Failed to load cart snapshot, starting empty")
		}
		return empty
	}

	var persisted persistedCart
	if err := json.Unmarshal(data, &persisted); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Warn("Corrupt cart snapshot, starting empty")
		return empty
	}
	if persisted.Version != snapshotVersion {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"version":    persisted.Version,
		}).Warn("Unknown cart snapshot version, starting empty")
		return empty
	}

	items := persisted.Items
	if items == nil {
		items = []LineItem{}
	}

	return &Cart{
		SessionID: sessionID,
		Items:     items,
		CreatedAt: persisted.CreatedAt,
		UpdatedAt: persisted.UpdatedAt,
	}
}

func (s *Service) save(ctx context.Context, c *Cart) error {
	c.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(persistedCart{
		Version:   snapshotVersion,
		Items:     c.Items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	if err := s.store.Set(ctx, cartKey(c.SessionID), data, snapshotTTL); err != nil {
		return fmt.Errorf("failed to persist cart snapshot: %w", err)
	}
	return nil
}
