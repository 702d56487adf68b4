// internal/domain/favorites/service.go
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mindstore/order-service/internal/config"
	"github.com/mindstore/order-service/internal/infrastructure/storage"
	"github.com/sirupsen/logrus"
)

const snapshotTTL = 24 * time.Hour

// Service handles favorites business logic. It shares the cart's
// persistence and consistency pattern: versioned JSON snapshot per session,
// corrupt blobs recovered as an empty set.
type Service struct {
	store  storage.Store
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new favorites service
func NewService(store storage.Store, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		store:  store,
		config: cfg,
		logger: logger,
	}
}

// Get retrieves the favorites set for a session
func (s *Service) Get(ctx context.Context, sessionID string) (*Favorites, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}
	return s.load(ctx, sessionID), nil
}

// Add inserts an item unless it is already present. Adding a duplicate ID
// is idempotent and leaves the set unchanged.
func (s *Service) Add(ctx context.Context, sessionID string, item Item) (*Favorites, error) {
	if item.ID == "" {
		return nil, fmt.Errorf("item id is required")
	}

	f := s.load(ctx, sessionID)
	if f.Contains(item.ID) {
		return f, nil
	}

	item.AddedAt = time.Now().UTC()
	f.Items = append(f.Items, item)

	if err := s.save(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Remove deletes an item by ID, a no-op when absent
func (s *Service) Remove(ctx context.Context, sessionID, id string) (*Favorites, error) {
	f := s.load(ctx, sessionID)

	for i := range f.Items {
		if f.Items[i].ID == id {
			f.Items = append(f.Items[:i], f.Items[i+1:]...)
			if err := s.save(ctx, f); err != nil {
				return nil, err
			}
			return f, nil
		}
	}
	return f, nil
}

// IsFavorite is a pure membership test
func (s *Service) IsFavorite(ctx context.Context, sessionID, id string) bool {
	return s.load(ctx, sessionID).Contains(id)
}

// Count returns the number of favorited items
func (s *Service) Count(ctx context.Context, sessionID string) int {
	return len(s.load(ctx, sessionID).Items)
}

func favoritesKey(sessionID string) string {
	return fmt.Sprintf("favorites:session:%s", sessionID)
}

func (s *Service) load(ctx context.Context, sessionID string) *Favorites {
	empty := &Favorites{
		SessionID: sessionID,
		Items:     []Item{},
		UpdatedAt: time.Now().UTC(),
	}

	data, err := s.store.Get(ctx, favoritesKey(sessionID))
	if err != nil {
		if err != storage.ErrNotFound {
			s.logger.WithError(err).WithField("session_id", sessionID).
				Warn("Failed to load favorites snapshot, starting empty")
		}
		return empty
	}

	var persisted persistedFavorites
	if err := json.Unmarshal(data, &persisted); err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).
			Warn("Corrupt favorites snapshot, starting empty")
		return empty
	}
	if persisted.Version != snapshotVersion {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"version":    persisted.Version,
		}).Warn("Unknown favorites snapshot version, starting empty")
		return empty
	}

	items := persisted.Items
	if items == nil {
		items = []Item{}
	}

	return &Favorites{
		SessionID: sessionID,
		Items:     items,
		UpdatedAt: persisted.UpdatedAt,
	}
}

func (s *Service) save(ctx context.Context, f *Favorites) error {
	f.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(persistedFavorites{
		Version:   snapshotVersion,
		Items:     f.Items,
		UpdatedAt: f.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode favorites snapshot: %w", err)
	}

	if err := s.store.Set(ctx, favoritesKey(f.SessionID), data, snapshotTTL); err != nil {
		return fmt.Errorf("failed to persist favorites snapshot: %w", err)
	}
	return nil
}
