// internal/domain/favorites/entity.go
package favorites

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a favorited catalog entry. Favorites are keyed by ID
// only, unlike cart lines which key on (id, type).
type Item struct {
	ID      string          `json:"id"`
	Type    string          `json:"type,omitempty"`
	Title   string          `json:"title"`
	Price   decimal.Decimal `json:"price"`
	AddedAt time.Time       `json:"added_at"`
}

// Favorites is the session-owned favorites set
type Favorites struct {
	SessionID string    `json:"session_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Contains is a pure membership test by item ID
func (f *Favorites) Contains(id string) bool {
	for i := range f.Items {
		if f.Items[i].ID == id {
			return true
		}
	}
	return false
}

const snapshotVersion = 1

type persistedFavorites struct {
	Version   int       `json:"version"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}
