// internal/domain/cart/entity.go
package cart

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ItemType identifies which catalog an item came from. The same catalog id
// can appear under different types without collision.
type ItemType string

const (
	ItemTypeCourse  ItemType = "course"
	ItemTypeBook    ItemType = "book"
	ItemTypeLecture ItemType = "lecture"
	ItemTypePodcast ItemType = "podcast"
)

// Valid reports whether the item type is one of the known catalogs
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeCourse, ItemTypeBook, ItemTypeLecture, ItemTypePodcast:
		return true
	}
	return false
}

// TaxRate is applied to the cart subtotal
var TaxRate = decimal.RequireFromString("0.08")

// LineItem represents one catalog entry plus quantity inside a cart.
// Uniqueness key is (ID, Type).
type LineItem struct {
	ID       string          `json:"id"`
	Type     ItemType        `json:"type"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	AddedAt  time.Time       `json:"added_at"`
}

// LineTotal returns price multiplied by quantity
func (i LineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Validate checks the boundary invariants for an inbound line item
func (i LineItem) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("item id is required")
	}
	if !i.Type.Valid() {
		return fmt.Errorf("unknown item type %q", i.Type)
	}
	if i.Title == "" {
		return fmt.Errorf("item title is required")
	}
	if i.Price.IsNegative() {
		return fmt.Errorf("item price cannot be negative")
	}
	return nil
}

// Totals represents calculated cart totals, derived and never stored
type Totals struct {
	ItemCount     int             `json:"item_count"`     // Number of unique items
	TotalQuantity int             `json:"total_quantity"` // Sum of all quantities
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
}

// Cart is the session-owned shopping cart aggregate
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Snapshot is an internally consistent view of the cart assembled at
// checkout time: the items plus totals computed fresh from current state
type Snapshot struct {
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// find returns the index of the line item matching (id, type), or -1
func (c *Cart) find(id string, itemType ItemType) int {
	for i := range c.Items {
		if c.Items[i].ID == id && c.Items[i].Type == itemType {
			return i
		}
	}
	return -1
}

// Totals recomputes derived totals from the current items
func (c *Cart) Totals() Totals {
	totals := Totals{
		ItemCount: len(c.Items),
		Subtotal:  decimal.Zero,
	}

	for _, item := range c.Items {
		totals.TotalQuantity += item.Quantity
		totals.Subtotal = totals.Subtotal.Add(item.LineTotal())
	}

	totals.Tax = totals.Subtotal.Mul(TaxRate).Round(2)
	totals.Total = totals.Subtotal.Add(totals.Tax)
	return totals
}

// Snapshot builds a checkout view computed fresh from current state
func (c *Cart) Snapshot() Snapshot {
	totals := c.Totals()
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)

	return Snapshot{
		Items:    items,
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}
}

// snapshotVersion is bumped when the persisted blob layout changes.
// An unknown version is treated like a corrupt blob on load.
const snapshotVersion = 1

// persistedCart is the versioned envelope written to the snapshot store
type persistedCart struct {
	Version   int        `json:"version"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
