// internal/domain/order/entity.go
package order

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mindstore/order-service/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// CustomerContact holds the checkout contact fields
type CustomerContact struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Snapshot is an immutable copy of the cart at checkout time plus customer
// contact fields. It is created once per submission and consumed exactly
// once by the notification relay.
type Snapshot struct {
	ID              string          `json:"id"`
	Items           []cart.LineItem `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	CustomerAddress string          `json:"customer_address,omitempty"`
	PlacedAt        time.Time       `json:"placed_at"`
}

// NewSnapshot assembles an order from a cart snapshot and contact fields.
// The order ID is derived from the submission time in milliseconds.
func NewSnapshot(cartSnap cart.Snapshot, contact CustomerContact, now time.Time) Snapshot {
	items := make([]cart.LineItem, len(cartSnap.Items))
	copy(items, cartSnap.Items)

	return Snapshot{
		ID:              strconv.FormatInt(now.UnixMilli(), 10),
		Items:           items,
		Subtotal:        cartSnap.Subtotal,
		Tax:             cartSnap.Tax,
		Total:           cartSnap.Total,
		CustomerName:    contact.Name,
		CustomerEmail:   contact.Email,
		CustomerPhone:   contact.Phone,
		CustomerAddress: contact.Address,
		PlacedAt:        now,
	}
}

// Validate enforces the identity and numeric invariants on an
// externally-built snapshot before the relay formats it
func (s Snapshot) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("order id is required")
	}
	if len(s.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	for i, item := range s.Items {
		if item.Title == "" {
			return fmt.Errorf("item %d: title is required", i)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("item %d: price cannot be negative", i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("item %d: quantity must be at least 1", i)
		}
	}
	if s.Subtotal.IsNegative() || s.Tax.IsNegative() || s.Total.IsNegative() {
		return fmt.Errorf("order totals cannot be negative")
	}
	return nil
}
