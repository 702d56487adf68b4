// internal/domain/reservation/entity.go
package reservation

import (
	"fmt"
	"time"
)

// Request represents a course seat reservation. Reservations are
// independent of the cart and follow the same notification path as orders.
type Request struct {
	Course       string `json:"course"`
	Date         string `json:"date"` // ISO date, e.g. 2025-11-15
	Time         string `json:"time"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Participants int    `json:"participants"`
}

// Validate enforces required fields before the relay formats the request
func (r Request) Validate() error {
	if r.Course == "" {
		return fmt.Errorf("course is required")
	}
	if r.Date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("date must be an ISO date (YYYY-MM-DD): %w", err)
	}
	if r.Time == "" {
		return fmt.Errorf("time is required")
	}
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Participants < 1 {
		return fmt.Errorf("participants must be at least 1")
	}
	return nil
}
