package notify

import (
	"testing"
	"time"

	"github.com/mindstore/order-service/internal/domain/cart"
	"github.com/mindstore/order-service/internal/domain/order"
	"github.com/mindstore/order-service/internal/domain/reservation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatOrder(t *testing.T) {
	snap := order.Snapshot{
		ID: "1763200800000",
		Items: []cart.LineItem{
			{ID: "1", Type: cart.ItemTypeBook, Title: "Clean Code", Price: decimal.RequireFromString("29.99"), Quantity: 2},
			{ID: "2", Type: cart.ItemTypePodcast, Title: "Go Time", Price: decimal.RequireFromString("4.99"), Quantity: 1},
		},
		Subtotal:      decimal.RequireFromString("64.97"),
		Tax:           decimal.RequireFromString("5.20"),
		Total:         decimal.RequireFromString("70.17"),
		CustomerName:  "A",
		CustomerEmail: "a@x.com",
		CustomerPhone: "555-0100",
	}

	now := time.Date(2025, 11, 15, 14, 30, 5, 0, time.UTC)
	msg := FormatOrder(snap, now)

	assert.Contains(t, msg, "🛒 New Order Placed!")
	assert.Contains(t, msg, "Order ID: 1763200800000")
	assert.Contains(t, msg, "Customer: A")
	assert.Contains(t, msg, "Email: a@x.com")
	assert.Contains(t, msg, "Address: Not provided")
	assert.Contains(t, msg, "- Clean Code (x2) - $59.98")
	assert.Contains(t, msg, "- Go Time (x1) - $4.99")
	assert.Contains(t, msg, "Subtotal: $64.97")
	assert.Contains(t, msg, "Tax: $5.20")
	assert.Contains(t, msg, "Total: $70.17")
	assert.Contains(t, msg, "Order placed at: 11/15/2025, 2:30:05 PM")
}

func TestFormatOrderWithAddress(t *testing.T) {
	snap := order.Snapshot{
		ID:              "1",
		CustomerAddress: "1 Main St",
	}

	msg := FormatOrder(snap, time.Now())
	assert.Contains(t, msg, "Address: 1 Main St")
	assert.NotContains(t, msg, "Not provided")
}

func TestFormatReservation(t *testing.T) {
	req := reservation.Request{
		Course:       "Advanced React Development",
		Date:         "2025-11-15",
		Time:         "10:00 AM",
		Name:         "A",
		Email:        "a@x.com",
		Phone:        "555-0100",
		Participants: 2,
	}

	msg := FormatReservation(req, "0703 15 33 55", time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC))

	assert.Contains(t, msg, "🎉 New Reservation Confirmed!")
	assert.Contains(t, msg, "Course: Advanced React Development")
	assert.Contains(t, msg, "Date: 2025-11-15")
	assert.Contains(t, msg, "Participants: 2")
	assert.Contains(t, msg, "WhatsApp at 0703 15 33 55")
}

func TestFormatReservationWithoutSupportContact(t *testing.T) {
	msg := FormatReservation(reservation.Request{Course: "x", Participants: 1}, "", time.Now())
	assert.NotContains(t, msg, "WhatsApp")
}

func TestFormatCart(t *testing.T) {
	snap := cart.Snapshot{
		Items: []cart.LineItem{
			{Title: "Clean Code", Price: decimal.RequireFromString("29.99"), Quantity: 1},
		},
		Total: decimal.RequireFromString("32.39"),
	}

	msg := FormatCart(snap)
	assert.Contains(t, msg, "- Clean Code (x1) - $29.99")
	assert.Contains(t, msg, "Total: $32.39")
}

func TestFormatCartEmpty(t *testing.T) {
	msg := FormatCart(cart.Snapshot{Items: []cart.LineItem{}})
	assert.Contains(t, msg, "Your cart is empty.")
}

func TestFormatWelcome(t *testing.T) {
	msg := FormatWelcome("12345")
	assert.Contains(t, msg, "MindStore notifications")
	assert.Contains(t, msg, "Your chat ID is: 12345")
}
