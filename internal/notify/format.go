// internal/notify/format.go
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/mindstore/order-service/internal/domain/cart"
	"github.com/mindstore/order-service/internal/domain/order"
	"github.com/mindstore/order-service/internal/domain/reservation"
)

const timestampLayout = "1/2/2006, 3:04:05 PM"

// FormatOrder renders the fixed order notification template
func FormatOrder(snap order.Snapshot, now time.Time) string {
	var b strings.Builder

	b.WriteString("🛒 New Order Placed!\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", snap.ID)
	fmt.Fprintf(&b, "Customer: %s\n", snap.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", snap.CustomerEmail)
	fmt.Fprintf(&b, "Phone: %s\n", snap.CustomerPhone)

	address := snap.CustomerAddress
	if address == "" {
		address = "Not provided"
	}
	fmt.Fprintf(&b, "Address: %s\n", address)

	b.WriteString("\nItems:")
	for _, item := range snap.Items {
		fmt.Fprintf(&b, "\n- %s (x%d) - $%s", item.Title, item.Quantity, item.LineTotal().StringFixed(2))
	}

	fmt.Fprintf(&b, "\n\nSubtotal: $%s\n", snap.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Tax: $%s\n", snap.Tax.StringFixed(2))
	fmt.Fprintf(&b, "Total: $%s\n", snap.Total.StringFixed(2))
	fmt.Fprintf(&b, "\nOrder placed at: %s", now.Format(timestampLayout))

	return b.String()
}

// FormatReservation renders the fixed reservation notification template
func FormatReservation(req reservation.Request, supportContact string, now time.Time) string {
	var b strings.Builder

	b.WriteString("🎉 New Reservation Confirmed!\n\n")
	fmt.Fprintf(&b, "Course: %s\n", req.Course)
	fmt.Fprintf(&b, "Date: %s\n", req.Date)
	fmt.Fprintf(&b, "Time: %s\n", req.Time)
	fmt.Fprintf(&b, "Name: %s\n", req.Name)
	fmt.Fprintf(&b, "Email: %s\n", req.Email)
	fmt.Fprintf(&b, "Phone: %s\n", req.Phone)
	fmt.Fprintf(&b, "Participants: %d\n", req.Participants)
	fmt.Fprintf(&b, "\nReservation confirmed at: %s", now.Format(timestampLayout))

	if supportContact != "" {
		fmt.Fprintf(&b, "\n\n📲 Please contact the customer on WhatsApp at %s to confirm their booking.", supportContact)
	}

	return b.String()
}

// FormatWelcome renders the /start reply for a newly subscribed chat
func FormatWelcome(chatID string) string {
	return fmt.Sprintf("Welcome to MindStore notifications!\n"+
		"You will now receive notifications about orders and reservations.\n"+
		"Your chat ID is: %s", chatID)
}

// FormatCart renders the /cart reply showing a chat's cart contents
func FormatCart(snap cart.Snapshot) string {
	var b strings.Builder

	b.WriteString("🛒 Your Cart:\n")
	if len(snap.Items) == 0 {
		b.WriteString("Your cart is empty.")
		return b.String()
	}

	for _, item := range snap.Items {
		fmt.Fprintf(&b, "\n- %s (x%d) - $%s", item.Title, item.Quantity, item.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\n\nTotal: $%s", snap.Total.StringFixed(2))

	return b.String()
}
