package mailer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	KindWelcome           = "welcome"
	KindOrderConfirmation = "order_confirmation"
	KindLowStockAlert     = "low_stock_alert"
)

// WelcomeMessage greets a freshly registered user.
func WelcomeMessage(to, firstName string) Message {
	return Message{
		Kind:    KindWelcome,
		To:      []string{to},
		Subject: "Welcome to Diet Planner",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour account is ready. Fill in your profile to generate your first diet plan.\n\nThe Diet Planner Team",
			firstName),
	}
}

// OrderLine is one snapshot row rendered into the confirmation body.
type OrderLine struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// OrderConfirmationMessage summarizes a placed order.
func OrderConfirmationMessage(to string, orderID string, total decimal.Decimal, lines []OrderLine) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order %s.\n\n", orderID)
	for _, line := range lines {
		fmt.Fprintf(&b, "  %dx %s @ %s\n", line.Quantity, line.Name, line.Price.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n\nThe Diet Planner Team", total.StringFixed(2))

	return Message{
		Kind:    KindOrderConfirmation,
		To:      []string{to},
		Subject: fmt.Sprintf("Order confirmation %s", orderID),
		Body:    b.String(),
	}
}

// LowStockMessage notifies every staff recipient that a product dipped
// below the threshold.
func LowStockMessage(to []string, productName string, remaining, threshold int) Message {
	return Message{
		Kind:    KindLowStockAlert,
		To:      to,
		Subject: fmt.Sprintf("Low stock: %s", productName),
		Body: fmt.Sprintf(
			"Product %q is down to %d units (threshold %d). Restock soon.",
			productName, remaining, threshold),
	}
}
