package utils

import (
	"fmt"
	"strings"

	"github.com/greenvalley/farmtodoor-api/models"
)

// BuildOrderMessage renders the order confirmation as chat-app markup,
// the same text the customer can forward via the wa.me deep link.
func BuildOrderMessage(order models.Order, user models.User) string {
	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "• %s (x%d) - %s\n", item.Name, item.Quantity, FormatCurrency(item.Price*float64(item.Quantity)))
	}

	phone := user.Phone
	if phone == "" {
		phone = "Not provided"
	}

	return fmt.Sprintf(`🌾 *Farm to Door - Order Confirmation*

*Order #%d*
Customer: %s
Phone: %s

*Items Ordered:*
%s
*Order Summary:*
Subtotal: %s
Tax: %s
Delivery Fee: %s
*Total: %s*

*Delivery Address:*
%s

*Expected Delivery:* %s

Thank you for choosing Farm to Door! 🚚`,
		order.ID,
		order.UserName,
		phone,
		items.String(),
		FormatCurrency(order.Subtotal),
		FormatCurrency(order.Tax),
		FormatCurrency(order.DeliveryFee),
		FormatCurrency(order.Total),
		order.DeliveryAddress,
		FormatDate(order.DeliveryDate),
	)
}
