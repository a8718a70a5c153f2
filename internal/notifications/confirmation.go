package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/printcraft/printshop-backend/internal/orders"
	"github.com/printcraft/printshop-backend/pkg/logger"
)

// OrderNotifier sends the order confirmation email. Delivery failures are
// logged, never surfaced to the checkout flow.
type OrderNotifier struct {
	mail EmailSender
	logg *logger.Logger
}

// NewOrderNotifier builds the notifier. A nil sender disables delivery.
func NewOrderNotifier(mail EmailSender, logg *logger.Logger) *OrderNotifier {
	if mail == nil {
		mail = NopSender{}
	}
	return &OrderNotifier{mail: mail, logg: logg}
}

// OrderConfirmed sends the confirmation for a freshly placed order.
func (n *OrderNotifier) OrderConfirmed(ctx context.Context, order *orders.OrderDTO) {
	if order == nil || order.Email == "" {
		return
	}

	subject := fmt.Sprintf("Order #%d confirmed", order.OrderNumber)
	if err := n.mail.Send(order.Email, subject, confirmationBody(order)); err != nil && n.logg != nil {
		ctx = n.logg.WithOrderID(ctx, order.ID.String())
		n.logg.Warn(ctx, fmt.Sprintf("order confirmation email failed: %v", err))
	}
}

func confirmationBody(order *orders.OrderDTO) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Thanks for your order!</h1>")
	fmt.Fprintf(&b, "<p>Order <strong>#%d</strong> has been received and is now pending production.</p>", order.OrderNumber)
	b.WriteString("<ul>")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%s &times; %d &mdash; %s</li>", item.ProductName, item.Qty, item.Total.StringFixed(2))
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p>Total: <strong>%s</strong></p>", order.Total.StringFixed(2))
	return b.String()
}
