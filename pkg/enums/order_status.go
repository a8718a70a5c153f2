package enums

import "fmt"

// OrderStatus tracks a print order from checkout to delivery.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusInProduction OrderStatus = "in_production"
	OrderStatusShipped      OrderStatus = "shipped"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusCanceled     OrderStatus = "canceled"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:      {},
	OrderStatusInProduction: {},
	OrderStatusShipped:      {},
	OrderStatusDelivered:    {},
	OrderStatusCanceled:     {},
}

// IsValid reports whether the status is a known lifecycle state.
func (s OrderStatus) IsValid() bool {
	_, ok := orderStatuses[s]
	return ok
}

func ParseOrderStatus(value string) (OrderStatus, error) {
	status := OrderStatus(value)
	if _, ok := orderStatuses[status]; !ok {
		return "", fmt.Errorf("unknown order status %q", value)
	}
	return status, nil
}

// transitions lists the allowed next states per status.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:      {OrderStatusInProduction, OrderStatusCanceled},
	OrderStatusInProduction: {OrderStatusShipped, OrderStatusCanceled},
	OrderStatusShipped:      {OrderStatusDelivered},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}
