package models

// orderTransitions is the allowed fulfillment state machine. The payment
// status moves independently and is never part of these checks.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Cancellable reports whether a user may still cancel the order. Shipped and
// delivered orders are past the point of cancellation.
func (o *Order) Cancellable() bool {
	return o.Status == OrderPending || o.Status == OrderProcessing
}
