package model

// OrderStatus describes order fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusScheduled      OrderStatus = "scheduled"
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// ProgressSteps is the linear progression rendered by tracking clients.
// Scheduled and cancelled orders sit outside the progress bar.
var ProgressSteps = []OrderStatus{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

var statusRank = map[OrderStatus]int{
	OrderStatusScheduled:      0,
	OrderStatusPending:        1,
	OrderStatusPreparing:      2,
	OrderStatusOutForDelivery: 3,
	OrderStatusDelivered:      4,
	OrderStatusCancelled:      5,
}

// Known reports whether the status belongs to the defined lifecycle.
func (s OrderStatus) Known() bool {
	_, ok := statusRank[s]
	return ok
}

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ProgressIndex locates the status on the linear step list, -1 when the
// status is unknown or outside the progression.
func (s OrderStatus) ProgressIndex() int {
	for i, step := range ProgressSteps {
		if s == step {
			return i
		}
	}
	return -1
}

// CanTransition reports whether moving to next is a valid forward step.
// Cancellation is allowed from any non-terminal state.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !s.Known() || !next.Known() || s.Terminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return statusRank[next] == statusRank[s]+1
}

// MergeStatus picks the more advanced of two observed statuses. A push
// event that raced ahead of a slower fetch must never be overwritten by
// the stale fetch result, so the higher-ranked status always wins and
// terminal states stick.
func MergeStatus(current, incoming OrderStatus) OrderStatus {
	switch {
	case current.Terminal():
		return current
	case incoming.Terminal():
		return incoming
	case !incoming.Known():
		return current
	case !current.Known():
		return incoming
	case statusRank[incoming] > statusRank[current]:
		return incoming
	default:
		return current
	}
}
