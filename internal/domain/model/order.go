package model

import "time"

// Order describes a placed food order.
type Order struct {
	ID           string
	UserID       string
	RestaurantID string
	Total        float64
	Status       OrderStatus
	ScheduledFor *time.Time
	RewardUsed   bool
	CreatedAt    time.Time
}

// OrderItem is a priced snapshot of one cart line at placement time.
type OrderItem struct {
	ID         string
	OrderID    string
	MenuItemID string
	Quantity   int
	UnitPrice  float64
}

// OrderLine joins an order item with its menu item display fields.
type OrderLine struct {
	OrderItem
	Name     string
	ImageURL string
}

// OrderDetail is an order joined with its restaurant and line items.
type OrderDetail struct {
	Order
	Restaurant Restaurant
	Lines      []OrderLine
}

// StatusEvent is a realtime notification of an order status write.
type StatusEvent struct {
	OrderID    string      `json:"orderId"`
	Status     OrderStatus `json:"status"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// PlacementResult reports the outcome of the checkout workflow.
type PlacementResult struct {
	Success      bool
	OrderID      string
	Total        float64
	PointsEarned int
	Error        string
}

// TrackingUpdate is one state emitted by the order tracker. Detail is
// nil until the reconciling fetch for the carried status completes.
type TrackingUpdate struct {
	Status   OrderStatus
	Progress int
	Detail   *OrderDetail
}
