package dto

import "time"

// PlaceOrderRequest submits the current cart for checkout.
type PlaceOrderRequest struct {
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
}

// PlacementResponse reports the checkout outcome.
type PlacementResponse struct {
	Success      bool    `json:"success"`
	OrderID      string  `json:"order_id,omitempty"`
	Total        float64 `json:"total,omitempty"`
	PointsEarned int     `json:"points_earned"`
	Error        string  `json:"error,omitempty"`
}

// OrderResponse describes one order in a listing.
type OrderResponse struct {
	ID           string     `json:"id"`
	RestaurantID string     `json:"restaurant_id"`
	Total        float64    `json:"total"`
	Status       string     `json:"status"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// OrderLineResponse is one line of an order detail.
type OrderLineResponse struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

// OrderDetailResponse is an order joined with restaurant and lines.
type OrderDetailResponse struct {
	OrderResponse
	Restaurant RestaurantResponse  `json:"restaurant"`
	Lines      []OrderLineResponse `json:"lines"`
	Progress   int                 `json:"progress"`
}

// StatusRequest asks for an order status transition.
type StatusRequest struct {
	Status string `json:"status"`
}

// TrackingEventResponse is one server-sent tracking update.
type TrackingEventResponse struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
}
