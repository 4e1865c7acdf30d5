package model

import "time"

// Review is customer feedback for a restaurant, one per user per venue.
type Review struct {
	ID           string
	UserID       string
	RestaurantID string
	Rating       int
	Comment      string
	CreatedAt    time.Time
}
