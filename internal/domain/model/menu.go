package model

import "time"

// Restaurant describes a venue customers order from.
type Restaurant struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	IsActive    bool
	CreatedAt   time.Time
}

// MenuItem is one orderable dish of a restaurant.
type MenuItem struct {
	ID           string
	RestaurantID string
	Name         string
	Description  string
	Price        float64
	ImageURL     string
	IsAvailable  bool
}
