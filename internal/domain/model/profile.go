package model

import "time"

// Profile represents a signed-in customer and their reward balance.
type Profile struct {
	ID           string
	Email        string
	FullName     string
	RewardPoints int
	CreatedAt    time.Time
}

// OTPCode is a pending one-time sign-in code, hashed at rest.
type OTPCode struct {
	ID        string
	Email     string
	CodeHash  string
	ExpiresAt time.Time
	CreatedAt time.Time
}
