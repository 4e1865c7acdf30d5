package model

import "time"

// RewardTransaction records points earned for one order. Append-only.
type RewardTransaction struct {
	ID           string
	UserID       string
	OrderID      string
	PointsEarned int
	CreatedAt    time.Time
}
