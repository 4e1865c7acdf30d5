package repository

import (
	"context"

	"github.com/nebulaeats/nebula/internal/domain/model"
)

// ProfileRepository manages customer profiles and their reward balance.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*model.Profile, error)
	// GetOrCreate returns the profile for email, creating it on first sign-in.
	GetOrCreate(ctx context.Context, email string) (*model.Profile, error)
	AddRewardPoints(ctx context.Context, id string, points int) error
}
