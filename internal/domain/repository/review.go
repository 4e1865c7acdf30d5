package repository

import (
	"context"

	"github.com/nebulaeats/nebula/internal/domain/model"
)

// ReviewRepository stores restaurant reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ExistsForRestaurant(ctx context.Context, userID, restaurantID string) (bool, error)
}
