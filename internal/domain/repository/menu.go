package repository

import (
	"context"

	"github.com/nebulaeats/nebula/internal/domain/model"
)

// MenuRepository is the read side for restaurants and their dishes.
type MenuRepository interface {
	ListRestaurants(ctx context.Context) ([]model.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error)
	ListMenuItems(ctx context.Context, restaurantID string) ([]model.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*model.MenuItem, error)
}
