package usecase

import (
	"context"

	"github.com/nebulaeats/nebula/internal/domain/model"
	"github.com/nebulaeats/nebula/internal/domain/repository"
)

// CatalogUseCase is the read side for restaurants and menus.
type CatalogUseCase struct {
	menu repository.MenuRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(menu repository.MenuRepository) *CatalogUseCase {
	return &CatalogUseCase{menu: menu}
}

// Restaurants lists active restaurants.
func (u *CatalogUseCase) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	return u.menu.ListRestaurants(ctx)
}

// Restaurant fetches one restaurant.
func (u *CatalogUseCase) Restaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	return u.menu.GetRestaurant(ctx, id)
}

// Menu lists available dishes of a restaurant.
func (u *CatalogUseCase) Menu(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	return u.menu.ListMenuItems(ctx, restaurantID)
}

// CartLine resolves a menu item into a cart line snapshot.
func (u *CatalogUseCase) CartLine(ctx context.Context, menuItemID string) (*model.CartLineItem, error) {
	item, err := u.menu.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	return &model.CartLineItem{
		ItemID:       item.ID,
		Name:         item.Name,
		UnitPrice:    item.Price,
		ImageURL:     item.ImageURL,
		RestaurantID: item.RestaurantID,
	}, nil
}
