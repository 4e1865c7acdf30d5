package usecase

import (
	"context"

	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/domain/model"
)

// CartStore durably persists the whole cart as one record per user.
type CartStore interface {
	Load(ctx context.Context, userID string) (*model.Cart, error)
	Save(ctx context.Context, userID string, cart *model.Cart) error
}

// CartUseCase owns cart mutations. Every mutation persists the new
// state before returning, so the rest of the app never observes a cart
// that would not survive a restart.
type CartUseCase struct {
	store CartStore
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(store CartStore) *CartUseCase {
	return &CartUseCase{store: store}
}

// Get returns the user's current cart.
func (u *CartUseCase) Get(ctx context.Context, userID string) (*model.Cart, error) {
	return u.store.Load(ctx, userID)
}

// AddItem adds one unit of the item to the cart. Items from a different
// restaurant are rejected with ErrRestaurantConflict; the caller must
// Clear first.
func (u *CartUseCase) AddItem(ctx context.Context, userID string, item model.CartLineItem) (*model.Cart, error) {
	cart, err := u.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := cart.Add(item); err != nil {
		return nil, err
	}
	if err := u.store.Save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes the matching line item.
func (u *CartUseCase) RemoveItem(ctx context.Context, userID, itemID string) (*model.Cart, error) {
	cart, err := u.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Remove(itemID)
	if err := u.store.Save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity applies delta to the matching line item's quantity.
func (u *CartUseCase) UpdateQuantity(ctx context.Context, userID, itemID string, delta int) (*model.Cart, error) {
	cart, err := u.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.UpdateQuantity(itemID, delta)
	if err := u.store.Save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart and persists the cleared state.
func (u *CartUseCase) Clear(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := u.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Clear()
	if err := u.store.Save(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func validateCartForCheckout(cart *model.Cart) error {
	if cart.Empty() {
		return domainErrors.ErrCartEmpty
	}
	if cart.RestaurantID == "" {
		return domainErrors.ErrNoRestaurant
	}
	return nil
}
