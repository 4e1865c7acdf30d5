package handlers

import (
	"context"
	"time"

	"github.com/nebulaeats/nebula/internal/domain/model"
)

// AuthFacade describes sign-in capabilities required by handlers.
type AuthFacade interface {
	RequestCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (*model.Profile, string, error)
	ParseToken(token string) (string, error)
	Profile(ctx context.Context, userID string) (*model.Profile, error)
}

// CartFacade encapsulates cart operations exposed via HTTP.
type CartFacade interface {
	Cart(ctx context.Context, userID string) (*model.Cart, error)
	AddToCart(ctx context.Context, userID, menuItemID string) (*model.Cart, error)
	RemoveFromCart(ctx context.Context, userID, itemID string) (*model.Cart, error)
	ChangeQuantity(ctx context.Context, userID, itemID string, delta int) (*model.Cart, error)
	ClearCart(ctx context.Context, userID string) (*model.Cart, error)
}

// OrderFacade covers checkout, order history, and live tracking.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, userID string, scheduledFor *time.Time) (*model.PlacementResult, error)
	Orders(ctx context.Context, userID string) ([]model.Order, error)
	OrderDetail(ctx context.Context, userID, orderID string) (*model.OrderDetail, error)
	TrackOrder(ctx context.Context, userID, orderID string) (<-chan model.TrackingUpdate, error)
	RequestStatus(ctx context.Context, orderID string, status model.OrderStatus) error
}

// CatalogFacade provides restaurant and menu reads plus reviews and rewards.
type CatalogFacade interface {
	Restaurants(ctx context.Context) ([]model.Restaurant, error)
	Menu(ctx context.Context, restaurantID string) ([]model.MenuItem, error)
	SubmitReview(ctx context.Context, userID, orderID string, rating int, comment string) (*model.Review, error)
	RewardHistory(ctx context.Context, userID string) ([]model.RewardTransaction, error)
}

// OrderingFacade aggregates the full set of operations used across handlers.
type OrderingFacade interface {
	AuthFacade
	CartFacade
	OrderFacade
	CatalogFacade
}
