package app

import (
	"context"
	"time"

	"github.com/nebulaeats/nebula/internal/domain/model"
	"github.com/nebulaeats/nebula/internal/usecase"
)

// OrderingFacade aggregates the application use cases behind one surface
// consumed by the HTTP handlers and the scheduler worker.
type OrderingFacade struct {
	auth     *usecase.AuthUseCase
	cart     *usecase.CartUseCase
	catalog  *usecase.CatalogUseCase
	checkout *usecase.CheckoutUseCase
	orders   *usecase.OrderUseCase
	tracking *usecase.TrackingUseCase
	reviews  *usecase.ReviewUseCase
	loyalty  *usecase.LoyaltyUseCase
}

// NewOrderingFacade constructs OrderingFacade.
func NewOrderingFacade(
	auth *usecase.AuthUseCase,
	cart *usecase.CartUseCase,
	catalog *usecase.CatalogUseCase,
	checkout *usecase.CheckoutUseCase,
	orders *usecase.OrderUseCase,
	tracking *usecase.TrackingUseCase,
	reviews *usecase.ReviewUseCase,
	loyalty *usecase.LoyaltyUseCase,
) *OrderingFacade {
	return &OrderingFacade{
		auth:     auth,
		cart:     cart,
		catalog:  catalog,
		checkout: checkout,
		orders:   orders,
		tracking: tracking,
		reviews:  reviews,
		loyalty:  loyalty,
	}
}

func (f *OrderingFacade) RequestCode(ctx context.Context, email string) error {
	return f.auth.RequestCode(ctx, email)
}

func (f *OrderingFacade) VerifyCode(ctx context.Context, email, code string) (*model.Profile, string, error) {
	return f.auth.VerifyCode(ctx, email, code)
}

func (f *OrderingFacade) ParseToken(token string) (string, error) {
	return f.auth.ParseToken(token)
}

func (f *OrderingFacade) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	return f.auth.Profile(ctx, userID)
}

func (f *OrderingFacade) Cart(ctx context.Context, userID string) (*model.Cart, error) {
	return f.cart.Get(ctx, userID)
}

// AddToCart resolves the menu item and adds one unit of it to the cart.
func (f *OrderingFacade) AddToCart(ctx context.Context, userID, menuItemID string) (*model.Cart, error) {
	line, err := f.catalog.CartLine(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	return f.cart.AddItem(ctx, userID, *line)
}

func (f *OrderingFacade) RemoveFromCart(ctx context.Context, userID, itemID string) (*model.Cart, error) {
	return f.cart.RemoveItem(ctx, userID, itemID)
}

func (f *OrderingFacade) ChangeQuantity(ctx context.Context, userID, itemID string, delta int) (*model.Cart, error) {
	return f.cart.UpdateQuantity(ctx, userID, itemID, delta)
}

func (f *OrderingFacade) ClearCart(ctx context.Context, userID string) (*model.Cart, error) {
	return f.cart.Clear(ctx, userID)
}

func (f *OrderingFacade) PlaceOrder(ctx context.Context, userID string, scheduledFor *time.Time) (*model.PlacementResult, error) {
	return f.checkout.PlaceOrder(ctx, userID, scheduledFor)
}

func (f *OrderingFacade) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID)
}

func (f *OrderingFacade) OrderDetail(ctx context.Context, userID, orderID string) (*model.OrderDetail, error) {
	return f.orders.GetForUser(ctx, userID, orderID)
}

// TrackOrder opens a live tracking stream after an ownership check.
func (f *OrderingFacade) TrackOrder(ctx context.Context, userID, orderID string) (<-chan model.TrackingUpdate, error) {
	if _, err := f.orders.GetForUser(ctx, userID, orderID); err != nil {
		return nil, err
	}
	return f.tracking.Track(ctx, orderID)
}

func (f *OrderingFacade) RequestStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	return f.orders.RequestTransition(ctx, orderID, status)
}

func (f *OrderingFacade) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	return f.catalog.Restaurants(ctx)
}

func (f *OrderingFacade) Menu(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	return f.catalog.Menu(ctx, restaurantID)
}

func (f *OrderingFacade) SubmitReview(ctx context.Context, userID, orderID string, rating int, comment string) (*model.Review, error) {
	return f.reviews.Submit(ctx, userID, orderID, rating, comment)
}

func (f *OrderingFacade) RewardHistory(ctx context.Context, userID string) ([]model.RewardTransaction, error) {
	return f.loyalty.History(ctx, userID)
}

func (f *OrderingFacade) DueScheduledOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.DueScheduled(ctx, limit)
}

func (f *OrderingFacade) NotifyOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	return f.orders.NotifyStatus(ctx, orderID, status)
}
