package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nebulaeats/nebula/internal/domain/model"
)

// CartStoreStub keeps carts in-memory for tests.
type CartStoreStub struct {
	LoadFn  func(context.Context, string) (*model.Cart, error)
	SaveFn  func(context.Context, string, *model.Cart) error
	Carts   map[string]*model.Cart
	SaveErr error
	Saves   int
}

// NewCartStoreStub constructs stub store with initialized map.
func NewCartStoreStub() *CartStoreStub {
	return &CartStoreStub{Carts: make(map[string]*model.Cart)}
}

// Load returns the stored cart or an empty one.
func (s *CartStoreStub) Load(ctx context.Context, userID string) (*model.Cart, error) {
	if s.LoadFn != nil {
		return s.LoadFn(ctx, userID)
	}
	if cart, ok := s.Carts[userID]; ok {
		return cart, nil
	}
	return &model.Cart{}, nil
}

// Save stores the cart unless an error is configured.
func (s *CartStoreStub) Save(ctx context.Context, userID string, cart *model.Cart) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, userID, cart)
	}
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saves++
	s.Carts[userID] = cart
	return nil
}

// StatusPublisherStub records published status events.
type StatusPublisherStub struct {
	PublishFn func(context.Context, model.StatusEvent) error
	mu        sync.Mutex
	Events    []model.StatusEvent
}

// PublishStatus stores the event unless an override is set.
func (s *StatusPublisherStub) PublishStatus(ctx context.Context, ev model.StatusEvent) error {
	if s.PublishFn != nil {
		return s.PublishFn(ctx, ev)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, ev)
	return nil
}

// Published returns a snapshot of recorded events.
func (s *StatusPublisherStub) Published() []model.StatusEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]model.StatusEvent, len(s.Events))
	copy(events, s.Events)
	return events
}

// StatusFeedStub delivers a preconfigured event channel to subscribers.
type StatusFeedStub struct {
	SubscribeFn func(context.Context, string) (<-chan model.StatusEvent, error)
	Ch          chan model.StatusEvent
	Err         error
}

// NewStatusFeedStub constructs a feed with a buffered event channel.
func NewStatusFeedStub() *StatusFeedStub {
	return &StatusFeedStub{Ch: make(chan model.StatusEvent, 8)}
}

// Subscribe returns the configured channel or error.
func (s *StatusFeedStub) Subscribe(ctx context.Context, orderID string) (<-chan model.StatusEvent, error) {
	if s.SubscribeFn != nil {
		return s.SubscribeFn(ctx, orderID)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Ch, nil
}

// WorkerFacadeStub mimics scheduler interactions with the ordering facade.
type WorkerFacadeStub struct {
	Batches      [][]model.Order
	DueFn        func(context.Context, int) ([]model.Order, error)
	NotifyFn     func(context.Context, string, model.OrderStatus) error
	Notified     []OrderStatusCall
	mu           sync.Mutex
	dueCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// DueScheduledOrders returns batches from configured queue.
func (s *WorkerFacadeStub) DueScheduledOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.DueFn != nil {
		return s.DueFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.dueCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// NotifyOrderStatus records notification requests.
func (s *WorkerFacadeStub) NotifyOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if s.NotifyFn != nil {
		return s.NotifyFn(ctx, orderID, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notified = append(s.Notified, OrderStatusCall{OrderID: orderID, Status: status})
	return nil
}

// CartFacadeStub provides controllable behaviour for cart endpoints.
type CartFacadeStub struct {
	CartFn     func(context.Context, string) (*model.Cart, error)
	AddFn      func(context.Context, string, string) (*model.Cart, error)
	RemoveFn   func(context.Context, string, string) (*model.Cart, error)
	QuantityFn func(context.Context, string, string, int) (*model.Cart, error)
	ClearFn    func(context.Context, string) (*model.Cart, error)
}

// Cart delegates to the override or returns an empty cart.
func (s CartFacadeStub) Cart(ctx context.Context, userID string) (*model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return &model.Cart{}, nil
}

// AddToCart delegates to the override or returns a one-line cart.
func (s CartFacadeStub) AddToCart(ctx context.Context, userID, menuItemID string) (*model.Cart, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, menuItemID)
	}
	return &model.Cart{
		RestaurantID: "r-1",
		Items:        []model.CartLineItem{{ItemID: menuItemID, Quantity: 1}},
	}, nil
}

// RemoveFromCart delegates to the override or returns an empty cart.
func (s CartFacadeStub) RemoveFromCart(ctx context.Context, userID, itemID string) (*model.Cart, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, itemID)
	}
	return &model.Cart{}, nil
}

// ChangeQuantity delegates to the override or returns an empty cart.
func (s CartFacadeStub) ChangeQuantity(ctx context.Context, userID, itemID string, delta int) (*model.Cart, error) {
	if s.QuantityFn != nil {
		return s.QuantityFn(ctx, userID, itemID, delta)
	}
	return &model.Cart{}, nil
}

// ClearCart delegates to the override or returns an empty cart.
func (s CartFacadeStub) ClearCart(ctx context.Context, userID string) (*model.Cart, error) {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, userID)
	}
	return &model.Cart{}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn  func(context.Context, string, *time.Time) (*model.PlacementResult, error)
	OrdersFn func(context.Context, string) ([]model.Order, error)
	DetailFn func(context.Context, string, string) (*model.OrderDetail, error)
	TrackFn  func(context.Context, string, string) (<-chan model.TrackingUpdate, error)
	StatusFn func(context.Context, string, model.OrderStatus) error
}

// PlaceOrder delegates to the override or reports success.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, userID string, scheduledFor *time.Time) (*model.PlacementResult, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, userID, scheduledFor)
	}
	return &model.PlacementResult{Success: true, OrderID: "o-1", Total: 100}, nil
}

// Orders returns predefined orders for the given user.
func (s OrderFacadeStub) Orders(ctx context.Context, userID string) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{ID: "o-1", Status: model.OrderStatusPending}}, nil
}

// OrderDetail delegates to the override or returns a pending order.
func (s OrderFacadeStub) OrderDetail(ctx context.Context, userID, orderID string) (*model.OrderDetail, error) {
	if s.DetailFn != nil {
		return s.DetailFn(ctx, userID, orderID)
	}
	return &model.OrderDetail{Order: model.Order{ID: orderID, Status: model.OrderStatusPending}}, nil
}

// TrackOrder delegates to the override or returns a closed stream.
func (s OrderFacadeStub) TrackOrder(ctx context.Context, userID, orderID string) (<-chan model.TrackingUpdate, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, userID, orderID)
	}
	ch := make(chan model.TrackingUpdate)
	close(ch)
	return ch, nil
}

// RequestStatus delegates to the override or succeeds.
func (s OrderFacadeStub) RequestStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if s.StatusFn != nil {
		return s.StatusFn(ctx, orderID, status)
	}
	return nil
}

// CatalogFacadeStub simulates catalog and review operations.
type CatalogFacadeStub struct {
	RestaurantsFn func(context.Context) ([]model.Restaurant, error)
	MenuFn        func(context.Context, string) ([]model.MenuItem, error)
	ReviewFn      func(context.Context, string, string, int, string) (*model.Review, error)
	RewardsFn     func(context.Context, string) ([]model.RewardTransaction, error)
}

// Restaurants returns preconfigured venues.
func (s CatalogFacadeStub) Restaurants(ctx context.Context) ([]model.Restaurant, error) {
	if s.RestaurantsFn != nil {
		return s.RestaurantsFn(ctx)
	}
	return []model.Restaurant{{ID: "r-1", Name: "Nebula Diner"}}, nil
}

// Menu returns preconfigured dishes.
func (s CatalogFacadeStub) Menu(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	if s.MenuFn != nil {
		return s.MenuFn(ctx, restaurantID)
	}
	return []model.MenuItem{{ID: "m-1", RestaurantID: restaurantID, Name: "Ramen", Price: 120}}, nil
}

// SubmitReview delegates to the override or succeeds.
func (s CatalogFacadeStub) SubmitReview(ctx context.Context, userID, orderID string, rating int, comment string) (*model.Review, error) {
	if s.ReviewFn != nil {
		return s.ReviewFn(ctx, userID, orderID, rating, comment)
	}
	return &model.Review{ID: "rev-1", UserID: userID, Rating: rating, Comment: comment}, nil
}

// RewardHistory returns the preconfigured ledger.
func (s CatalogFacadeStub) RewardHistory(ctx context.Context, userID string) ([]model.RewardTransaction, error) {
	if s.RewardsFn != nil {
		return s.RewardsFn(ctx, userID)
	}
	return []model.RewardTransaction{{OrderID: "o-1", PointsEarned: 10, CreatedAt: time.Unix(0, 0)}}, nil
}

// OrderingFacadeStub aggregates facade dependencies for HTTP layer tests.
type OrderingFacadeStub struct {
	AuthFacadeStub
	CartFacadeStub
	OrderFacadeStub
	CatalogFacadeStub
}
