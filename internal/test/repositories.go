package test

import (
	"context"
	"time"

	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/domain/model"
)

// ProfileRepositoryStub stores profiles in-memory for tests.
type ProfileRepositoryStub struct {
	ByID    map[string]*model.Profile
	ByEmail map[string]*model.Profile
	Next    int
	Err     error
	AddErr  error
}

// NewProfileRepositoryStub constructs stub repository with initialized maps.
func NewProfileRepositoryStub() *ProfileRepositoryStub {
	return &ProfileRepositoryStub{
		ByID:    make(map[string]*model.Profile),
		ByEmail: make(map[string]*model.Profile),
		Next:    1,
	}
}

// Seed registers a profile under both lookup keys.
func (s *ProfileRepositoryStub) Seed(p *model.Profile) {
	s.ByID[p.ID] = p
	s.ByEmail[p.Email] = p
}

// GetByID fetches profile by identifier or returns not found.
func (s *ProfileRepositoryStub) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.ByID[id]; ok {
		return p, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetOrCreate returns an existing profile for email or registers a new one.
func (s *ProfileRepositoryStub) GetOrCreate(ctx context.Context, email string) (*model.Profile, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.ByEmail[email]; ok {
		return p, nil
	}
	p := &model.Profile{ID: RandomASCIIString(8, 8), Email: email}
	s.Next++
	s.Seed(p)
	return p, nil
}

// AddRewardPoints increments the stored balance.
func (s *ProfileRepositoryStub) AddRewardPoints(ctx context.Context, id string, points int) error {
	if s.AddErr != nil {
		return s.AddErr
	}
	p, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	p.RewardPoints += points
	return nil
}

// OrderStatusCall stores information about UpdateStatus invocations.
type OrderStatusCall struct {
	OrderID string
	Status  model.OrderStatus
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn             func(context.Context, *model.Order) error
	AddItemsFn           func(context.Context, string, []model.OrderItem) error
	GetDetailFn          func(context.Context, string) (*model.OrderDetail, error)
	ListByUserFn         func(context.Context, string) ([]model.Order, error)
	UpdateStatusFn       func(context.Context, string, model.OrderStatus) error
	SelectDueScheduledFn func(context.Context, int) ([]model.Order, error)

	Created     []model.Order
	ItemCalls   [][]model.OrderItem
	Orders      []model.Order
	Detail      *model.OrderDetail
	Due         []model.Order
	UpdateCalls []OrderStatusCall
}

// Create tracks invocations and assigns a fresh id when missing.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if order.ID == "" {
		order.ID = RandomASCIIString(8, 8)
	}
	order.CreatedAt = time.Now()
	s.Created = append(s.Created, *order)
	return nil
}

// AddItems records inserted line item batches.
func (s *OrderRepositoryStub) AddItems(ctx context.Context, orderID string, items []model.OrderItem) error {
	if s.AddItemsFn != nil {
		return s.AddItemsFn(ctx, orderID, items)
	}
	s.ItemCalls = append(s.ItemCalls, items)
	return nil
}

// GetDetail returns configured detail or not found.
func (s *OrderRepositoryStub) GetDetail(ctx context.Context, orderID string) (*model.OrderDetail, error) {
	if s.GetDetailFn != nil {
		return s.GetDetailFn(ctx, orderID)
	}
	if s.Detail == nil {
		return nil, domainErrors.ErrNotFound
	}
	return s.Detail, nil
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	return s.Orders, nil
}

// UpdateStatus records update invocations.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	s.UpdateCalls = append(s.UpdateCalls, OrderStatusCall{OrderID: orderID, Status: status})
	return nil
}

// SelectDueScheduled returns queued orders for promotion.
func (s *OrderRepositoryStub) SelectDueScheduled(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectDueScheduledFn != nil {
		return s.SelectDueScheduledFn(ctx, limit)
	}
	return s.Due, nil
}

// RewardRepositoryStub stores loyalty ledger rows for tests.
type RewardRepositoryStub struct {
	AppendFn func(context.Context, *model.RewardTransaction) error
	ListFn   func(context.Context, string) ([]model.RewardTransaction, error)
	Items    []model.RewardTransaction
}

// Append records the transaction unless an override is set.
func (s *RewardRepositoryStub) Append(ctx context.Context, tx *model.RewardTransaction) error {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, tx)
	}
	s.Items = append(s.Items, *tx)
	return nil
}

// ListByUser returns configured ledger entries.
func (s *RewardRepositoryStub) ListByUser(ctx context.Context, userID string) ([]model.RewardTransaction, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return s.Items, nil
}

// ReviewRepositoryStub lets tests control review persistence.
type ReviewRepositoryStub struct {
	CreateFn func(context.Context, *model.Review) error
	ExistsFn func(context.Context, string, string) (bool, error)
	Created  []model.Review
	Exists   bool
}

// Create records the review unless an override is set.
func (s *ReviewRepositoryStub) Create(ctx context.Context, review *model.Review) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, review)
	}
	s.Created = append(s.Created, *review)
	return nil
}

// ExistsForRestaurant reports the configured duplicate flag.
func (s *ReviewRepositoryStub) ExistsForRestaurant(ctx context.Context, userID, restaurantID string) (bool, error) {
	if s.ExistsFn != nil {
		return s.ExistsFn(ctx, userID, restaurantID)
	}
	return s.Exists, nil
}

// MenuRepositoryStub serves catalog reads from configured slices.
type MenuRepositoryStub struct {
	Restaurants []model.Restaurant
	Items       []model.MenuItem
	Err         error
}

// ListRestaurants returns configured venues.
func (s *MenuRepositoryStub) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Restaurants, nil
}

// GetRestaurant finds a configured venue by id.
func (s *MenuRepositoryStub) GetRestaurant(ctx context.Context, id string) (*model.Restaurant, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, r := range s.Restaurants {
		if r.ID == id {
			restaurant := r
			return &restaurant, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListMenuItems returns configured dishes for the venue.
func (s *MenuRepositoryStub) ListMenuItems(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	items := make([]model.MenuItem, 0, len(s.Items))
	for _, it := range s.Items {
		if it.RestaurantID == restaurantID {
			items = append(items, it)
		}
	}
	return items, nil
}

// GetMenuItem finds a configured dish by id.
func (s *MenuRepositoryStub) GetMenuItem(ctx context.Context, id string) (*model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, it := range s.Items {
		if it.ID == id {
			item := it
			return &item, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// OTPRepositoryStub keeps pending sign-in codes per email.
type OTPRepositoryStub struct {
	Codes   map[string]*model.OTPCode
	Deleted []string
	Err     error
}

// NewOTPRepositoryStub constructs stub repository with initialized map.
func NewOTPRepositoryStub() *OTPRepositoryStub {
	return &OTPRepositoryStub{Codes: make(map[string]*model.OTPCode)}
}

// Create stores the latest code for email.
func (s *OTPRepositoryStub) Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error {
	if s.Err != nil {
		return s.Err
	}
	s.Codes[email] = &model.OTPCode{
		ID:        RandomASCIIString(8, 8),
		Email:     email,
		CodeHash:  codeHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

// Latest returns the stored code for email or not found.
func (s *OTPRepositoryStub) Latest(ctx context.Context, email string) (*model.OTPCode, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if code, ok := s.Codes[email]; ok {
		return code, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Delete records consumed code identifiers.
func (s *OTPRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	s.Deleted = append(s.Deleted, id)
	for email, code := range s.Codes {
		if code.ID == id {
			delete(s.Codes, email)
		}
	}
	return nil
}
