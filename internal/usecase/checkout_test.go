package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/nebulaeats/nebula/internal/config"
	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/domain/model"
	testhelpers "github.com/nebulaeats/nebula/internal/test"
)

type checkoutFixture struct {
	store    *testhelpers.CartStoreStub
	profiles *testhelpers.ProfileRepositoryStub
	orders   *testhelpers.OrderRepositoryStub
	rewards  *testhelpers.RewardRepositoryStub
	uc       *CheckoutUseCase
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := testhelpers.NewCartStoreStub()
	profiles := testhelpers.NewProfileRepositoryStub()
	profiles.Seed(&model.Profile{ID: "u-1", Email: "user@example.com"})
	orders := &testhelpers.OrderRepositoryStub{}
	rewards := &testhelpers.RewardRepositoryStub{}
	cfg := &config.Config{DeliveryFee: 50, RewardPoints: 10}
	uc := NewCheckoutUseCase(NewCartUseCase(store), profiles, orders, rewards, cfg, logger)
	return &checkoutFixture{store: store, profiles: profiles, orders: orders, rewards: rewards, uc: uc}
}

func (f *checkoutFixture) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	cartUC := NewCartUseCase(f.store)
	if _, err := cartUC.AddItem(ctx, "u-1", cartLine("a", "r-1", 120)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cartUC.AddItem(ctx, "u-1", cartLine("a", "r-1", 120)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cartUC.AddItem(ctx, "u-1", cartLine("b", "r-1", 80)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)

	result, err := f.uc.PlaceOrder(context.Background(), "u-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected successful placement, got error %q", result.Error)
	}
	if result.Total != 370 {
		t.Fatalf("expected total 370 with delivery fee, got %v", result.Total)
	}
	if result.PointsEarned != 10 {
		t.Fatalf("expected 10 points earned, got %d", result.PointsEarned)
	}

	if len(f.orders.Created) != 1 {
		t.Fatalf("expected one order created, got %d", len(f.orders.Created))
	}
	created := f.orders.Created[0]
	if created.Status != model.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", created.Status)
	}
	if created.RestaurantID != "r-1" {
		t.Fatalf("unexpected restaurant %s", created.RestaurantID)
	}
	if len(f.orders.ItemCalls) != 1 || len(f.orders.ItemCalls[0]) != 2 {
		t.Fatalf("expected two line items inserted, got %+v", f.orders.ItemCalls)
	}
	if len(f.rewards.Items) != 1 || f.rewards.Items[0].PointsEarned != 10 {
		t.Fatalf("expected loyalty ledger entry, got %+v", f.rewards.Items)
	}
	if f.profiles.ByID["u-1"].RewardPoints != 10 {
		t.Fatalf("expected balance 10, got %d", f.profiles.ByID["u-1"].RewardPoints)
	}

	cart, _ := f.store.Load(context.Background(), "u-1")
	if !cart.Empty() {
		t.Fatal("cart must be cleared after placement")
	}
}

func TestPlaceOrderScheduled(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)

	at := time.Now().Add(2 * time.Hour)
	result, err := f.uc.PlaceOrder(context.Background(), "u-1", &at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	created := f.orders.Created[0]
	if created.Status != model.OrderStatusScheduled {
		t.Fatalf("expected scheduled status, got %s", created.Status)
	}
	if created.ScheduledFor == nil || !created.ScheduledFor.Equal(at) {
		t.Fatalf("expected scheduled time carried, got %v", created.ScheduledFor)
	}
}

func TestPlaceOrderPastScheduleIsImmediate(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)

	at := time.Now().Add(-time.Hour)
	result, err := f.uc.PlaceOrder(context.Background(), "u-1", &at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	created := f.orders.Created[0]
	if created.Status != model.OrderStatusPending {
		t.Fatalf("past fulfillment time must place immediately, got %s", created.Status)
	}
	if created.ScheduledFor != nil {
		t.Fatalf("expected no scheduled time on an immediate order, got %v", created.ScheduledFor)
	}
}

func TestPlaceOrderCriticalFailureKeepsCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)
	f.orders.AddItemsFn = func(context.Context, string, []model.OrderItem) error {
		return errors.New("insert failed")
	}

	result, err := f.uc.PlaceOrder(context.Background(), "u-1", nil)
	if err != nil {
		t.Fatalf("critical failure must be reported via result, got error %v", err)
	}
	if result.Success {
		t.Fatal("expected failed placement")
	}
	if result.Error == "" {
		t.Fatal("expected error message in result")
	}
	if result.PointsEarned != 0 {
		t.Fatalf("no points must be awarded on failure, got %d", result.PointsEarned)
	}
	if len(f.rewards.Items) != 0 {
		t.Fatal("loyalty step must not run after a critical failure")
	}

	cart, _ := f.store.Load(context.Background(), "u-1")
	if cart.Empty() {
		t.Fatal("cart must survive a failed placement for retry")
	}
}

func TestPlaceOrderLoyaltyFailureStillSucceeds(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)
	f.profiles.AddErr = errors.New("balance update failed")

	result, err := f.uc.PlaceOrder(context.Background(), "u-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("loyalty failure must not fail placement, got %q", result.Error)
	}
	if result.PointsEarned != 0 {
		t.Fatalf("expected zero points on loyalty failure, got %d", result.PointsEarned)
	}

	cart, _ := f.store.Load(context.Background(), "u-1")
	if !cart.Empty() {
		t.Fatal("cart must be cleared after the critical steps succeed")
	}
}

func TestPlaceOrderLedgerFailureKeepsPoints(t *testing.T) {
	f := newCheckoutFixture(t)
	f.fillCart(t)
	f.rewards.AppendFn = func(context.Context, *model.RewardTransaction) error {
		return errors.New("ledger down")
	}

	result, err := f.uc.PlaceOrder(context.Background(), "u-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if result.PointsEarned != 10 {
		t.Fatalf("balance was updated, expected 10 points, got %d", result.PointsEarned)
	}
}

func TestPlaceOrderPreconditions(t *testing.T) {
	f := newCheckoutFixture(t)

	if _, err := f.uc.PlaceOrder(context.Background(), "", nil); err != domainErrors.ErrNotSignedIn {
		t.Fatalf("expected not signed in, got %v", err)
	}
	if _, err := f.uc.PlaceOrder(context.Background(), "ghost", nil); err != domainErrors.ErrNotSignedIn {
		t.Fatalf("expected not signed in for unknown profile, got %v", err)
	}
	if _, err := f.uc.PlaceOrder(context.Background(), "u-1", nil); err != domainErrors.ErrCartEmpty {
		t.Fatalf("expected empty cart error, got %v", err)
	}
	if len(f.orders.Created) != 0 {
		t.Fatal("no order may be created when preconditions fail")
	}
}
