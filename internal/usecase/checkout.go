package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nebulaeats/nebula/internal/config"
	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/domain/model"
	"github.com/nebulaeats/nebula/internal/domain/repository"
)

// CheckoutUseCase orchestrates order placement as a best-effort saga.
// Order and line item creation are critical steps; the loyalty award is
// best-effort and never fails the placement. No client-side compensation
// is attempted: a line item failure leaves the order row in place and is
// logged for operator visibility.
type CheckoutUseCase struct {
	cart         *CartUseCase
	profiles     repository.ProfileRepository
	orders       repository.OrderRepository
	rewards      repository.RewardRepository
	deliveryFee  float64
	rewardPoints int
	logger       *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	cart *CartUseCase,
	profiles repository.ProfileRepository,
	orders repository.OrderRepository,
	rewards repository.RewardRepository,
	cfg *config.Config,
	logger *slog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		cart:         cart,
		profiles:     profiles,
		orders:       orders,
		rewards:      rewards,
		deliveryFee:  cfg.DeliveryFee,
		rewardPoints: cfg.RewardPoints,
		logger:       logger,
	}
}

// sagaStep is one named remote write of the placement sequence.
// Critical step failures abort the workflow and produce a failed
// result; non-critical failures are logged and skipped over.
type sagaStep struct {
	name     string
	critical bool
	run      func(ctx context.Context) error
}

// PlaceOrder validates preconditions, snapshots the cart, and executes
// the placement sequence. Precondition violations are returned as
// errors before any remote write; remote failures of critical steps are
// converted into a failed PlacementResult.
func (u *CheckoutUseCase) PlaceOrder(ctx context.Context, userID string, scheduledFor *time.Time) (*model.PlacementResult, error) {
	if userID == "" {
		return nil, domainErrors.ErrNotSignedIn
	}
	profile, err := u.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotSignedIn
		}
		return nil, err
	}

	cart, err := u.cart.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := validateCartForCheckout(cart); err != nil {
		return nil, err
	}

	// Only a future fulfillment time defers the order; a past or
	// current one places it immediately.
	if scheduledFor != nil && !scheduledFor.After(time.Now()) {
		scheduledFor = nil
	}
	status := model.OrderStatusPending
	if scheduledFor != nil {
		status = model.OrderStatusScheduled
	}

	// Snapshot the cart before the first remote write: later cart
	// mutations must not affect the in-flight submission.
	order := &model.Order{
		UserID:       profile.ID,
		RestaurantID: cart.RestaurantID,
		Total:        cart.TotalPrice() + u.deliveryFee,
		Status:       status,
		ScheduledFor: scheduledFor,
	}
	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, model.OrderItem{
			MenuItemID: line.ItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		})
	}

	pointsEarned := 0
	steps := []sagaStep{
		{
			name:     "create order",
			critical: true,
			run: func(ctx context.Context) error {
				return u.orders.Create(ctx, order)
			},
		},
		{
			name:     "create line items",
			critical: true,
			run: func(ctx context.Context) error {
				return u.orders.AddItems(ctx, order.ID, items)
			},
		},
		{
			name: "award loyalty points",
			run: func(ctx context.Context) error {
				if err := u.profiles.AddRewardPoints(ctx, profile.ID, u.rewardPoints); err != nil {
					return err
				}
				pointsEarned = u.rewardPoints
				entry := &model.RewardTransaction{
					UserID:       profile.ID,
					OrderID:      order.ID,
					PointsEarned: u.rewardPoints,
				}
				if err := u.rewards.Append(ctx, entry); err != nil {
					// Points are already on the balance; only the ledger
					// entry is missing.
					u.logger.Error("loyalty ledger append failed",
						slog.String("order", order.ID),
						slog.String("error", err.Error()))
				}
				return nil
			},
		},
	}

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			if step.critical {
				u.logger.Error("order placement failed",
					slog.String("step", step.name),
					slog.String("order", order.ID),
					slog.String("error", err.Error()))
				return &model.PlacementResult{Error: err.Error()}, nil
			}
			u.logger.Error("loyalty award failed",
				slog.String("order", order.ID),
				slog.String("error", err.Error()))
		}
	}

	// The order is placed once the critical steps succeeded; a failed
	// cart clear must not unplace it.
	if _, err := u.cart.Clear(ctx, userID); err != nil {
		u.logger.Error("cart clear after placement failed",
			slog.String("order", order.ID),
			slog.String("error", err.Error()))
	}

	return &model.PlacementResult{
		Success:      true,
		OrderID:      order.ID,
		Total:        order.Total,
		PointsEarned: pointsEarned,
	}, nil
}
