package usecase

import (
	"context"

	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/domain/model"
	"github.com/nebulaeats/nebula/internal/domain/repository"
)

// ReviewUseCase accepts restaurant feedback for delivered orders, one
// review per user per restaurant.
type ReviewUseCase struct {
	orders  repository.OrderRepository
	reviews repository.ReviewRepository
}

// NewReviewUseCase constructs ReviewUseCase.
func NewReviewUseCase(orders repository.OrderRepository, reviews repository.ReviewRepository) *ReviewUseCase {
	return &ReviewUseCase{orders: orders, reviews: reviews}
}

// Submit records a review for the restaurant of a delivered order.
func (u *ReviewUseCase) Submit(ctx context.Context, userID, orderID string, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domainErrors.ErrInvalidRating
	}

	detail, err := u.orders.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if detail.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	if detail.Status != model.OrderStatusDelivered {
		return nil, domainErrors.ErrNotDelivered
	}

	exists, err := u.reviews.ExistsForRestaurant(ctx, userID, detail.RestaurantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainErrors.ErrAlreadyExists
	}

	review := &model.Review{
		UserID:       userID,
		RestaurantID: detail.RestaurantID,
		Rating:       rating,
		Comment:      comment,
	}
	if err := u.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
