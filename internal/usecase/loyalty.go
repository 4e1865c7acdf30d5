package usecase

import (
	"context"

	"github.com/nebulaeats/nebula/internal/domain/model"
	"github.com/nebulaeats/nebula/internal/domain/repository"
)

// LoyaltyUseCase reads the append-only reward ledger.
type LoyaltyUseCase struct {
	rewards repository.RewardRepository
}

// NewLoyaltyUseCase constructs LoyaltyUseCase.
func NewLoyaltyUseCase(rewards repository.RewardRepository) *LoyaltyUseCase {
	return &LoyaltyUseCase{rewards: rewards}
}

// History returns reward transactions sorted by time.
func (u *LoyaltyUseCase) History(ctx context.Context, userID string) ([]model.RewardTransaction, error) {
	return u.rewards.ListByUser(ctx, userID)
}
