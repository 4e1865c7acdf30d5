package repository

import (
	"context"

	"github.com/nebulaeats/nebula/internal/domain/model"
)

// RewardRepository appends and lists the loyalty ledger.
type RewardRepository interface {
	Append(ctx context.Context, tx *model.RewardTransaction) error
	ListByUser(ctx context.Context, userID string) ([]model.RewardTransaction, error)
}
