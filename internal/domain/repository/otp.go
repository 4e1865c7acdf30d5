package repository

import (
	"context"
	"time"

	"github.com/nebulaeats/nebula/internal/domain/model"
)

// OTPRepository stores pending one-time sign-in codes.
type OTPRepository interface {
	Create(ctx context.Context, email, codeHash string, expiresAt time.Time) error
	// Latest returns the most recent unexpired code for email.
	Latest(ctx context.Context, email string) (*model.OTPCode, error)
	Delete(ctx context.Context, id string) error
}
