package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/nebulaeats/nebula/internal/config"
	domainErrors "github.com/nebulaeats/nebula/internal/domain/errors"
	"github.com/nebulaeats/nebula/internal/domain/model"
	"github.com/nebulaeats/nebula/internal/domain/repository"
	pkgAuth "github.com/nebulaeats/nebula/internal/pkg/auth"
)

// AuthUseCase implements email one-time-code sign-in and session tokens.
// Profiles are created on first successful sign-in.
type AuthUseCase struct {
	profiles repository.ProfileRepository
	codes    repository.OTPRepository
	hasher   pkgAuth.CodeHasher
	tokens   pkgAuth.Strategy
	codeTTL  time.Duration
	logger   *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	profiles repository.ProfileRepository,
	codes repository.OTPRepository,
	hasher pkgAuth.CodeHasher,
	strategy pkgAuth.Strategy,
	cfg *config.Config,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		profiles: profiles,
		codes:    codes,
		hasher:   hasher,
		tokens:   strategy,
		codeTTL:  cfg.OTPCodeTTL,
		logger:   logger,
	}
}

// RequestCode issues a short-lived one-time code for email. Delivery is
// the mail provider's job; without one the code shows up in debug logs.
func (u *AuthUseCase) RequestCode(ctx context.Context, email string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}

	code, err := pkgAuth.GenerateCode()
	if err != nil {
		return err
	}

	hash, err := u.hasher.Hash(code)
	if err != nil {
		return err
	}

	if err := u.codes.Create(ctx, email, hash, time.Now().Add(u.codeTTL)); err != nil {
		return err
	}

	u.logger.Info("sign-in code issued", slog.String("email", email))
	u.logger.Debug("sign-in code", slog.String("email", email), slog.String("code", code))
	return nil
}

// VerifyCode exchanges a valid code for a session token, creating the
// profile on first sign-in. The code is single-use.
func (u *AuthUseCase) VerifyCode(ctx context.Context, email, code string) (*model.Profile, string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, "", err
	}
	if code == "" {
		return nil, "", domainErrors.ErrInvalidCode
	}

	pending, err := u.codes.Latest(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCode
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(pending.CodeHash, code); err != nil {
		return nil, "", domainErrors.ErrInvalidCode
	}

	if err := u.codes.Delete(ctx, pending.ID); err != nil {
		u.logger.Error("delete consumed code failed", slog.String("error", err.Error()))
	}

	profile, err := u.profiles.GetOrCreate(ctx, email)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(profile.ID)
	if err != nil {
		return nil, "", err
	}

	return profile, token, nil
}

// ParseToken extracts the profile id from provided token.
func (u *AuthUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// Profile fetches the signed-in user's profile with its reward balance.
func (u *AuthUseCase) Profile(ctx context.Context, id string) (*model.Profile, error) {
	return u.profiles.GetByID(ctx, id)
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", domainErrors.ErrInvalidEmail
	}
	return email, nil
}
