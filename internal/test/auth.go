package test

import (
	"context"
	"errors"

	"github.com/nebulaeats/nebula/internal/domain/model"
	pkgAuth "github.com/nebulaeats/nebula/internal/pkg/auth"
)

// HasherStub provides deterministic code hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied code.
func (h HasherStub) Hash(code string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(code)
	}
	return "hash:" + code, nil
}

// Compare validates code against stored hash.
func (h HasherStub) Compare(hash string, code string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, code)
	}
	if hash != "hash:"+code {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(string) (string, error)
	ParseFn func(string) (string, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(profileID string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(profileID)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "u-1", nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	ID      string
	Err     error
	ParseFn func(string) (string, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.ID, nil
}

// AuthFacadeStub simulates sign-in facade interactions.
type AuthFacadeStub struct {
	RequestFn func(context.Context, string) error
	VerifyFn  func(context.Context, string, string) (*model.Profile, string, error)
	ParseFn   func(string) (string, error)
	ProfileFn func(context.Context, string) (*model.Profile, error)
}

// RequestCode delegates to the override or succeeds.
func (s AuthFacadeStub) RequestCode(ctx context.Context, email string) error {
	if s.RequestFn != nil {
		return s.RequestFn(ctx, email)
	}
	return nil
}

// VerifyCode returns a token for successful sign-in scenarios.
func (s AuthFacadeStub) VerifyCode(ctx context.Context, email, code string) (*model.Profile, string, error) {
	if s.VerifyFn != nil {
		return s.VerifyFn(ctx, email, code)
	}
	return &model.Profile{ID: "u-1", Email: email}, "token", nil
}

// ParseToken returns the stored identifier for the signed-in user.
func (s AuthFacadeStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "u-1", nil
}

// Profile returns the stored profile for the identifier.
func (s AuthFacadeStub) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.Profile{ID: userID, Email: "user@example.com"}, nil
}

var _ pkgAuth.CodeHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
