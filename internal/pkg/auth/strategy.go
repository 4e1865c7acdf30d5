package auth

import "time"

// Strategy issues and verifies session tokens carrying a profile id.
type Strategy interface {
	IssueToken(profileID string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
