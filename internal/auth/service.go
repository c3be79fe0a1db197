package auth

import (
	"context"
	"errors"
	"time"

	"booktrack/internal/platform/crypto"
	"booktrack/internal/user"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotAllowed means the allow-list is configured and the email is
	// not on it.
	ErrNotAllowed = errors.New("email is not on the allow list")
)

type Service struct {
	secret   string
	tokenTTL time.Duration
	users    *user.Service
	policy   *Policy
}

func NewService(secret string, tokenTTL time.Duration, users *user.Service, policy *Policy) *Service {
	return &Service{
		secret:   secret,
		tokenTTL: tokenTTL,
		users:    users,
		policy:   policy,
	}
}

// Register creates an account for an allowed email and returns it with a
// signed access token.
func (s *Service) Register(ctx context.Context, email, displayName, password string) (user.User, string, error) {
	decision, err := s.policy.Decide(ctx, email)
	if err != nil {
		return user.User{}, "", err
	}
	if !decision.Allowed() {
		return user.User{}, "", ErrNotAllowed
	}

	if err := crypto.ValidatePasswordStrength(password); err != nil {
		return user.User{}, "", err
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return user.User{}, "", err
	}

	u, err := s.users.Register(ctx, email, displayName, hash)
	if err != nil {
		return user.User{}, "", err
	}

	token, err := crypto.GenerateToken(s.secret, u.ID, u.Email, s.tokenTTL)
	if err != nil {
		return user.User{}, "", err
	}
	return u, token, nil
}

// Login authenticates an existing account. The allow-list is not
// re-checked here: accounts registered before the list was tightened
// keep working.
func (s *Service) Login(ctx context.Context, email, password string) (user.User, string, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !crypto.VerifyPassword(u.Password, password) {
		return user.User{}, "", ErrUnauthorized
	}

	token, err := crypto.GenerateToken(s.secret, u.ID, u.Email, s.tokenTTL)
	if err != nil {
		return user.User{}, "", err
	}
	return u, token, nil
}

// CheckEmail reports whether an email could sign up right now; the signup
// form uses it before asking for a password.
func (s *Service) CheckEmail(ctx context.Context, email string) (bool, error) {
	decision, err := s.policy.Decide(ctx, email)
	if err != nil {
		return false, err
	}
	return decision.Allowed(), nil
}
