package user

import (
	"context"
	"errors"
)

var validThemes = map[string]bool{"light": true, "dark": true, "system": true}

var ErrInvalidTheme = errors.New("theme must be light, dark or system")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Register(ctx context.Context, email, displayName, hashedPassword string) (User, error) {
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrAlreadyExists
	}

	newUser := &User{
		Email:       email,
		DisplayName: displayName,
		Password:    hashedPassword,
		Theme:       "system",
		ReadingGoal: 24,
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return User{}, err
	}
	return *newUser, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (User, error) {
	if patch.Theme != nil && !validThemes[*patch.Theme] {
		return User{}, ErrInvalidTheme
	}
	return s.repo.UpdateProfile(ctx, userID, patch)
}
