package library

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	ErrTitleRequired  = errors.New("title is required")
	ErrAuthorRequired = errors.New("author is required")
)

// Service owns the write path for a user's library. Every successful
// mutation publishes a fresh snapshot through the hub so watchers see a
// full replacement, never a diff.
type Service struct {
	repo   Repository
	hub    *Hub
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, hub *Hub, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		hub:    hub,
		logger: logger,
		now:    time.Now,
	}
}

// Create stores a new record. ID and AddedAt are assigned by the store;
// a record created directly in the finished category gets FinishedAt set
// up front.
func (s *Service) Create(ctx context.Context, b *Book) error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(b.Author) == "" {
		return ErrAuthorRequired
	}
	if _, err := ParseCategory(string(b.Category)); err != nil {
		return err
	}
	if err := validateRating(b.Rating); err != nil {
		return err
	}

	if b.Category == CategoryFinished && b.FinishedAt == nil {
		now := s.now()
		b.FinishedAt = &now
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return err
	}
	s.publish(ctx, b.OwnerID)
	return nil
}

func (s *Service) Get(ctx context.Context, id, ownerID string) (Book, error) {
	return s.repo.GetByID(ctx, id, ownerID)
}

// List returns the owner's books, newest added first, optionally filtered
// by category.
func (s *Service) List(ctx context.Context, ownerID string, category *Category) ([]Book, error) {
	return s.repo.ListByOwner(ctx, ownerID, category)
}

// Update applies a partial update. The first transition into the finished
// category stamps FinishedAt; later updates leave it alone.
func (s *Service) Update(ctx context.Context, id, ownerID string, p Patch) (Book, error) {
	if err := validateRating(p.Rating); err != nil {
		return Book{}, err
	}

	b, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return Book{}, err
	}

	if p.Category != nil {
		if _, err := ParseCategory(string(*p.Category)); err != nil {
			return Book{}, err
		}
		if *p.Category == CategoryFinished && b.FinishedAt == nil {
			now := s.now()
			b.FinishedAt = &now
		}
		b.Category = *p.Category
	}
	if p.Rating != nil {
		b.Rating = p.Rating
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}

	if err := s.repo.Update(ctx, &b); err != nil {
		return Book{}, err
	}
	s.publish(ctx, ownerID)
	return b, nil
}

// Delete removes a record permanently. There is no soft delete.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.publish(ctx, ownerID)
	return nil
}

// Subscribe attaches a watcher for the owner's shelf. The caller must
// Cancel the subscription when done.
func (s *Service) Subscribe(ctx context.Context, ownerID string, category *Category) (*Subscription, error) {
	sub := s.hub.Subscribe(ownerID, category)

	// Seed with the current snapshot so watchers do not wait for the
	// first mutation.
	books, err := s.repo.ListByOwner(ctx, ownerID, nil)
	if err != nil {
		sub.Cancel()
		return nil, err
	}
	s.hub.publishTo(sub, books)
	return sub, nil
}

func (s *Service) publish(ctx context.Context, ownerID string) {
	books, err := s.repo.ListByOwner(ctx, ownerID, nil)
	if err != nil {
		// Watchers keep their last snapshot; the write itself succeeded.
		s.logger.Warn("snapshot refresh failed", zap.String("owner_id", ownerID), zap.Error(err))
		return
	}
	s.hub.Publish(ownerID, books)
}

func validateRating(rating *int) error {
	if rating == nil {
		return nil
	}
	if *rating < 1 || *rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
