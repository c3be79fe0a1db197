package stats

import (
	"context"
	"time"
)

const topGenreLimit = 5

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Summary collects the owner's reading numbers in one shot.
func (s *Service) Summary(ctx context.Context, ownerID string) (Summary, error) {
	counts, err := s.repo.CountsByCategory(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	byYear, err := s.repo.FinishedByYear(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	pages, err := s.repo.PagesRead(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	avg, err := s.repo.AverageRating(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}
	genres, err := s.repo.TopGenres(ctx, ownerID, topGenreLimit)
	if err != nil {
		return Summary{}, err
	}

	currentYear := s.now().Year()
	finishedThisYear := 0
	for _, yc := range byYear {
		if yc.Year == currentYear {
			finishedThisYear = yc.Count
			break
		}
	}

	return Summary{
		Counts:           counts,
		FinishedThisYear: finishedThisYear,
		FinishedByYear:   byYear,
		PagesRead:        pages,
		AverageRating:    avg,
		TopGenres:        genres,
	}, nil
}
