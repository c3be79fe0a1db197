package stats

import "context"

type Repository interface {
	CountsByCategory(ctx context.Context, ownerID string) (CategoryCounts, error)
	FinishedByYear(ctx context.Context, ownerID string) ([]YearCount, error)
	PagesRead(ctx context.Context, ownerID string) (int, error)
	AverageRating(ctx context.Context, ownerID string) (float64, error)
	TopGenres(ctx context.Context, ownerID string, limit int) ([]GenreCount, error)
}
