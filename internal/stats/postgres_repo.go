package stats

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) CountsByCategory(ctx context.Context, ownerID string) (CategoryCounts, error) {
	const query = `
	SELECT category, COUNT(*)
	FROM books
	WHERE owner_id = $1
	GROUP BY category
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, ownerID)
	if err != nil {
		return CategoryCounts{}, err
	}
	defer rows.Close()

	var counts CategoryCounts
	for rows.Next() {
		var category string
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return CategoryCounts{}, err
		}
		switch category {
		case "wishlist":
			counts.Wishlist = n
		case "reading":
			counts.Reading = n
		case "finished":
			counts.Finished = n
		case "owned":
			counts.Owned = n
		}
		counts.Total += n
	}
	return counts, rows.Err()
}

func (r *PostgresRepo) FinishedByYear(ctx context.Context, ownerID string) ([]YearCount, error) {
	const query = `
	SELECT EXTRACT(YEAR FROM finished_at)::int AS year, COUNT(*)
	FROM books
	WHERE owner_id = $1 AND category = 'finished' AND finished_at IS NOT NULL
	GROUP BY year
	ORDER BY year DESC
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := make([]YearCount, 0)
	for rows.Next() {
		var yc YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, err
		}
		years = append(years, yc)
	}
	return years, rows.Err()
}

// PagesRead sums page_count over finished books. Books without a known
// page count contribute nothing.
func (r *PostgresRepo) PagesRead(ctx context.Context, ownerID string) (int, error) {
	const query = `
	SELECT COALESCE(SUM(page_count), 0)
	FROM books
	WHERE owner_id = $1 AND category = 'finished'
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var pages int
	err := r.db.QueryRow(timeoutCtx, query, ownerID).Scan(&pages)
	return pages, err
}

// AverageRating ignores unrated books (rating = 0).
func (r *PostgresRepo) AverageRating(ctx context.Context, ownerID string) (float64, error) {
	const query = `
	SELECT COALESCE(AVG(rating), 0)
	FROM books
	WHERE owner_id = $1 AND rating > 0
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var avg float64
	err := r.db.QueryRow(timeoutCtx, query, ownerID).Scan(&avg)
	return avg, err
}

func (r *PostgresRepo) TopGenres(ctx context.Context, ownerID string, limit int) ([]GenreCount, error) {
	const query = `
	SELECT genre, COUNT(*) AS n
	FROM books, UNNEST(genres) AS genre
	WHERE owner_id = $1
	GROUP BY genre
	ORDER BY n DESC, genre ASC
	LIMIT $2
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]GenreCount, 0)
	for rows.Next() {
		var gc GenreCount
		if err := rows.Scan(&gc.Genre, &gc.Count); err != nil {
			return nil, err
		}
		genres = append(genres, gc)
	}
	return genres, rows.Err()
}
