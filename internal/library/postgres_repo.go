package library

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
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

const bookColumns = `
	id, owner_id, isbn, title, author, description, cover_url,
	page_count, published_year, genres, category, rating, notes,
	is_manual, added_at, finished_at
`

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const query = `
	INSERT INTO books (
		id, owner_id, isbn, title, author, description, cover_url,
		page_count, published_year, genres, category, rating, notes,
		is_manual, added_at, finished_at
	)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), $14)
	RETURNING id, added_at
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.QueryRow(timeoutCtx, query,
		b.OwnerID, nullableStr(b.ISBN), b.Title, b.Author,
		nullableStr(b.Description), nullableStr(b.CoverURL),
		nullableInt(b.PageCount), b.PublishedYear, b.Genres,
		string(b.Category), b.Rating, nullableStr(b.Notes),
		b.IsManual, b.FinishedAt,
	).Scan(&b.ID, &b.AddedAt)
}

func (r *PostgresRepo) GetByID(ctx context.Context, id, ownerID string) (Book, error) {
	const query = `
	SELECT ` + bookColumns + `
	FROM books
	WHERE id = $1 AND owner_id = $2
	LIMIT 1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(timeoutCtx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) ListByOwner(ctx context.Context, ownerID string, category *Category) ([]Book, error) {
	query := `
	SELECT ` + bookColumns + `
	FROM books
	WHERE owner_id = $1
	`
	args := []any{ownerID}
	if category != nil {
		query += ` AND category = $2`
		args = append(args, string(*category))
	}
	query += ` ORDER BY added_at DESC`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Update writes every mutable column. id, owner_id and added_at are never
// part of the SET list.
func (r *PostgresRepo) Update(ctx context.Context, b *Book) error {
	const query = `
	UPDATE books
	SET isbn = $3, title = $4, author = $5, description = $6, cover_url = $7,
	    page_count = $8, published_year = $9, genres = $10, category = $11,
	    rating = $12, notes = $13, finished_at = $14
	WHERE id = $1 AND owner_id = $2
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query,
		b.ID, b.OwnerID, nullableStr(b.ISBN), b.Title, b.Author,
		nullableStr(b.Description), nullableStr(b.CoverURL),
		nullableInt(b.PageCount), b.PublishedYear, b.Genres,
		string(b.Category), b.Rating, nullableStr(b.Notes), b.FinishedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM books WHERE id = $1 AND owner_id = $2`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(row rowScanner) (Book, error) {
	var (
		b           Book
		isbn        *string
		description *string
		coverURL    *string
		notes       *string
		pageCount   *int
		category    string
	)
	err := row.Scan(
		&b.ID, &b.OwnerID, &isbn, &b.Title, &b.Author, &description,
		&coverURL, &pageCount, &b.PublishedYear, &b.Genres, &category,
		&b.Rating, &notes, &b.IsManual, &b.AddedAt, &b.FinishedAt,
	)
	if err != nil {
		return Book{}, err
	}
	b.ISBN = deref(isbn)
	b.Description = deref(description)
	b.CoverURL = deref(coverURL)
	b.Notes = deref(notes)
	if pageCount != nil {
		b.PageCount = *pageCount
	}
	b.Category = Category(category)
	return b, nil
}

func nullableStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
