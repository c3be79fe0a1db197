package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AllowlistPG stores the allow-list as a single row; its absence means
// the gate was never configured.
type AllowlistPG struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewAllowlistPG(db *pgxpool.Pool, timeout time.Duration) *AllowlistPG {
	return &AllowlistPG{db: db, timeout: timeout}
}

func (r *AllowlistPG) Emails(ctx context.Context) ([]string, bool, error) {
	const query = `SELECT emails FROM allowlist WHERE id = 1`
	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var emails []string
	err := r.db.QueryRow(timeoutCtx, query).Scan(&emails)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return emails, true, nil
}

func (r *AllowlistPG) Replace(ctx context.Context, emails []string) error {
	const query = `
	INSERT INTO allowlist (id, emails, updated_at)
	VALUES (1, $1, NOW())
	ON CONFLICT (id)
	DO UPDATE SET emails = EXCLUDED.emails, updated_at = NOW()
	`
	timeoutCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, emails)
	return err
}
