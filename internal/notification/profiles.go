package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lostfound_backend/platform/apperr"
)

// ProfileReader resolves a user's contact details for email delivery.
type ProfileReader interface {
	GetEmail(ctx context.Context, userID uuid.UUID) (string, error)
}

// pgProfileReader reads the profiles table. The table is owned by the
// identity provider; this module only ever reads it.
type pgProfileReader struct {
	pool *pgxpool.Pool
}

// NewProfileReader creates a PostgreSQL-backed profile reader.
func NewProfileReader(pool *pgxpool.Pool) ProfileReader {
	return &pgProfileReader{pool: pool}
}

func (r *pgProfileReader) GetEmail(ctx context.Context, userID uuid.UUID) (string, error) {
	var email string
	err := r.pool.QueryRow(ctx, `SELECT email FROM profiles WHERE id = $1`, userID).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("profile not found").WithOp("notification.GetEmail")
		}
		return "", fmt.Errorf("get profile email: %w", err)
	}
	return email, nil
}
