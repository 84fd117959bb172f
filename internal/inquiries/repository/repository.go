package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lostfound_backend/internal/inquiries/domain"
	"lostfound_backend/platform/apperr"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed inquiry repository.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const inquiryColumns = `
	id, user_id, title, description, category, color, brand,
	distinguishing_features, location_lost, date_lost::text, image_urls,
	status, assigned_assistant_id, confidence_score, number_of_matches,
	created_at::text, updated_at::text
`

func (r *postgresRepository) Create(ctx context.Context, params CreateParams) (Inquiry, error) {
	query := `
		INSERT INTO inquiries (
			user_id, title, description, category, color, brand,
			distinguishing_features, location_lost, date_lost, image_urls, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + inquiryColumns

	row := r.pool.QueryRow(ctx, query,
		params.UserID,
		params.Title,
		params.Description,
		params.Category,
		params.Color,
		params.Brand,
		params.DistinguishingFeatures,
		params.LocationLost,
		params.DateLost,
		params.ImageURLs,
		domain.StatusSubmitted,
	)

	inquiry, err := scanInquiry(row)
	if err != nil {
		return Inquiry{}, fmt.Errorf("create inquiry: %w", err)
	}
	return inquiry, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE id = $1`

	inquiry, err := scanInquiry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Inquiry{}, apperr.NotFound("inquiry not found").WithOp("inquiries.GetByID")
		}
		return Inquiry{}, fmt.Errorf("get inquiry: %w", err)
	}
	return inquiry, nil
}

func (r *postgresRepository) ListBySubmitter(ctx context.Context, userID uuid.UUID) ([]Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := make([]Inquiry, 0)
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		inquiries = append(inquiries, inquiry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inquiries: %w", err)
	}
	return inquiries, nil
}

func (r *postgresRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from []domain.Status, to domain.Status) (bool, error) {
	fromStrings := make([]string, len(from))
	for i, s := range from {
		fromStrings[i] = s.String()
	}

	query := `
		UPDATE inquiries
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = ANY($3)`

	tag, err := r.pool.Exec(ctx, query, to, id, fromStrings)
	if err != nil {
		return false, fmt.Errorf("update inquiry status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) SetMatchSummary(ctx context.Context, id uuid.UUID, maxConfidence float64, count int) error {
	query := `
		UPDATE inquiries
		SET confidence_score = $1, number_of_matches = $2, updated_at = now()
		WHERE id = $3`

	if _, err := r.pool.Exec(ctx, query, maxConfidence, count, id); err != nil {
		return fmt.Errorf("set match summary: %w", err)
	}
	return nil
}

func (r *postgresRepository) ClearMatchSummary(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE inquiries
		SET confidence_score = NULL, number_of_matches = 0, updated_at = now()
		WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("clear match summary: %w", err)
	}
	return nil
}

func (r *postgresRepository) CountByStatus(ctx context.Context) (StatusCounts, error) {
	query := `SELECT status, COUNT(*) FROM inquiries GROUP BY status`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return StatusCounts{}, fmt.Errorf("count inquiries: %w", err)
	}
	defer rows.Close()

	var counts StatusCounts
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return StatusCounts{}, fmt.Errorf("scan count: %w", err)
		}
		switch domain.Status(status) {
		case domain.StatusSubmitted:
			counts.Submitted = count
		case domain.StatusUnderReview:
			counts.UnderReview = count
		case domain.StatusMatched:
			counts.Matched = count
		case domain.StatusResolved:
			counts.Resolved = count
		case domain.StatusRejected:
			counts.Rejected = count
		}
	}
	if err := rows.Err(); err != nil {
		return StatusCounts{}, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

func scanInquiry(row pgx.Row) (Inquiry, error) {
	var inquiry Inquiry
	err := row.Scan(
		&inquiry.ID,
		&inquiry.UserID,
		&inquiry.Title,
		&inquiry.Description,
		&inquiry.Category,
		&inquiry.Color,
		&inquiry.Brand,
		&inquiry.DistinguishingFeatures,
		&inquiry.LocationLost,
		&inquiry.DateLost,
		&inquiry.ImageURLs,
		&inquiry.Status,
		&inquiry.AssignedAssistantID,
		&inquiry.ConfidenceScore,
		&inquiry.NumberOfMatches,
		&inquiry.CreatedAt,
		&inquiry.UpdatedAt,
	)
	return inquiry, err
}
