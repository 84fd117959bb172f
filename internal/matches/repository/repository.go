package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"lostfound_backend/platform/apperr"
)

const pgUniqueViolation = "23505"

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed match repository.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) UpsertCandidates(ctx context.Context, candidates []Candidate) error {
	if len(candidates) == 0 {
		return nil
	}

	query := `
		INSERT INTO potential_matches (inquiry_id, lost_item_id, confidence_score, match_reasons)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (inquiry_id, lost_item_id)
		DO UPDATE SET confidence_score = EXCLUDED.confidence_score,
		              match_reasons = EXCLUDED.match_reasons`

	batch := &pgx.Batch{}
	for _, cand := range candidates {
		batch.Queue(query, cand.InquiryID, cand.LostItemID, cand.Confidence, cand.Reasons)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range candidates {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert candidate: %w", err)
		}
	}
	return nil
}

func (r *postgresRepository) ListCandidates(ctx context.Context, inquiryID uuid.UUID) ([]Candidate, error) {
	query := `
		SELECT id, inquiry_id, lost_item_id, confidence_score, match_reasons, created_at::text
		FROM potential_matches
		WHERE inquiry_id = $1
		ORDER BY confidence_score DESC, created_at ASC`

	rows, err := r.pool.Query(ctx, query, inquiryID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]Candidate, 0)
	for rows.Next() {
		var cand Candidate
		if err := rows.Scan(&cand.ID, &cand.InquiryID, &cand.LostItemID,
			&cand.Confidence, &cand.Reasons, &cand.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, cand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return candidates, nil
}

func (r *postgresRepository) ListCandidatesWithItems(ctx context.Context, inquiryID uuid.UUID) ([]CandidateWithItem, error) {
	query := `
		SELECT pm.id, pm.inquiry_id, pm.lost_item_id, pm.confidence_score,
		       pm.match_reasons, pm.created_at::text,
		       li.name, li.description, li.category, li.color,
		       li.location_found, li.date_found::text, li.image_urls
		FROM potential_matches pm
		JOIN lost_items li ON li.id = pm.lost_item_id
		WHERE pm.inquiry_id = $1
		ORDER BY pm.confidence_score DESC, pm.created_at ASC`

	rows, err := r.pool.Query(ctx, query, inquiryID)
	if err != nil {
		return nil, fmt.Errorf("list candidates with items: %w", err)
	}
	defer rows.Close()

	out := make([]CandidateWithItem, 0)
	for rows.Next() {
		var cw CandidateWithItem
		if err := rows.Scan(&cw.ID, &cw.InquiryID, &cw.LostItemID,
			&cw.Confidence, &cw.Reasons, &cw.CreatedAt,
			&cw.ItemName, &cw.ItemDescription, &cw.ItemCategory, &cw.ItemColor,
			&cw.ItemLocation, &cw.ItemDateFound, &cw.ItemImageURLs); err != nil {
			return nil, fmt.Errorf("scan candidate with item: %w", err)
		}
		out = append(out, cw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return out, nil
}

func (r *postgresRepository) GetCandidate(ctx context.Context, candidateID uuid.UUID) (Candidate, error) {
	query := `
		SELECT id, inquiry_id, lost_item_id, confidence_score, match_reasons, created_at::text
		FROM potential_matches
		WHERE id = $1`

	var cand Candidate
	err := r.pool.QueryRow(ctx, query, candidateID).Scan(
		&cand.ID, &cand.InquiryID, &cand.LostItemID,
		&cand.Confidence, &cand.Reasons, &cand.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Candidate{}, apperr.NotFound("candidate not found").WithOp("matches.GetCandidate")
		}
		return Candidate{}, fmt.Errorf("get candidate: %w", err)
	}
	return cand, nil
}

func (r *postgresRepository) ClearCandidates(ctx context.Context, inquiryID uuid.UUID) error {
	query := `DELETE FROM potential_matches WHERE inquiry_id = $1`

	if _, err := r.pool.Exec(ctx, query, inquiryID); err != nil {
		return fmt.Errorf("clear candidates: %w", err)
	}
	return nil
}

func (r *postgresRepository) CreateConfirmedMatch(ctx context.Context, inquiryID, lostItemID, userID uuid.UUID) (ConfirmedMatch, error) {
	query := `
		INSERT INTO matches (inquiry_id, lost_item_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, inquiry_id, lost_item_id, user_id, match_date::text`

	var match ConfirmedMatch
	err := r.pool.QueryRow(ctx, query, inquiryID, lostItemID, userID).Scan(
		&match.ID, &match.InquiryID, &match.LostItemID, &match.UserID, &match.MatchDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ConfirmedMatch{}, apperr.Conflict("inquiry already has a confirmed match").
				WithOp("matches.CreateConfirmedMatch")
		}
		return ConfirmedMatch{}, fmt.Errorf("create confirmed match: %w", err)
	}
	return match, nil
}

func (r *postgresRepository) GetConfirmedMatch(ctx context.Context, inquiryID uuid.UUID) (ConfirmedMatch, error) {
	query := `
		SELECT id, inquiry_id, lost_item_id, user_id, match_date::text
		FROM matches
		WHERE inquiry_id = $1`

	var match ConfirmedMatch
	err := r.pool.QueryRow(ctx, query, inquiryID).Scan(
		&match.ID, &match.InquiryID, &match.LostItemID, &match.UserID, &match.MatchDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ConfirmedMatch{}, apperr.NotFound("no confirmed match for inquiry").
				WithOp("matches.GetConfirmedMatch")
		}
		return ConfirmedMatch{}, fmt.Errorf("get confirmed match: %w", err)
	}
	return match, nil
}

func (r *postgresRepository) GetConfirmedItem(ctx context.Context, inquiryID uuid.UUID) (ConfirmedItem, error) {
	query := `
		SELECT m.id, li.id, li.name, li.description, li.category, li.color,
		       li.brand, li.location_found, li.date_found::text, li.image_urls
		FROM matches m
		JOIN lost_items li ON li.id = m.lost_item_id
		WHERE m.inquiry_id = $1`

	var item ConfirmedItem
	err := r.pool.QueryRow(ctx, query, inquiryID).Scan(
		&item.MatchID, &item.ItemID, &item.Name, &item.Description,
		&item.Category, &item.Color, &item.Brand,
		&item.LocationFound, &item.DateFound, &item.ImageURLs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ConfirmedItem{}, apperr.NotFound("no matched item for inquiry").
				WithOp("matches.GetConfirmedItem")
		}
		return ConfirmedItem{}, fmt.Errorf("get confirmed item: %w", err)
	}
	return item, nil
}

func (r *postgresRepository) DeleteConfirmedMatch(ctx context.Context, inquiryID uuid.UUID) error {
	query := `DELETE FROM matches WHERE inquiry_id = $1`

	if _, err := r.pool.Exec(ctx, query, inquiryID); err != nil {
		return fmt.Errorf("delete confirmed match: %w", err)
	}
	return nil
}

func (r *postgresRepository) ListReviewQueue(ctx context.Context) ([]ReviewQueueEntry, error) {
	query := `
		SELECT i.id, i.title, i.status, i.user_id,
		       COUNT(pm.id), COALESCE(MAX(pm.confidence_score), 0),
		       MIN(pm.created_at)::text
		FROM inquiries i
		JOIN potential_matches pm ON pm.inquiry_id = i.id
		WHERE i.status IN ('submitted', 'under_review')
		GROUP BY i.id, i.title, i.status, i.user_id
		ORDER BY MAX(pm.confidence_score) DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list review queue: %w", err)
	}
	defer rows.Close()

	entries := make([]ReviewQueueEntry, 0)
	for rows.Next() {
		var entry ReviewQueueEntry
		if err := rows.Scan(&entry.InquiryID, &entry.InquiryTitle, &entry.InquiryStatus,
			&entry.SubmitterID, &entry.CandidateCount, &entry.MaxConfidence,
			&entry.OldestPending); err != nil {
			return nil, fmt.Errorf("scan review queue entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review queue: %w", err)
	}
	return entries, nil
}
