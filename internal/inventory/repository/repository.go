package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lostfound_backend/platform/apperr"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed inventory repository.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const itemColumns = `
	id, name, description, category, color, brand, distinguishing_features,
	location_found, date_found::text, image_urls, is_claimed, added_by,
	created_at::text, updated_at::text
`

func (r *postgresRepository) Create(ctx context.Context, params CreateParams) (LostItem, error) {
	query := `
		INSERT INTO lost_items (
			name, description, category, color, brand, distinguishing_features,
			location_found, date_found, image_urls, added_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + itemColumns

	row := r.pool.QueryRow(ctx, query,
		params.Name,
		params.Description,
		params.Category,
		params.Color,
		params.Brand,
		params.DistinguishingFeatures,
		params.LocationFound,
		params.DateFound,
		params.ImageURLs,
		params.AddedBy,
	)

	item, err := scanItem(row)
	if err != nil {
		return LostItem{}, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (LostItem, error) {
	query := `SELECT ` + itemColumns + ` FROM lost_items WHERE id = $1`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LostItem{}, apperr.NotFound("item not found").WithOp("inventory.GetByID")
		}
		return LostItem{}, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

func (r *postgresRepository) List(ctx context.Context, filters ListFilters) ([]LostItem, error) {
	query := `SELECT ` + itemColumns + ` FROM lost_items WHERE 1=1`
	args := []any{}

	if filters.Category != nil {
		args = append(args, *filters.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filters.Claimed != nil {
		args = append(args, *filters.Claimed)
		query += fmt.Sprintf(" AND is_claimed = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]LostItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (LostItem, error) {
	query := `
		UPDATE lost_items
		SET name = $1, description = $2, category = $3, color = $4, brand = $5,
		    distinguishing_features = $6, location_found = $7, date_found = $8,
		    updated_at = now()
		WHERE id = $9
		RETURNING ` + itemColumns

	row := r.pool.QueryRow(ctx, query,
		params.Name,
		params.Description,
		params.Category,
		params.Color,
		params.Brand,
		params.DistinguishingFeatures,
		params.LocationFound,
		params.DateFound,
		id,
	)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LostItem{}, apperr.NotFound("item not found").WithOp("inventory.Update")
		}
		return LostItem{}, fmt.Errorf("update item: %w", err)
	}
	return item, nil
}

func (r *postgresRepository) AppendImages(ctx context.Context, id uuid.UUID, urls []string) error {
	query := `
		UPDATE lost_items
		SET image_urls = image_urls || $1, updated_at = now()
		WHERE id = $2`

	tag, err := r.pool.Exec(ctx, query, urls, id)
	if err != nil {
		return fmt.Errorf("append item images: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("item not found").WithOp("inventory.AppendImages")
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Refuses while a confirmed match references the item. The guard and the
	// delete run as one statement so no match can appear in between.
	query := `
		DELETE FROM lost_items
		WHERE id = $1
		  AND NOT EXISTS (SELECT 1 FROM matches WHERE lost_item_id = $1)`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return apperr.Conflict("item has a confirmed match").WithOp("inventory.Delete")
	}
	return nil
}

func (r *postgresRepository) DeleteForResolution(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lost_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete claimed item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("item not found").WithOp("inventory.DeleteForResolution")
	}
	return nil
}

func (r *postgresRepository) Counts(ctx context.Context) (int, int, error) {
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_claimed) FROM lost_items`

	var total, unclaimed int
	if err := r.pool.QueryRow(ctx, query).Scan(&total, &unclaimed); err != nil {
		return 0, 0, fmt.Errorf("count items: %w", err)
	}
	return total, unclaimed, nil
}

func scanItem(row pgx.Row) (LostItem, error) {
	var item LostItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Category,
		&item.Color,
		&item.Brand,
		&item.DistinguishingFeatures,
		&item.LocationFound,
		&item.DateFound,
		&item.ImageURLs,
		&item.IsClaimed,
		&item.AddedBy,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	return item, err
}
