package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/doi-radiologia/portal-api/internal/model"
	"github.com/doi-radiologia/portal-api/internal/repository"
)

type contentRepository struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) repository.ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Create(ctx context.Context, item *model.ContentItem) error {
	query := `
		INSERT INTO page_content (id, page_name, section_name, content_key, content_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.PageName,
		item.SectionName,
		item.ContentKey,
		item.ContentValue,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create content item: %w", err)
	}
	return nil
}

func (r *contentRepository) Update(ctx context.Context, item *model.ContentItem) error {
	query := `
		UPDATE page_content
		SET page_name = $1, section_name = $2, content_key = $3, content_value = $4, updated_at = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		item.PageName,
		item.SectionName,
		item.ContentKey,
		item.ContentValue,
		time.Now(),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update content item: %w", err)
	}
	return requireRowsAffected(res, "content item")
}

func (r *contentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM page_content WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete content item: %w", err)
	}
	return requireRowsAffected(res, "content item")
}

func (r *contentRepository) List(ctx context.Context) ([]*model.ContentItem, error) {
	query := `SELECT * FROM page_content ORDER BY page_name, section_name`
	var items []*model.ContentItem
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list content items: %w", err)
	}
	return items, nil
}

func (r *contentRepository) GetValue(ctx context.Context, page, section, key string) (string, bool, error) {
	// Duplicate tuples are possible; take at most one row.
	query := `
		SELECT content_value FROM page_content
		WHERE page_name = $1 AND section_name = $2 AND content_key = $3
		LIMIT 1
	`
	var value string
	err := r.db.GetContext(ctx, &value, query, page, section, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up content: %w", err)
	}
	return value, true, nil
}
