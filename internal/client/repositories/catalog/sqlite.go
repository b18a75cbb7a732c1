package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/readdaily/internal/client/models"
	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/reading"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectArticle = `
	SELECT id, title, description, source_url, image_url, category_id,
		estimated_reading_time, publish_date, featured, source
	FROM articles`

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Upsert inserts or replaces articles. New articles are appended to the end
// of the catalog order; existing ones keep their position.
func (r *SQLiteRepository) Upsert(ctx context.Context, articles []reading.Article) error {
	var next int
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), 0) FROM articles`).Scan(&next); err != nil {
		return fmt.Errorf("failed to read catalog position: %w", err)
	}

	for _, a := range articles {
		next++
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO articles (id, title, description, source_url, image_url, category_id,
				estimated_reading_time, publish_date, featured, source, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				description = excluded.description,
				source_url = excluded.source_url,
				image_url = excluded.image_url,
				category_id = excluded.category_id,
				estimated_reading_time = excluded.estimated_reading_time,
				publish_date = excluded.publish_date,
				featured = excluded.featured,
				source = excluded.source`,
			a.ID, a.Title, a.Description, a.SourceURL, a.ImageURL, a.CategoryID,
			a.EstimatedReadingTime, a.PublishDate.String(), a.Featured, a.Source, next)
		if err != nil {
			return fmt.Errorf("failed to store article %s: %w", a.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (reading.Article, error) {
	a, err := scanArticle(r.db.QueryRowContext(ctx, selectArticle+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return reading.Article{}, common.ErrorNotFound
	}
	if err != nil {
		return reading.Article{}, fmt.Errorf("failed to load article: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) ListForCategories(ctx context.Context, categories []string, today reading.Date) ([]reading.Article, error) {
	if len(categories) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(categories)), ",")
	args := make([]any, 0, len(categories)+1)
	for _, c := range categories {
		args = append(args, c)
	}
	args = append(args, today.String())

	rows, err := r.db.QueryContext(ctx,
		selectArticle+` WHERE category_id IN (`+placeholders+`) AND publish_date <= ? ORDER BY position`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var out []reading.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(s scanner) (reading.Article, error) {
	var (
		a    reading.Article
		date string
	)
	err := s.Scan(&a.ID, &a.Title, &a.Description, &a.SourceURL, &a.ImageURL, &a.CategoryID,
		&a.EstimatedReadingTime, &date, &a.Featured, &a.Source)
	if err != nil {
		return reading.Article{}, err
	}
	a.PublishDate = reading.Date(date)
	return a, nil
}
