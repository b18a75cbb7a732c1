package articles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
)

// PostgresRepository implements article storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const articleColumns = `a.id, a.title, a.description, a.source_url, a.image_url, a.category_id,
		a.estimated_reading_time, to_char(a.publish_date, 'YYYY-MM-DD'), a.featured, a.source,
		COALESCE(a.recommended_by::text, ''), a.recommended_at, a.user_commentary, a.likes_count`

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(s scanner, extra ...any) (*reading.Article, error) {
	a := &reading.Article{}
	var publishDate string
	var recommendedAt sql.NullTime

	dest := []any{&a.ID, &a.Title, &a.Description, &a.SourceURL, &a.ImageURL, &a.CategoryID,
		&a.EstimatedReadingTime, &publishDate, &a.Featured, &a.Source,
		&a.RecommendedBy, &recommendedAt, &a.UserCommentary, &a.LikesCount}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	a.PublishDate = reading.Date(publishDate)
	if recommendedAt.Valid {
		a.RecommendedAt = recommendedAt.Time
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *reading.Article) (*reading.Article, error) {
	query := `
		INSERT INTO articles (title, description, source_url, image_url, category_id,
			estimated_reading_time, publish_date, featured, source, recommended_by, recommended_at, user_commentary)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var recommendedBy, recommendedAt any
	if a.RecommendedBy != "" {
		recommendedBy = a.RecommendedBy
	}
	if !a.RecommendedAt.IsZero() {
		recommendedAt = a.RecommendedAt
	}

	err := r.db.QueryRowContext(ctx, query,
		a.Title, a.Description, a.SourceURL, a.ImageURL, a.CategoryID,
		a.EstimatedReadingTime, a.PublishDate.String(), a.Featured, a.Source,
		recommendedBy, recommendedAt, a.UserCommentary).Scan(&a.ID)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("unknown category %q: %w", a.CategoryID, common.ErrorValidation)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*reading.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles a WHERE a.id = $1`

	a, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListForCategories(ctx context.Context, userID string, categories []string, until reading.Date) ([]reading.Article, error) {
	if len(categories) == 0 {
		return []reading.Article{}, nil
	}

	args := []any{until.String(), userID}
	placeholders := make([]string, 0, len(categories))
	for _, c := range categories {
		args = append(args, c)
		placeholders = append(placeholders, "$"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + articleColumns + ` FROM articles a
		WHERE a.publish_date <= $1::date AND a.category_id IN (` + strings.Join(placeholders, ", ") + `)
		  AND NOT EXISTS (SELECT 1 FROM read_articles r WHERE r.user_id = $2 AND r.article_id = a.id)
		ORDER BY a.created_at, a.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	pool := make([]reading.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		pool = append(pool, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return pool, nil
}

func (r *PostgresRepository) ExistsBySourceURL(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM articles WHERE source_url = $1)`, url).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) LockForUpdate(ctx context.Context, id string) error {
	var locked string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM articles WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SetLikesCount(ctx context.Context, id string, n int) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE articles SET likes_count = $2 WHERE id = $1`, id, n); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListRecommended(ctx context.Context, viewerID string, limit int) ([]models.RecommendedArticle, error) {
	query := `SELECT ` + articleColumns + `,
			u.name,
			EXISTS (SELECT 1 FROM likes l WHERE l.article_id = a.id AND l.user_id = $1),
			(SELECT COUNT(*) FROM comments c WHERE c.article_id = a.id)
		FROM articles a
		JOIN users u ON u.id = a.recommended_by
		ORDER BY a.recommended_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.RecommendedArticle, 0)
	for rows.Next() {
		var ra models.RecommendedArticle
		a, err := scanArticle(rows, &ra.RecommenderName, &ra.LikedByMe, &ra.CommentsCount)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		ra.Article = *a
		out = append(out, ra)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}
