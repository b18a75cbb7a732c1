package reads

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/reading"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]reading.ReadArticle, error) {
	query := `
		SELECT article_id, to_char(read_date, 'YYYY-MM-DD')
		FROM read_articles
		WHERE user_id = $1
		ORDER BY seq
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]reading.ReadArticle, 0)
	for rows.Next() {
		var ra reading.ReadArticle
		var day string
		if err := rows.Scan(&ra.ArticleID, &day); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		ra.ReadDate = reading.Date(day)
		out = append(out, ra)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Add(ctx context.Context, userID string, ra reading.ReadArticle) error {
	query := `
		INSERT INTO read_articles (user_id, article_id, read_date)
		VALUES ($1, $2, $3::date)
		ON CONFLICT (user_id, article_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID, ra.ArticleID, ra.ReadDate.String()); err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
