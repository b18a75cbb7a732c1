package comments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (article_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, commented_at
	`
	err := r.db.QueryRowContext(ctx, query, c.ArticleID, c.UserID, c.Content).Scan(&c.ID, &c.CommentedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error) {
	query := `
		SELECT c.id, c.article_id, c.user_id, u.name, c.content, c.commented_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.article_id = $1
		ORDER BY c.commented_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.ArticleID, &c.UserID, &c.UserName, &c.Content, &c.CommentedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return out, nil
}
