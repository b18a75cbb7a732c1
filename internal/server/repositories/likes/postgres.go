package likes

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Delete(ctx context.Context, articleID, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE article_id = $1 AND user_id = $2`, articleID, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, articleID, userID string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO likes (article_id, user_id) VALUES ($1, $2)`, articleID, userID)
	if err != nil {
		switch {
		case dbx.IsForeignKeyViolation(err):
			return common.ErrorNotFound
		case dbx.IsUniqueViolation(err):
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context, articleID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM likes WHERE article_id = $1`, articleID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
