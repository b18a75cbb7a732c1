package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) CloseIdle(ctx context.Context, userID string, cutoff time.Time) (int64, error) {
	query := `
		UPDATE sessions SET ended_at = last_seen_at
		WHERE user_id = $1 AND ended_at IS NULL AND last_seen_at < $2
	`
	res, err := r.db.ExecContext(ctx, query, userID, cutoff)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) FindOpen(ctx context.Context, userID string) (*models.Session, error) {
	query := `
		SELECT id, user_id, started_at, last_seen_at, articles_read
		FROM sessions
		WHERE user_id = $1 AND ended_at IS NULL
		ORDER BY started_at DESC
		LIMIT 1
	`
	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&s.ID, &s.UserID, &s.StartedAt, &s.LastSeenAt, &s.ArticlesRead)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Open(ctx context.Context, userID string, now time.Time) (*models.Session, error) {
	query := `
		INSERT INTO sessions (user_id, started_at, last_seen_at)
		VALUES ($1, $2, $2)
		RETURNING id
	`
	s := &models.Session{UserID: userID, StartedAt: now, LastSeenAt: now}
	if err := r.db.QueryRowContext(ctx, query, userID, now).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Touch(ctx context.Context, sessionID string, now time.Time, articles int) error {
	query := `
		UPDATE sessions SET last_seen_at = $2, articles_read = articles_read + $3
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, sessionID, now, articles); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
