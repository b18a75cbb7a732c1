package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/repomanager"
)

// SessionTracker records reading sessions. A session stays open while the
// user keeps interacting; a gap longer than the idle timeout ends it.
type SessionTracker struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	idle        time.Duration
	clock       Clock
}

func NewSessionTracker(db *sql.DB, m repomanager.RepositoryManager, idle time.Duration, clock Clock) *SessionTracker {
	return &SessionTracker{db: db, repomanager: m, idle: idle, clock: clock}
}

// Start closes idle sessions of userID and returns the open session,
// opening one when none is active. A user has at most one open session.
func (t *SessionTracker) Start(ctx context.Context, userID string) (*models.Session, error) {
	var s *models.Session
	err := dbx.WithTx(ctx, t.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		s, err = t.current(ctx, tx, userID, t.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Touch marks activity and adds articles to the open session's counter,
// opening a session when none is active.
func (t *SessionTracker) Touch(ctx context.Context, userID string, articles int) error {
	now := t.clock.Now()

	return dbx.WithTx(ctx, t.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		s, err := t.current(ctx, tx, userID, now)
		if err != nil {
			return err
		}
		if err := t.repomanager.Sessions(tx).Touch(ctx, s.ID, now, articles); err != nil {
			return fmt.Errorf("error touching session: %w", err)
		}
		return nil
	})
}

// current runs inside tx. The user row lock serializes concurrent Start and
// Touch calls, so only one of them can open a session.
func (t *SessionTracker) current(ctx context.Context, tx dbx.DBTX, userID string, now time.Time) (*models.Session, error) {
	if _, err := t.repomanager.Users(tx).LockByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("error locking user: %w", err)
	}

	repo := t.repomanager.Sessions(tx)
	if _, err := repo.CloseIdle(ctx, userID, now.Add(-t.idle)); err != nil {
		return nil, fmt.Errorf("error closing idle sessions: %w", err)
	}

	s, err := repo.FindOpen(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		s, err = repo.Open(ctx, userID, now)
		if err != nil {
			return nil, fmt.Errorf("error opening session: %w", err)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error resolving session: %w", err)
	}
	return s, nil
}
