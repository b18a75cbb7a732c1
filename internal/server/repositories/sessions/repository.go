// Package sessions persists reading sessions.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/server/models"
)

type Repository interface {
	// CloseIdle ends open sessions of userID last seen before cutoff.
	CloseIdle(ctx context.Context, userID string, cutoff time.Time) (int64, error)
	// FindOpen returns the newest open session or common.ErrorNotFound.
	FindOpen(ctx context.Context, userID string) (*models.Session, error)
	Open(ctx context.Context, userID string, now time.Time) (*models.Session, error)
	// Touch bumps last_seen_at and adds articles to the read counter.
	Touch(ctx context.Context, sessionID string, now time.Time, articles int) error
}
