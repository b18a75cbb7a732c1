// Package refreshtokens declares the repository contract for the opaque
// refresh tokens issued alongside access tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/server/models"
)

// Repository defines operations for issuing, rotating and expiring refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID expiring at now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns the token row or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a token. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes tokens that expired before now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
