// Package profiles stores reading profiles of the local mode as documents:
// the mutable parts of a profile live in JSON text columns produced by
// reading.EncodeState.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/readdaily/internal/reading"
)

// Credentials are the password verifier parts of a local account.
type Credentials struct {
	Salt     []byte
	Verifier []byte
}

type Repository interface {
	Create(ctx context.Context, p reading.Profile, c Credentials) error
	GetByID(ctx context.Context, id string) (reading.Profile, error)
	GetByEmail(ctx context.Context, email string) (reading.Profile, error)
	Credentials(ctx context.Context, email string) (Credentials, error)
	Save(ctx context.Context, p reading.Profile) error
}
