// Package likes persists the like ledger. At most one like exists per
// (article, user) pair.
package likes

import "context"

type Repository interface {
	// Delete removes the like and reports whether one existed.
	Delete(ctx context.Context, articleID, userID string) (bool, error)
	// Insert adds a like. Unknown article or user yields common.ErrorNotFound.
	Insert(ctx context.Context, articleID, userID string) error
	Count(ctx context.Context, articleID string) (int, error)
}
