// Package reads persists the append-only read log of each user.
package reads

import (
	"context"

	"github.com/dmitrijs2005/readdaily/internal/reading"
)

type Repository interface {
	// List returns the read log in insertion order.
	List(ctx context.Context, userID string) ([]reading.ReadArticle, error)
	// Add appends a read. An unknown article yields common.ErrorNotFound.
	Add(ctx context.Context, userID string, r reading.ReadArticle) error
}
