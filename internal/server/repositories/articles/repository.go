// Package articles persists the article catalog: editorial pieces, user
// shares and imported videos.
package articles

import (
	"context"

	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, a *reading.Article) (*reading.Article, error)
	GetByID(ctx context.Context, id string) (*reading.Article, error)
	// ListForCategories returns the selection pool: articles of the given
	// categories published on or before until that userID has not read yet,
	// in insertion order.
	ListForCategories(ctx context.Context, userID string, categories []string, until reading.Date) ([]reading.Article, error)
	ExistsBySourceURL(ctx context.Context, url string) (bool, error)
	// LockForUpdate takes a row lock on the article; use inside a transaction.
	LockForUpdate(ctx context.Context, id string) error
	SetLikesCount(ctx context.Context, id string, n int) error
	ListRecommended(ctx context.Context, viewerID string, limit int) ([]models.RecommendedArticle, error)
}
