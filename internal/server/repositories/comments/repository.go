// Package comments persists append-only article comments.
package comments

import (
	"context"

	"github.com/dmitrijs2005/readdaily/internal/server/models"
)

type Repository interface {
	// Create stores c and fills its id and timestamp. Unknown article or
	// user yields common.ErrorNotFound.
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	// ListByArticle returns comments newest first.
	ListByArticle(ctx context.Context, articleID string) ([]models.Comment, error)
}
