// Package catalog stores the categories and the imported article catalog of
// the local mode.
package catalog

import (
	"context"

	"github.com/dmitrijs2005/readdaily/internal/client/models"
	"github.com/dmitrijs2005/readdaily/internal/reading"
)

type Repository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	Upsert(ctx context.Context, articles []reading.Article) error
	GetByID(ctx context.Context, id string) (reading.Article, error)
	// ListForCategories returns the articles of the given categories published
	// on or before today, in catalog order.
	ListForCategories(ctx context.Context, categories []string, today reading.Date) ([]reading.Article, error)
	Count(ctx context.Context) (int, error)
}
