// Package categories reads the seeded category catalog.
package categories

import (
	"context"

	"github.com/dmitrijs2005/readdaily/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Category, error)
}
