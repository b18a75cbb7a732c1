// Package users declares and implements persistence of user accounts, their
// category subscriptions and their streak state.
package users

import (
	"context"

	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
)

type Repository interface {
	// Create inserts the user row and returns it with its id.
	// A duplicate e-mail yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// LockByID loads the user row with FOR UPDATE; use inside a transaction.
	LockByID(ctx context.Context, id string) (*models.User, error)
	SaveActivity(ctx context.Context, id string, streak reading.StreakData, lastActive reading.Date) error
	GetCategories(ctx context.Context, userID string) ([]string, error)
	// SetCategories replaces the subscription set.
	SetCategories(ctx context.Context, userID string, categories []string) error
}
