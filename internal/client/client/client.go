package client

import (
	"context"

	"github.com/dmitrijs2005/readdaily/internal/client/models"
	"github.com/dmitrijs2005/readdaily/internal/reading"
)

// Client is the remote ReadDaily API as the CLI sees it. Calls after Login
// carry the access token; an expired token is refreshed once transparently.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, name, email string, salt, verifier []byte, categories []string) error
	GetSalt(ctx context.Context, email string) ([]byte, error)
	Login(ctx context.Context, email string, verifier []byte) (role string, err error)
	Logout()

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdatePreferences(ctx context.Context, categories []string) (*models.Profile, error)
	DailyFeed(ctx context.Context) (*models.Feed, error)
	MarkRead(ctx context.Context, articleID string) (*models.ReadResult, error)

	ToggleLike(ctx context.Context, articleID string) (*models.LikeResult, error)
	AddComment(ctx context.Context, articleID, content string) (*models.Comment, error)
	ListComments(ctx context.Context, articleID string) ([]models.Comment, error)
	ShareArticle(ctx context.Context, url, categoryID, commentary string) (*reading.Article, error)
	ListRecommended(ctx context.Context, limit int) ([]models.Recommended, error)
	ExportHistory(ctx context.Context) (*models.Export, error)

	CreateArticle(ctx context.Context, a reading.Article) (*reading.Article, error)
	RunAutomation(ctx context.Context) (*models.AutomationStats, error)
}
