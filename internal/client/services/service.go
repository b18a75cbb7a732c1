// Package services contains the application services of the ReadDaily CLI.
// A Service is either remote (a thin layer over the gRPC client) or local
// (the reading core over an SQLite file with an imported article catalog).
package services

import (
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/readdaily/internal/client/models"
	"github.com/dmitrijs2005/readdaily/internal/reading"
)

// ErrNotSupported is returned by the local backend for operations that need
// other users or server storage.
var ErrNotSupported = errors.New("not available in local mode")

// Service is the command surface of the CLI. Every method except Register,
// Login, Categories, Ping and Close requires a signed-in session.
type Service interface {
	Register(ctx context.Context, name, email string, password []byte, categories []string) error
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Logout(ctx context.Context) error
	// LastEmail returns the e-mail of the previous session, if remembered.
	LastEmail(ctx context.Context) string

	Categories(ctx context.Context) ([]models.Category, error)
	Profile(ctx context.Context) (*models.Profile, error)
	UpdatePreferences(ctx context.Context, categories []string) (*models.Profile, error)
	Feed(ctx context.Context) (*models.Feed, error)
	MarkRead(ctx context.Context, articleID string) (*models.ReadResult, error)

	Like(ctx context.Context, articleID string) (*models.LikeResult, error)
	Comment(ctx context.Context, articleID, content string) (*models.Comment, error)
	Comments(ctx context.Context, articleID string) ([]models.Comment, error)
	Share(ctx context.Context, url, categoryID, commentary string) (*reading.Article, error)
	Recommended(ctx context.Context, limit int) ([]models.Recommended, error)
	Export(ctx context.Context) (*models.Export, error)

	// ImportCatalog loads a JSON article list. Remotely every article is
	// created through the admin API; locally the catalog is upserted.
	ImportCatalog(ctx context.Context, r io.Reader) (int, error)
	RunAutomation(ctx context.Context) (*models.AutomationStats, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
