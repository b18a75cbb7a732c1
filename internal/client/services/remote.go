package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/readdaily/internal/client/client"
	"github.com/dmitrijs2005/readdaily/internal/client/models"
	"github.com/dmitrijs2005/readdaily/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/cryptox"
	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/dmitrijs2005/readdaily/internal/reading"
)

const (
	metaEmail = "session.email"
	metaRole  = "session.role"
)

// remoteService talks to the ReadDaily server. The local database only keeps
// the identity of the last session.
type remoteService struct {
	client client.Client
	db     *sql.DB
	logger logging.Logger
}

// NewRemoteService constructs a Service bound to the given API client and DB.
func NewRemoteService(c client.Client, db *sql.DB, logger logging.Logger) Service {
	return &remoteService{client: c, db: db, logger: logger.With("module", "remote_service")}
}

func (s *remoteService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Register generates a random salt, derives the verifier from password and
// sends both to the server together with the chosen categories.
func (s *remoteService) Register(ctx context.Context, name, email string, password []byte, categories []string) error {
	salt, verifier := cryptox.NewCredentials(password)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.client.Register(ctx, name, email, salt, verifier, categories); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Login fetches the salt of email, derives the verifier candidate and
// authenticates. The session identity is remembered for the next start.
func (s *remoteService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	salt, err := s.client.GetSalt(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get salt error: %w", err)
	}

	role, err := s.client.Login(ctx, email, cryptox.VerifierFor(password, salt))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.getMetadataRepo(tx)
		if err := repo.Forget(ctx); err != nil {
			return err
		}
		return repo.Put(ctx, map[string]string{metaEmail: email, metaRole: role})
	}); err != nil {
		s.logger.Warn(ctx, "session metadata not saved", "error", err)
	}

	return &models.Session{Email: email, Role: reading.Role(role)}, nil
}

// Logout drops the tokens and forgets the session identity.
func (s *remoteService) Logout(ctx context.Context) error {
	s.client.Logout()
	return s.getMetadataRepo(s.db).Forget(ctx)
}

func (s *remoteService) LastEmail(ctx context.Context) string {
	v, err := s.getMetadataRepo(s.db).Get(ctx, metaEmail)
	if err != nil {
		s.logger.Warn(ctx, "last session not readable", "error", err)
	}
	return v
}

func (s *remoteService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.client.ListCategories(ctx)
}

func (s *remoteService) Profile(ctx context.Context) (*models.Profile, error) {
	return s.client.GetProfile(ctx)
}

func (s *remoteService) UpdatePreferences(ctx context.Context, categories []string) (*models.Profile, error) {
	return s.client.UpdatePreferences(ctx, categories)
}

func (s *remoteService) Feed(ctx context.Context) (*models.Feed, error) {
	return s.client.DailyFeed(ctx)
}

func (s *remoteService) MarkRead(ctx context.Context, articleID string) (*models.ReadResult, error) {
	return s.client.MarkRead(ctx, articleID)
}

func (s *remoteService) Like(ctx context.Context, articleID string) (*models.LikeResult, error) {
	return s.client.ToggleLike(ctx, articleID)
}

func (s *remoteService) Comment(ctx context.Context, articleID, content string) (*models.Comment, error) {
	return s.client.AddComment(ctx, articleID, content)
}

func (s *remoteService) Comments(ctx context.Context, articleID string) ([]models.Comment, error) {
	return s.client.ListComments(ctx, articleID)
}

func (s *remoteService) Share(ctx context.Context, url, categoryID, commentary string) (*reading.Article, error) {
	return s.client.ShareArticle(ctx, url, categoryID, commentary)
}

func (s *remoteService) Recommended(ctx context.Context, limit int) ([]models.Recommended, error) {
	return s.client.ListRecommended(ctx, limit)
}

func (s *remoteService) Export(ctx context.Context) (*models.Export, error) {
	return s.client.ExportHistory(ctx)
}

// ImportCatalog creates every article of the file through the admin API.
// Creation stops at the first failure; the count covers the articles
// created before it.
func (s *remoteService) ImportCatalog(ctx context.Context, r io.Reader) (int, error) {
	articles, err := decodeCatalog(r)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, a := range articles {
		if _, err := s.client.CreateArticle(ctx, a); err != nil {
			if errors.Is(err, common.ErrorForbidden) {
				return n, err
			}
			return n, fmt.Errorf("article %s: %w", a.ID, err)
		}
		n++
	}
	return n, nil
}

func (s *remoteService) RunAutomation(ctx context.Context) (*models.AutomationStats, error) {
	return s.client.RunAutomation(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (s *remoteService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (s *remoteService) Close(ctx context.Context) error {
	return s.client.Close()
}
