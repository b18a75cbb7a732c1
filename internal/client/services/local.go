package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/client/client"
	"github.com/dmitrijs2005/readdaily/internal/client/models"
	"github.com/dmitrijs2005/readdaily/internal/client/repositories/catalog"
	"github.com/dmitrijs2005/readdaily/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/readdaily/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/cryptox"
	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/google/uuid"
)

type registerInput struct {
	Name       string   `validate:"required,max=100"`
	Email      string   `validate:"required,email,max=254"`
	Categories []string `validate:"required,min=1"`
}

// localService keeps the profile and the article catalog in the local
// SQLite database and runs the reading core on them.
type localService struct {
	db     *sql.DB
	loc    *time.Location
	now    func() time.Time
	logger logging.Logger

	userID  string
	session *models.Session
}

// NewLocalService constructs a Service over db. Calendar days are taken in loc.
func NewLocalService(db *sql.DB, loc *time.Location, logger logging.Logger) Service {
	return &localService{db: db, loc: loc, now: time.Now, logger: logger.With("module", "local_service")}
}

func (s *localService) today() reading.Date {
	return reading.TodayIn(s.now(), s.loc)
}

func (s *localService) Register(ctx context.Context, name, email string, password []byte, categories []string) error {
	in := registerInput{
		Name:       strings.TrimSpace(name),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Categories: categories,
	}
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	cats, err := s.checkCategories(ctx, categories)
	if err != nil {
		return err
	}

	p := reading.NewProfile(uuid.NewString(), in.Name, in.Email, cats, s.today())
	salt, verifier := cryptox.NewCredentials(password)

	if err := profiles.NewSQLiteRepository(s.db).Create(ctx, p, profiles.Credentials{Salt: salt, Verifier: verifier}); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	s.logger.Info(ctx, "local profile created", "user_id", p.ID)
	return nil
}

// Login verifies password against the stored verifier. An unknown e-mail
// means the account was never created on this machine. LastActive is left
// alone; only MarkRead advances it, as on the server.
func (s *localService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	repo := profiles.NewSQLiteRepository(s.db)

	creds, err := repo.Credentials(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, client.ErrNoLocalAccount
		}
		return nil, err
	}
	if !cryptox.Equal(cryptox.VerifierFor(password, creds.Salt), creds.Verifier) {
		return nil, client.ErrUnauthorized
	}

	p, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := metadata.NewSQLiteRepository(s.db).Put(ctx, map[string]string{metaEmail: p.Email, metaRole: string(p.Role)}); err != nil {
		s.logger.Warn(ctx, "session metadata not saved", "error", err)
	}

	s.userID = p.ID
	s.session = &models.Session{Email: p.Email, Role: p.Role}
	return s.session, nil
}

func (s *localService) Logout(ctx context.Context) error {
	s.userID = ""
	s.session = nil
	return metadata.NewSQLiteRepository(s.db).Forget(ctx)
}

func (s *localService) LastEmail(ctx context.Context) string {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, metaEmail)
	if err != nil {
		s.logger.Warn(ctx, "last session not readable", "error", err)
	}
	return v
}

func (s *localService) Categories(ctx context.Context) ([]models.Category, error) {
	return catalog.NewSQLiteRepository(s.db).ListCategories(ctx)
}

func (s *localService) Profile(ctx context.Context) (*models.Profile, error) {
	p, err := s.loadProfile(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return s.toProfile(p), nil
}

func (s *localService) UpdatePreferences(ctx context.Context, categories []string) (*models.Profile, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	cats, err := s.checkCategories(ctx, categories)
	if err != nil {
		return nil, err
	}

	var updated reading.Profile
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		p, err := s.loadProfile(ctx, tx)
		if err != nil {
			return err
		}
		p.Preferences.Categories = cats
		if err := profiles.NewSQLiteRepository(tx).Save(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.toProfile(updated), nil
}

func (s *localService) Feed(ctx context.Context) (*models.Feed, error) {
	today := s.today()

	p, err := s.loadProfile(ctx, s.db)
	if err != nil {
		return nil, err
	}

	pool, err := catalog.NewSQLiteRepository(s.db).ListForCategories(ctx, p.Preferences.Categories, today)
	if err != nil {
		return nil, err
	}

	return &models.Feed{
		Date:           today,
		Articles:       reading.SelectDaily(p, pool, today),
		TodayReadCount: reading.TodayReadCount(p, today),
		GoalReached:    reading.GoalReached(p, today),
	}, nil
}

// MarkRead records the read in the local profile. The article must be in
// the imported catalog.
func (s *localService) MarkRead(ctx context.Context, articleID string) (*models.ReadResult, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	today := s.today()

	var res models.ReadResult
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := catalog.NewSQLiteRepository(tx).GetByID(ctx, articleID); err != nil {
			return fmt.Errorf("article %q: %w", articleID, err)
		}

		p, err := s.loadProfile(ctx, tx)
		if err != nil {
			return err
		}

		updated, changed := reading.MarkRead(p, articleID, today)
		if changed {
			if err := profiles.NewSQLiteRepository(tx).Save(ctx, updated); err != nil {
				return err
			}
		}

		res = models.ReadResult{
			Changed:        changed,
			Streak:         updated.Streak,
			TodayReadCount: reading.TodayReadCount(updated, today),
			GoalReached:    reading.GoalReached(updated, today),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *localService) Like(context.Context, string) (*models.LikeResult, error) {
	return nil, ErrNotSupported
}

func (s *localService) Comment(context.Context, string, string) (*models.Comment, error) {
	return nil, ErrNotSupported
}

func (s *localService) Comments(context.Context, string) ([]models.Comment, error) {
	return nil, ErrNotSupported
}

func (s *localService) Share(context.Context, string, string, string) (*reading.Article, error) {
	return nil, ErrNotSupported
}

func (s *localService) Recommended(context.Context, int) ([]models.Recommended, error) {
	return nil, ErrNotSupported
}

func (s *localService) Export(context.Context) (*models.Export, error) {
	return nil, ErrNotSupported
}

func (s *localService) RunAutomation(context.Context) (*models.AutomationStats, error) {
	return nil, ErrNotSupported
}

// ImportCatalog upserts the articles of r in one transaction. Articles of
// unknown categories reject the whole file.
func (s *localService) ImportCatalog(ctx context.Context, r io.Reader) (int, error) {
	articles, err := decodeCatalog(r)
	if err != nil {
		return 0, err
	}

	known, err := s.categorySet(ctx)
	if err != nil {
		return 0, err
	}
	for _, a := range articles {
		if _, ok := known[a.CategoryID]; !ok {
			return 0, fmt.Errorf("%w: article %s: unknown category %q", common.ErrorValidation, a.ID, a.CategoryID)
		}
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return catalog.NewSQLiteRepository(tx).Upsert(ctx, articles)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info(ctx, "catalog imported", "articles", len(articles))
	return len(articles), nil
}

func (s *localService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *localService) Close(ctx context.Context) error {
	return s.db.Close()
}

func (s *localService) requireSession() error {
	if s.userID == "" {
		return client.ErrUnauthorized
	}
	return nil
}

func (s *localService) loadProfile(ctx context.Context, db dbx.DBTX) (reading.Profile, error) {
	if err := s.requireSession(); err != nil {
		return reading.Profile{}, err
	}
	return profiles.NewSQLiteRepository(db).GetByID(ctx, s.userID)
}

func (s *localService) toProfile(p reading.Profile) *models.Profile {
	today := s.today()
	return &models.Profile{
		Profile:        p,
		TodayReadCount: reading.TodayReadCount(p, today),
		GoalReached:    reading.GoalReached(p, today),
	}
}

func (s *localService) categorySet(ctx context.Context) (map[string]struct{}, error) {
	list, err := catalog.NewSQLiteRepository(s.db).ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(list))
	for _, c := range list {
		set[c.ID] = struct{}{}
	}
	return set, nil
}

// checkCategories normalizes ids and verifies each one against the local
// category table. An empty result is a validation error.
func (s *localService) checkCategories(ctx context.Context, ids []string) ([]string, error) {
	ids = reading.NormalizeCategories(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one category is required", common.ErrorValidation)
	}

	known, err := s.categorySet(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, fmt.Errorf("%w: unknown category %q", common.ErrorValidation, id)
		}
	}
	return ids, nil
}
