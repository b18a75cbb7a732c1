package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/repomanager"
)

// Feed is the daily selection for one user.
type Feed struct {
	Date           reading.Date
	Articles       []reading.Article
	TodayReadCount int
	GoalReached    bool
}

// MarkReadResult reports the profile state after a read was recorded.
type MarkReadResult struct {
	Changed        bool
	Streak         reading.StreakData
	TodayReadCount int
	GoalReached    bool
}

// ActivityToucher is told about every read so reading sessions stay current.
type ActivityToucher interface {
	Touch(ctx context.Context, userID string, articles int) error
}

// ReadingService runs the reading core against the relational store.
type ReadingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    ActivityToucher
	clock       Clock
	logger      logging.Logger
}

func NewReadingService(db *sql.DB, m repomanager.RepositoryManager, sessions ActivityToucher, clock Clock, logger logging.Logger) *ReadingService {
	return &ReadingService{
		db:          db,
		repomanager: m,
		sessions:    sessions,
		clock:       clock,
		logger:      logger.With("module", "reading_service"),
	}
}

// GetProfile assembles the profile of userID from the user row, its
// subscriptions and its read log.
func (s *ReadingService) GetProfile(ctx context.Context, userID string) (reading.Profile, error) {
	return s.loadProfile(ctx, s.db, userID, false)
}

// UpdatePreferences replaces the category set. The set must be non-empty
// and contain only known categories.
func (s *ReadingService) UpdatePreferences(ctx context.Context, userID string, categories []string) (reading.Profile, error) {
	cats, err := checkCategories(ctx, s.repomanager.Categories(s.db), categories)
	if err != nil {
		return reading.Profile{}, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		if _, err := repo.LockByID(ctx, userID); err != nil {
			return fmt.Errorf("error loading user: %w", err)
		}
		if err := repo.SetCategories(ctx, userID, cats); err != nil {
			return fmt.Errorf("error storing categories: %w", err)
		}
		return nil
	})
	if err != nil {
		return reading.Profile{}, err
	}

	return s.GetProfile(ctx, userID)
}

// DailyFeed selects today's articles for userID.
func (s *ReadingService) DailyFeed(ctx context.Context, userID string) (*Feed, error) {
	today := s.clock.Today()

	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.repomanager.Articles(s.db).ListForCategories(ctx, userID, p.Preferences.Categories, today)
	if err != nil {
		return nil, fmt.Errorf("error loading articles: %w", err)
	}

	return &Feed{
		Date:           today,
		Articles:       reading.SelectDaily(p, pool, today),
		TodayReadCount: reading.TodayReadCount(p, today),
		GoalReached:    reading.GoalReached(p, today),
	}, nil
}

// MarkRead records that userID read articleID today. Reading an article
// twice is a no-op. The user row stays locked while the read log is
// evaluated so concurrent reads cannot double count the streak.
func (s *ReadingService) MarkRead(ctx context.Context, userID, articleID string) (*MarkReadResult, error) {
	if err := checkID(articleID); err != nil {
		return nil, fmt.Errorf("article %q: %w", articleID, err)
	}
	today := s.clock.Today()

	var res MarkReadResult
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Articles(tx).GetByID(ctx, articleID); err != nil {
			return fmt.Errorf("error loading article: %w", err)
		}

		p, err := s.loadProfile(ctx, tx, userID, true)
		if err != nil {
			return err
		}

		updated, changed := reading.MarkRead(p, articleID, today)
		if changed {
			last := updated.ReadArticles[len(updated.ReadArticles)-1]
			if err := s.repomanager.Reads(tx).Add(ctx, userID, last); err != nil {
				return fmt.Errorf("error storing read: %w", err)
			}
			if err := s.repomanager.Users(tx).SaveActivity(ctx, userID, updated.Streak, updated.LastActive); err != nil {
				return fmt.Errorf("error storing streak: %w", err)
			}
		}

		res = MarkReadResult{
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

	if s.sessions != nil {
		n := 0
		if res.Changed {
			n = 1
		}
		if err := s.sessions.Touch(ctx, userID, n); err != nil {
			s.logger.Warn(ctx, "session touch failed", "user_id", userID, "error", err)
		}
	}

	s.logger.Debug(ctx, "article marked read", "user_id", userID, "article_id", articleID, "changed", res.Changed)
	return &res, nil
}

func (s *ReadingService) loadProfile(ctx context.Context, db dbx.DBTX, userID string, lock bool) (reading.Profile, error) {
	users := s.repomanager.Users(db)

	load := users.GetByID
	if lock {
		load = users.LockByID
	}
	u, err := load(ctx, userID)
	if err != nil {
		return reading.Profile{}, fmt.Errorf("error loading user: %w", err)
	}

	cats, err := users.GetCategories(ctx, userID)
	if err != nil {
		return reading.Profile{}, fmt.Errorf("error loading categories: %w", err)
	}

	reads, err := s.repomanager.Reads(db).List(ctx, userID)
	if err != nil {
		return reading.Profile{}, fmt.Errorf("error loading reads: %w", err)
	}

	return u.Profile(cats, reads), nil
}
