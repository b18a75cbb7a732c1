package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/metadata"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/readdaily/internal/server/summarizer"
	"github.com/dmitrijs2005/readdaily/internal/server/youtube"
)

// ErrAutomationRunning is returned when a run is requested while another
// one is still in progress.
var ErrAutomationRunning = errors.New("automation already running")

// VideoSource lists recent uploads of a channel.
type VideoSource interface {
	LatestVideos(ctx context.Context, channelID string, max int) ([]youtube.Video, error)
}

// Summarizer classifies and condenses video descriptions.
type Summarizer interface {
	Classify(ctx context.Context, title, description string, categories []string) (string, error)
	Summarize(ctx context.Context, title, description string) (string, error)
}

// AutomationService imports channel uploads as summarized articles.
type AutomationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	videos      VideoSource
	summarizer  Summarizer
	channels    []string
	maxPerRun   int
	clock       Clock
	logger      logging.Logger
	running     atomic.Bool
}

func NewAutomationService(db *sql.DB, m repomanager.RepositoryManager, videos VideoSource, sum Summarizer,
	channels []string, maxPerRun int, clock Clock, logger logging.Logger) *AutomationService {
	return &AutomationService{
		db:          db,
		repomanager: m,
		videos:      videos,
		summarizer:  sum,
		channels:    channels,
		maxPerRun:   maxPerRun,
		clock:       clock,
		logger:      logger.With("module", "automation"),
	}
}

// Run pulls the latest uploads of every configured channel. Videos already
// in the catalog are skipped; a failure on one video is logged and counted
// without aborting the run.
func (s *AutomationService) Run(ctx context.Context) (models.RunStats, error) {
	var stats models.RunStats
	if !s.running.CompareAndSwap(false, true) {
		return stats, ErrAutomationRunning
	}
	defer s.running.Store(false)

	cats, err := s.repomanager.Categories(s.db).List(ctx)
	if err != nil {
		return stats, fmt.Errorf("error listing categories: %w", err)
	}
	known := make([]string, 0, len(cats))
	for _, c := range cats {
		known = append(known, c.ID)
	}

	for _, channel := range s.channels {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		videos, err := s.videos.LatestVideos(ctx, channel, s.maxPerRun)
		if err != nil {
			s.logger.Warn(ctx, "channel listing failed", "channel", channel, "error", err)
			stats.Failed++
			continue
		}

		for _, v := range videos {
			stats.Fetched++
			created, err := s.importVideo(ctx, v, known)
			switch {
			case err != nil:
				s.logger.Warn(ctx, "video skipped", "video_id", v.ID, "error", err)
				stats.Failed++
			case created:
				stats.Created++
			default:
				stats.Skipped++
			}
		}
	}

	s.logger.Info(ctx, "automation run finished",
		"fetched", stats.Fetched, "skipped", stats.Skipped, "created", stats.Created, "failed", stats.Failed)
	return stats, nil
}

func (s *AutomationService) importVideo(ctx context.Context, v youtube.Video, known []string) (bool, error) {
	repo := s.repomanager.Articles(s.db)

	v.URL = metadata.CanonicalURL(v.URL)
	exists, err := repo.ExistsBySourceURL(ctx, v.URL)
	if err != nil {
		return false, fmt.Errorf("error checking article: %w", err)
	}
	if exists {
		return false, nil
	}

	category, err := s.summarizer.Classify(ctx, v.Title, v.Description, known)
	category = strings.TrimSpace(strings.ToLower(category))
	if err != nil || !slices.Contains(known, category) {
		if err != nil {
			s.logger.Debug(ctx, "classification fell back to keywords", "video_id", v.ID, "error", err)
		}
		category = summarizer.KeywordCategory(v.Title+" "+v.Description, known)
	}

	summary, err := s.summarizer.Summarize(ctx, v.Title, v.Description)
	if err != nil {
		return false, fmt.Errorf("error summarizing: %w", err)
	}

	_, err = repo.Create(ctx, &reading.Article{
		Title:                v.Title,
		Description:          summary,
		SourceURL:            v.URL,
		ImageURL:             v.ThumbnailURL,
		CategoryID:           category,
		EstimatedReadingTime: reading.ReadingTime(len(strings.Fields(summary))),
		PublishDate:          s.clock.Today(),
		Source:               reading.SourceYouTube,
	})
	if err != nil {
		return false, fmt.Errorf("error storing article: %w", err)
	}
	return true, nil
}
