package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/metadata"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/repomanager"
)

// MetadataExtractor resolves a link into preview data.
type MetadataExtractor interface {
	Extract(ctx context.Context, rawURL string) (*metadata.Metadata, error)
}

// ShareInput is a user recommendation of an external link.
type ShareInput struct {
	URL        string `validate:"required,http_url,max=2048"`
	CategoryID string `validate:"required"`
	Commentary string `validate:"max=2000"`
}

// SharingService turns shared links into recommended articles.
type SharingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	extractor   MetadataExtractor
	clock       Clock
	logger      logging.Logger
}

func NewSharingService(db *sql.DB, m repomanager.RepositoryManager, extractor MetadataExtractor, clock Clock, logger logging.Logger) *SharingService {
	return &SharingService{
		db:          db,
		repomanager: m,
		extractor:   extractor,
		clock:       clock,
		logger:      logger.With("module", "sharing_service"),
	}
}

// ShareArticle fetches the link's metadata and stores the link as a shared
// article recommended by userID. Nothing is stored when the fetch fails.
func (s *SharingService) ShareArticle(ctx context.Context, userID string, in ShareInput) (*reading.Article, error) {
	in.URL = strings.TrimSpace(in.URL)
	in.Commentary = strings.TrimSpace(in.Commentary)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	cats, err := checkCategories(ctx, s.repomanager.Categories(s.db), []string{in.CategoryID})
	if err != nil {
		return nil, err
	}

	meta, err := s.extractor.Extract(ctx, in.URL)
	if err != nil {
		s.logger.Warn(ctx, "metadata extraction failed", "url", in.URL, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorUpstreamUnavailable, err)
	}

	title := meta.Title
	if title == "" {
		title = in.URL
	}

	a, err := s.repomanager.Articles(s.db).Create(ctx, &reading.Article{
		Title:                title,
		Description:          meta.Description,
		SourceURL:            metadata.CanonicalURL(in.URL),
		ImageURL:             meta.ImageURL,
		CategoryID:           cats[0],
		EstimatedReadingTime: max(meta.ReadingTime, 1),
		PublishDate:          s.clock.Today(),
		Source:               reading.SourceShared,
		RecommendedBy:        userID,
		RecommendedAt:        s.clock.Now(),
		UserCommentary:       in.Commentary,
	})
	if err != nil {
		return nil, fmt.Errorf("error storing shared article: %w", err)
	}

	s.logger.Info(ctx, "article shared", "user_id", userID, "article_id", a.ID)
	return a, nil
}
