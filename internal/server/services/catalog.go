package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/repomanager"
)

// ArticleInput is an editorial article created by an administrator.
type ArticleInput struct {
	Title                string `validate:"required,max=500"`
	Description          string `validate:"max=5000"`
	SourceURL            string `validate:"required,http_url"`
	ImageURL             string `validate:"omitempty,http_url"`
	CategoryID           string `validate:"required"`
	EstimatedReadingTime int    `validate:"gte=0,lte=600"`
	PublishDate          string `validate:"omitempty,datetime=2006-01-02"`
	Featured             bool
}

// CatalogService manages categories and editorial articles.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       Clock
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager, clock Clock) *CatalogService {
	return &CatalogService{db: db, repomanager: m, clock: clock}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	list, err := s.repomanager.Categories(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	return list, nil
}

// CreateArticle stores an editorial article. A missing publish date means
// today; a missing reading time means one minute.
func (s *CatalogService) CreateArticle(ctx context.Context, in ArticleInput) (*reading.Article, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.SourceURL = strings.TrimSpace(in.SourceURL)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	cats, err := checkCategories(ctx, s.repomanager.Categories(s.db), []string{in.CategoryID})
	if err != nil {
		return nil, err
	}

	publish := reading.Date(in.PublishDate)
	if publish.IsZero() {
		publish = s.clock.Today()
	}

	a, err := s.repomanager.Articles(s.db).Create(ctx, &reading.Article{
		Title:                in.Title,
		Description:          strings.TrimSpace(in.Description),
		SourceURL:            in.SourceURL,
		ImageURL:             in.ImageURL,
		CategoryID:           cats[0],
		EstimatedReadingTime: max(in.EstimatedReadingTime, 1),
		PublishDate:          publish,
		Featured:             in.Featured,
		Source:               reading.SourceEditorial,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating article: %w", err)
	}
	return a, nil
}
