package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/dbx"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
	"github.com/dmitrijs2005/readdaily/internal/server/repositories/repomanager"
)

// MaxCommentLength bounds comment content in characters.
const MaxCommentLength = 2000

// Recommended list page bounds.
const (
	DefaultRecommendedLimit = 20
	MaxRecommendedLimit     = 100
)

// SocialService owns the like ledger, comments and the recommended list.
type SocialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSocialService(db *sql.DB, m repomanager.RepositoryManager) *SocialService {
	return &SocialService{db: db, repomanager: m}
}

// ToggleLike removes the caller's like when present and adds it otherwise.
// The cached counter is recomputed from the ledger while the article row is
// locked, so concurrent toggles cannot drift.
func (s *SocialService) ToggleLike(ctx context.Context, articleID, userID string) (*models.LikeResult, error) {
	if err := checkID(articleID); err != nil {
		return nil, fmt.Errorf("article %q: %w", articleID, err)
	}

	var res models.LikeResult
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		articles := s.repomanager.Articles(tx)
		likes := s.repomanager.Likes(tx)

		if err := articles.LockForUpdate(ctx, articleID); err != nil {
			return fmt.Errorf("error locking article: %w", err)
		}

		removed, err := likes.Delete(ctx, articleID, userID)
		if err != nil {
			return fmt.Errorf("error removing like: %w", err)
		}
		if !removed {
			if err := likes.Insert(ctx, articleID, userID); err != nil {
				return fmt.Errorf("error adding like: %w", err)
			}
		}

		n, err := likes.Count(ctx, articleID)
		if err != nil {
			return fmt.Errorf("error counting likes: %w", err)
		}
		if err := articles.SetLikesCount(ctx, articleID, n); err != nil {
			return fmt.Errorf("error storing likes count: %w", err)
		}

		res = models.LikeResult{Liked: !removed, LikesCount: n}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// AddComment appends a comment. Content is trimmed and must hold between 1
// and MaxCommentLength characters.
func (s *SocialService) AddComment(ctx context.Context, articleID, userID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment is empty", common.ErrorValidation)
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", common.ErrorValidation, MaxCommentLength)
	}
	if err := checkID(articleID); err != nil {
		return nil, fmt.Errorf("article %q: %w", articleID, err)
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	c, err := s.repomanager.Comments(s.db).Create(ctx, &models.Comment{
		ArticleID: articleID,
		UserID:    userID,
		Content:   content,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}
	c.UserName = user.Name
	return c, nil
}

// ListComments returns the comments of an article, newest first.
func (s *SocialService) ListComments(ctx context.Context, articleID string) ([]models.Comment, error) {
	if err := checkID(articleID); err != nil {
		return nil, fmt.Errorf("article %q: %w", articleID, err)
	}
	if _, err := s.repomanager.Articles(s.db).GetByID(ctx, articleID); err != nil {
		return nil, fmt.Errorf("error loading article: %w", err)
	}

	list, err := s.repomanager.Comments(s.db).ListByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	return list, nil
}

// ListRecommended returns shared articles, newest share first, annotated
// for viewerID. Non-positive limits use the default page size.
func (s *SocialService) ListRecommended(ctx context.Context, viewerID string, limit int) ([]models.RecommendedArticle, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecommendedLimit
	case limit > MaxRecommendedLimit:
		limit = MaxRecommendedLimit
	}

	list, err := s.repomanager.Articles(s.db).ListRecommended(ctx, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing recommended articles: %w", err)
	}
	return list, nil
}
