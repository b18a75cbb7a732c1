package models

import (
	"time"

	"github.com/dmitrijs2005/readdaily/internal/reading"
)

// Comment is an append-only remark on an article.
type Comment struct {
	ID          string
	ArticleID   string
	UserID      string
	UserName    string
	Content     string
	CommentedAt time.Time
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked      bool
	LikesCount int
}

// RecommendedArticle is a shared article annotated for a viewer.
type RecommendedArticle struct {
	reading.Article
	RecommenderName string
	LikedByMe       bool
	CommentsCount   int
}

// Category is a topic articles are filed under.
type Category struct {
	ID   string
	Name string
}

// RunStats counts the outcome of one content automation run.
type RunStats struct {
	Fetched int
	Skipped int
	Created int
	Failed  int
}
