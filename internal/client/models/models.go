// Package models defines the view types the CLI renders. Both the remote
// and the local backends produce them.
package models

import (
	"time"

	"github.com/dmitrijs2005/readdaily/internal/reading"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Profile is a reading profile together with today's goal progress.
type Profile struct {
	reading.Profile
	TodayReadCount int
	GoalReached    bool
}

type Feed struct {
	Date           reading.Date
	Articles       []reading.Article
	TodayReadCount int
	GoalReached    bool
}

type ReadResult struct {
	Changed        bool
	Streak         reading.StreakData
	TodayReadCount int
	GoalReached    bool
}

type LikeResult struct {
	Liked      bool
	LikesCount int
}

type Comment struct {
	ID          string
	UserName    string
	Content     string
	CommentedAt time.Time
}

type Recommended struct {
	reading.Article
	RecommenderName string
	LikedByMe       bool
	CommentsCount   int
}

type Export struct {
	URL       string
	Key       string
	ExpiresAt time.Time
}

type AutomationStats struct {
	Fetched int
	Skipped int
	Created int
	Failed  int
}

// Session identifies the signed-in account.
type Session struct {
	Email string
	Role  reading.Role
}

func (s Session) IsAdmin() bool { return s.Role == reading.RoleAdmin }
