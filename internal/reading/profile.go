package reading

import (
	"slices"
	"strings"
	"time"
)

// Role grants UI and API affordances. It is resolved once at login.
type Role string

const (
	RoleReader Role = "reader"
	RoleAdmin  Role = "admin"
)

// Preferences holds the categories a user subscribes to.
type Preferences struct {
	Categories []string `json:"categories"`
}

// Has reports whether categoryID is subscribed.
func (p Preferences) Has(categoryID string) bool {
	return slices.Contains(p.Categories, categoryID)
}

// NormalizeCategories trims, drops empties and duplicates, and sorts ids.
// Category sets are order-irrelevant; sorting keeps persisted values stable.
func NormalizeCategories(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// ReadArticle records that an article was read on a given day.
type ReadArticle struct {
	ArticleID string `json:"articleId"`
	ReadDate  Date   `json:"readDate"`
}

// StreakData is the persisted streak state.
// LongestStreak >= CurrentStreak holds after every update.
type StreakData struct {
	CurrentStreak int  `json:"currentStreak"`
	LongestStreak int  `json:"longestStreak"`
	LastReadDate  Date `json:"lastReadDate"`
}

// Profile is the aggregate a session operates on and the unit of persistence.
type Profile struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	JoinDate     Date
	LastActive   Date
	Preferences  Preferences
	ReadArticles []ReadArticle
	Streak       StreakData
}

// NewProfile builds the profile created at onboarding.
func NewProfile(id, name, email string, categories []string, today Date) Profile {
	return Profile{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Email:       strings.ToLower(strings.TrimSpace(email)),
		Role:        RoleReader,
		JoinDate:    today,
		LastActive:  today,
		Preferences: Preferences{Categories: NormalizeCategories(categories)},
	}
}

// IsAdmin reports whether the profile carries the admin role.
func (p Profile) IsAdmin() bool { return p.Role == RoleAdmin }

// Article is a read-only value during selection. The sharing fields are set
// only for articles recommended by a user.
type Article struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description,omitempty"`
	SourceURL            string    `json:"sourceUrl"`
	ImageURL             string    `json:"imageUrl,omitempty"`
	CategoryID           string    `json:"categoryId"`
	EstimatedReadingTime int       `json:"estimatedReadingTime"`
	PublishDate          Date      `json:"publishDate"`
	Featured             bool      `json:"featured"`
	Source               string    `json:"source,omitempty"`
	RecommendedBy        string    `json:"recommendedBy,omitempty"`
	RecommendedAt        time.Time `json:"recommendedAt,omitzero"`
	UserCommentary       string    `json:"userCommentary,omitempty"`
	LikesCount           int       `json:"likesCount"`
}

// Article sources.
const (
	SourceEditorial = "editorial"
	SourceShared    = "shared"
	SourceYouTube   = "youtube"
)

// WordsPerMinute is the reading speed behind EstimatedReadingTime.
const WordsPerMinute = 200

// ReadingTime converts a word count to whole minutes, at least 1.
func ReadingTime(words int) int {
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	return max(minutes, 1)
}
