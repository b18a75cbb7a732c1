package api

import (
	"time"

	"github.com/dmitrijs2005/readdaily/internal/reading"
)

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Salt       []byte   `json:"salt"`
	Verifier   []byte   `json:"verifier"`
	Categories []string `json:"categories"`
}

type RegisterResponse struct {
	UserID string `json:"userId"`
}

type GetSaltRequest struct {
	Email string `json:"email"`
}

type GetSaltResponse struct {
	Salt []byte `json:"salt"`
}

type LoginRequest struct {
	Email             string `json:"email"`
	VerifierCandidate []byte `json:"verifierCandidate"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Role         string `json:"role"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
}

// Profile is the user profile as seen by its owner.
type Profile struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Email          string                `json:"email"`
	Role           string                `json:"role"`
	JoinDate       reading.Date          `json:"joinDate"`
	LastActive     reading.Date          `json:"lastActive"`
	Categories     []string              `json:"categories"`
	ReadArticles   []reading.ReadArticle `json:"readArticles"`
	Streak         reading.StreakData    `json:"streakData"`
	TodayReadCount int                   `json:"todayReadCount"`
	GoalReached    bool                  `json:"goalReached"`
}

type GetProfileRequest struct{}

type GetProfileResponse struct {
	Profile Profile `json:"profile"`
}

type UpdatePreferencesRequest struct {
	Categories []string `json:"categories"`
}

type UpdatePreferencesResponse struct {
	Profile Profile `json:"profile"`
}

type DailyFeedRequest struct{}

type DailyFeedResponse struct {
	Date           reading.Date      `json:"date"`
	Articles       []reading.Article `json:"articles"`
	TodayReadCount int               `json:"todayReadCount"`
	GoalReached    bool              `json:"goalReached"`
}

type MarkReadRequest struct {
	ArticleID string `json:"articleId"`
}

type MarkReadResponse struct {
	Changed        bool               `json:"changed"`
	Streak         reading.StreakData `json:"streakData"`
	TodayReadCount int                `json:"todayReadCount"`
	GoalReached    bool               `json:"goalReached"`
}

type ToggleLikeRequest struct {
	ArticleID string `json:"articleId"`
}

type ToggleLikeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

type Comment struct {
	ID          string    `json:"id"`
	ArticleID   string    `json:"articleId"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	Content     string    `json:"content"`
	CommentedAt time.Time `json:"commentedAt"`
}

type AddCommentRequest struct {
	ArticleID string `json:"articleId"`
	Content   string `json:"content"`
}

type AddCommentResponse struct {
	Comment Comment `json:"comment"`
}

type ListCommentsRequest struct {
	ArticleID string `json:"articleId"`
}

type ListCommentsResponse struct {
	Comments []Comment `json:"comments"`
}

type ShareArticleRequest struct {
	URL        string `json:"url"`
	CategoryID string `json:"categoryId"`
	Commentary string `json:"commentary"`
}

type ShareArticleResponse struct {
	Article reading.Article `json:"article"`
}

// RecommendedArticle is a shared article annotated for the viewer.
type RecommendedArticle struct {
	reading.Article
	RecommenderName string `json:"recommenderName"`
	LikedByMe       bool   `json:"likedByMe"`
	CommentsCount   int    `json:"commentsCount"`
}

type ListRecommendedRequest struct {
	Limit int `json:"limit"`
}

type ListRecommendedResponse struct {
	Articles []RecommendedArticle `json:"articles"`
}

type ExportHistoryRequest struct{}

type ExportHistoryResponse struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type CreateArticleRequest struct {
	Article reading.Article `json:"article"`
}

type CreateArticleResponse struct {
	Article reading.Article `json:"article"`
}

type RunAutomationRequest struct{}

type RunAutomationResponse struct {
	Fetched int `json:"fetched"`
	Skipped int `json:"skipped"`
	Created int `json:"created"`
	Failed  int `json:"failed"`
}
