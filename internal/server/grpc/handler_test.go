package grpc

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/readdaily/internal/api"
	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func scrapeMetrics(t *testing.T, env *testEnv) string {
	t.Helper()
	rec := httptest.NewRecorder()
	promhttp.HandlerFor(env.reg, promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	return rec.Body.String()
}

func TestHandler_Ping(t *testing.T) {
	env := newTestEnv(t, false)
	resp, err := env.client.Ping(context.Background(), &api.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
}

func TestHandler_Register(t *testing.T) {
	env := newTestEnv(t, false)

	resp, err := env.client.Register(context.Background(), &api.RegisterRequest{
		Name:       "Ann",
		Email:      "ann@example.com",
		Salt:       []byte("s"),
		Verifier:   []byte("v"),
		Categories: []string{"business"},
	})
	require.NoError(t, err)
	assert.Equal(t, "u-new", resp.UserID)
	assert.Equal(t, []string{"business"}, env.users.registered.Categories)
	assert.Equal(t, []byte("v"), env.users.registered.Verifier)
}

func TestHandler_Register_Conflict(t *testing.T) {
	env := newTestEnv(t, false)
	env.users.err = common.ErrorAlreadyExists

	_, err := env.client.Register(context.Background(), &api.RegisterRequest{Name: "Ann"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestHandler_LoginAndRefresh(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	resp, err := env.client.Login(ctx, &api.LoginRequest{Email: "ann@example.com", VerifierCandidate: []byte("right")})
	require.NoError(t, err)
	assert.Equal(t, "a", resp.AccessToken)
	assert.Equal(t, common.RoleReader, resp.Role)

	_, err = env.client.Login(ctx, &api.LoginRequest{Email: "ann@example.com", VerifierCandidate: []byte("wrong")})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	rt, err := env.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: "fresh"})
	require.NoError(t, err)
	assert.Equal(t, "r2", rt.RefreshToken)

	_, err = env.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: "old"})
	st, _ := status.FromError(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, common.ErrRefreshTokenExpired.Error(), st.Message())
}

func TestHandler_ListCategories(t *testing.T) {
	env := newTestEnv(t, false)
	resp, err := env.client.ListCategories(context.Background(), &api.ListCategoriesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Categories, 2)
	assert.Equal(t, api.Category{ID: "business", Name: "Business"}, resp.Categories[0])
}

func TestHandler_GetProfile_ComputesTodayCount(t *testing.T) {
	env := newTestEnv(t, false)

	resp, err := env.client.GetProfile(withToken(t, "u1", common.RoleReader), &api.GetProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Ann", resp.Profile.Name)
	assert.Equal(t, "reader", resp.Profile.Role)
	assert.Equal(t, 1, resp.Profile.TodayReadCount)
	assert.False(t, resp.Profile.GoalReached)
}

func TestHandler_GetProfile_NotFound(t *testing.T) {
	env := newTestEnv(t, false)
	env.reading.err = common.ErrorNotFound

	_, err := env.client.GetProfile(withToken(t, "u1", common.RoleReader), &api.GetProfileRequest{})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHandler_UpdatePreferences(t *testing.T) {
	env := newTestEnv(t, false)

	resp, err := env.client.UpdatePreferences(withToken(t, "u1", common.RoleReader), &api.UpdatePreferencesRequest{Categories: []string{"science"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"science"}, resp.Profile.Categories)
}

func TestHandler_DailyFeed_EmptyIsNotNull(t *testing.T) {
	env := newTestEnv(t, false)

	resp, err := env.client.DailyFeed(withToken(t, "u1", common.RoleReader), &api.DailyFeedRequest{})
	require.NoError(t, err)
	assert.Equal(t, reading.Date("2025-06-01"), resp.Date)
	assert.NotNil(t, resp.Articles)
	assert.Empty(t, resp.Articles)
}

func TestHandler_MarkRead_UsesTokenUser(t *testing.T) {
	env := newTestEnv(t, false)

	resp, err := env.client.MarkRead(withToken(t, "u1", common.RoleReader), &api.MarkReadRequest{ArticleID: "a9"})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, 1, resp.Streak.CurrentStreak)
	assert.Equal(t, []string{"u1:a9"}, env.reading.marked)
	assert.Contains(t, scrapeMetrics(t, env), "readdaily_reads_marked_total 1")
}

func TestHandler_ToggleLike(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := withToken(t, "u1", common.RoleReader)

	first, err := env.client.ToggleLike(ctx, &api.ToggleLikeRequest{ArticleID: "s1"})
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, 1, first.LikesCount)

	second, err := env.client.ToggleLike(ctx, &api.ToggleLikeRequest{ArticleID: "s1"})
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, 0, second.LikesCount)
}

func TestHandler_Comments(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := withToken(t, "u1", common.RoleReader)

	added, err := env.client.AddComment(ctx, &api.AddCommentRequest{ArticleID: "s1", Content: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "u1", added.Comment.UserID)
	assert.Equal(t, "Ann", added.Comment.UserName)
	assert.True(t, added.Comment.CommentedAt.Equal(testNow))

	_, err = env.client.AddComment(ctx, &api.AddCommentRequest{ArticleID: "s1"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	list, err := env.client.ListComments(ctx, &api.ListCommentsRequest{ArticleID: "s1"})
	require.NoError(t, err)
	assert.Len(t, list.Comments, 1)

	_, err = env.client.ListComments(ctx, &api.ListCommentsRequest{ArticleID: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHandler_ShareArticle(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := withToken(t, "u1", common.RoleReader)

	resp, err := env.client.ShareArticle(ctx, &api.ShareArticleRequest{URL: "https://example.com/a", CategoryID: "business"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.Article.RecommendedBy)
	assert.Equal(t, reading.SourceShared, resp.Article.Source)

	env.sharing.err = common.ErrorUpstreamUnavailable
	_, err = env.client.ShareArticle(ctx, &api.ShareArticleRequest{URL: "https://example.com/b", CategoryID: "business"})
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestHandler_ListRecommended(t *testing.T) {
	env := newTestEnv(t, false)

	resp, err := env.client.ListRecommended(withToken(t, "u1", common.RoleReader), &api.ListRecommendedRequest{Limit: 5})
	require.NoError(t, err)
	require.Len(t, resp.Articles, 1)
	assert.Equal(t, "Bob", resp.Articles[0].RecommenderName)
	assert.Equal(t, "Shared", resp.Articles[0].Title)
	assert.Equal(t, 5, resp.Articles[0].CommentsCount)
}

func TestHandler_ExportHistory(t *testing.T) {
	env := newTestEnv(t, false)

	resp, err := env.client.ExportHistory(withToken(t, "u1", common.RoleReader), &api.ExportHistoryRequest{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Key, "exports/u1/"))
	assert.NotEmpty(t, resp.URL)
}

func TestHandler_CreateArticle(t *testing.T) {
	env := newTestEnv(t, false)

	resp, err := env.client.CreateArticle(withToken(t, "admin", common.RoleAdmin), &api.CreateArticleRequest{
		Article: reading.Article{Title: "Rates", SourceURL: "https://example.com/r", CategoryID: "business", PublishDate: "2025-06-02"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Rates", resp.Article.Title)
	assert.Equal(t, "2025-06-02", env.catalog.created.PublishDate)
}

func TestHandler_RunAutomation(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := withToken(t, "admin", common.RoleAdmin)

	resp, err := env.client.RunAutomation(ctx, &api.RunAutomationRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, 1, resp.Skipped)
	assert.Contains(t, scrapeMetrics(t, env), "readdaily_automation_articles_created_total 2")

	env.auto.err = services.ErrAutomationRunning
	_, err = env.client.RunAutomation(ctx, &api.RunAutomationRequest{})
	assert.Equal(t, codes.Aborted, status.Code(err))
}

func TestHandler_RunAutomation_Disabled(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.client.RunAutomation(withToken(t, "admin", common.RoleAdmin), &api.RunAutomationRequest{})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestHandler_RecordsRPCMetrics(t *testing.T) {
	env := newTestEnv(t, false)
	_, _ = env.client.Ping(context.Background(), &api.PingRequest{})

	out := scrapeMetrics(t, env)
	assert.Contains(t, out, `readdaily_rpc_requests_total{code="OK",method="/readdaily.ReadDaily/Ping"} 1`)
}
