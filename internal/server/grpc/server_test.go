package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/api"
	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/auth"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
	"github.com/dmitrijs2005/readdaily/internal/server/observability"
	"github.com/dmitrijs2005/readdaily/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
)

const testSecret = "test-secret"

var testNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

type fakeUsers struct {
	registered services.RegisterInput
	err        error
}

func (f *fakeUsers) Register(_ context.Context, in services.RegisterInput) (*models.User, error) {
	f.registered = in
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: "u-new", Name: in.Name, Email: in.Email}, nil
}

func (f *fakeUsers) GetSalt(context.Context, string) ([]byte, error) {
	return []byte("salt"), f.err
}

func (f *fakeUsers) Login(_ context.Context, _ string, v []byte) (*services.TokenPair, error) {
	if string(v) != "right" {
		return nil, common.ErrorUnauthorized
	}
	return &services.TokenPair{AccessToken: "a", RefreshToken: "r", Role: common.RoleReader}, nil
}

func (f *fakeUsers) RefreshToken(_ context.Context, token string) (*services.TokenPair, error) {
	if token == "old" {
		return nil, common.ErrRefreshTokenExpired
	}
	return &services.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil
}

type fakeReading struct {
	profile reading.Profile
	marked  []string
	err     error
}

func (f *fakeReading) GetProfile(context.Context, string) (reading.Profile, error) {
	return f.profile, f.err
}

func (f *fakeReading) UpdatePreferences(_ context.Context, _ string, cats []string) (reading.Profile, error) {
	if f.err != nil {
		return reading.Profile{}, f.err
	}
	f.profile.Preferences.Categories = cats
	return f.profile, nil
}

func (f *fakeReading) DailyFeed(context.Context, string) (*services.Feed, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.Feed{Date: "2025-06-01"}, nil
}

func (f *fakeReading) MarkRead(_ context.Context, userID, articleID string) (*services.MarkReadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.marked = append(f.marked, userID+":"+articleID)
	return &services.MarkReadResult{
		Changed:        true,
		Streak:         reading.StreakData{CurrentStreak: 1, LongestStreak: 1, LastReadDate: "2025-06-01"},
		TodayReadCount: 1,
	}, nil
}

type fakeSocial struct {
	liked bool
}

func (f *fakeSocial) ToggleLike(context.Context, string, string) (*models.LikeResult, error) {
	f.liked = !f.liked
	n := 0
	if f.liked {
		n = 1
	}
	return &models.LikeResult{Liked: f.liked, LikesCount: n}, nil
}

func (f *fakeSocial) AddComment(_ context.Context, articleID, userID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, common.ErrorValidation
	}
	return &models.Comment{ID: "c1", ArticleID: articleID, UserID: userID, UserName: "Ann", Content: content, CommentedAt: testNow}, nil
}

func (f *fakeSocial) ListComments(_ context.Context, articleID string) ([]models.Comment, error) {
	if articleID == "missing" {
		return nil, common.ErrorNotFound
	}
	return []models.Comment{{ID: "c1", ArticleID: articleID, Content: "hi"}}, nil
}

func (f *fakeSocial) ListRecommended(_ context.Context, _ string, limit int) ([]models.RecommendedArticle, error) {
	return []models.RecommendedArticle{{
		Article:         reading.Article{ID: "s1", Title: "Shared"},
		RecommenderName: "Bob",
		CommentsCount:   limit,
	}}, nil
}

type fakeSharing struct{ err error }

func (f *fakeSharing) ShareArticle(_ context.Context, userID string, in services.ShareInput) (*reading.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &reading.Article{ID: "s1", SourceURL: in.URL, CategoryID: in.CategoryID, RecommendedBy: userID, Source: reading.SourceShared}, nil
}

type fakeCatalog struct {
	created services.ArticleInput
}

func (f *fakeCatalog) ListCategories(context.Context) ([]models.Category, error) {
	return []models.Category{{ID: "business", Name: "Business"}, {ID: "technology", Name: "Technology"}}, nil
}

func (f *fakeCatalog) CreateArticle(_ context.Context, in services.ArticleInput) (*reading.Article, error) {
	f.created = in
	return &reading.Article{ID: "a1", Title: in.Title, CategoryID: in.CategoryID, Source: reading.SourceEditorial}, nil
}

type fakeExport struct{}

func (fakeExport) ExportHistory(_ context.Context, userID string) (*services.Export, error) {
	return &services.Export{Key: "exports/" + userID + "/x.json", URL: "https://s3/x", ExpiresAt: testNow.Add(time.Hour)}, nil
}

type fakeAutomation struct {
	err error
}

func (f *fakeAutomation) Run(context.Context) (models.RunStats, error) {
	if f.err != nil {
		return models.RunStats{}, f.err
	}
	return models.RunStats{Fetched: 3, Skipped: 1, Created: 2}, nil
}

type testEnv struct {
	client  *api.Client
	users   *fakeUsers
	reading *fakeReading
	social  *fakeSocial
	sharing *fakeSharing
	catalog *fakeCatalog
	auto    *fakeAutomation
	reg     *prometheus.Registry
}

func newTestEnv(t *testing.T, withAutomation bool) *testEnv {
	t.Helper()

	env := &testEnv{
		users: &fakeUsers{},
		reading: &fakeReading{profile: reading.Profile{
			ID:           "u1",
			Name:         "Ann",
			Role:         reading.RoleReader,
			Preferences:  reading.Preferences{Categories: []string{"business"}},
			ReadArticles: []reading.ReadArticle{{ArticleID: "a1", ReadDate: "2025-06-01"}},
		}},
		social:  &fakeSocial{},
		sharing: &fakeSharing{},
		catalog: &fakeCatalog{},
		reg:     prometheus.NewRegistry(),
	}

	svc := Services{
		Users:   env.users,
		Reading: env.reading,
		Social:  env.social,
		Sharing: env.sharing,
		Catalog: env.catalog,
		Export:  fakeExport{},
		Clock:   services.FixedClock(testNow),
	}
	if withAutomation {
		env.auto = &fakeAutomation{}
		svc.Automation = env.auto
	}

	s := NewGRPCServer("bufnet", logging.Nop(), svc, observability.NewMetrics(env.reg), testSecret)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = s.serve(ctx, lis)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	env.client = api.NewClient(conn)
	return env
}

func withToken(t *testing.T, userID, role string) context.Context {
	t.Helper()
	token, err := auth.GenerateToken(userID, role, []byte(testSecret), time.Minute)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, token)
}
