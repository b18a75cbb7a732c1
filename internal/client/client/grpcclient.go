package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/api"
	"github.com/dmitrijs2005/readdaily/internal/client/models"
	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// rpc is the generated-style stub surface of api.Client; tests swap it.
type rpc interface {
	Ping(ctx context.Context, in *api.PingRequest, opts ...grpc.CallOption) (*api.PingResponse, error)
	Register(ctx context.Context, in *api.RegisterRequest, opts ...grpc.CallOption) (*api.RegisterResponse, error)
	GetSalt(ctx context.Context, in *api.GetSaltRequest, opts ...grpc.CallOption) (*api.GetSaltResponse, error)
	Login(ctx context.Context, in *api.LoginRequest, opts ...grpc.CallOption) (*api.LoginResponse, error)
	RefreshToken(ctx context.Context, in *api.RefreshTokenRequest, opts ...grpc.CallOption) (*api.RefreshTokenResponse, error)
	ListCategories(ctx context.Context, in *api.ListCategoriesRequest, opts ...grpc.CallOption) (*api.ListCategoriesResponse, error)
	GetProfile(ctx context.Context, in *api.GetProfileRequest, opts ...grpc.CallOption) (*api.GetProfileResponse, error)
	UpdatePreferences(ctx context.Context, in *api.UpdatePreferencesRequest, opts ...grpc.CallOption) (*api.UpdatePreferencesResponse, error)
	DailyFeed(ctx context.Context, in *api.DailyFeedRequest, opts ...grpc.CallOption) (*api.DailyFeedResponse, error)
	MarkRead(ctx context.Context, in *api.MarkReadRequest, opts ...grpc.CallOption) (*api.MarkReadResponse, error)
	ToggleLike(ctx context.Context, in *api.ToggleLikeRequest, opts ...grpc.CallOption) (*api.ToggleLikeResponse, error)
	AddComment(ctx context.Context, in *api.AddCommentRequest, opts ...grpc.CallOption) (*api.AddCommentResponse, error)
	ListComments(ctx context.Context, in *api.ListCommentsRequest, opts ...grpc.CallOption) (*api.ListCommentsResponse, error)
	ShareArticle(ctx context.Context, in *api.ShareArticleRequest, opts ...grpc.CallOption) (*api.ShareArticleResponse, error)
	ListRecommended(ctx context.Context, in *api.ListRecommendedRequest, opts ...grpc.CallOption) (*api.ListRecommendedResponse, error)
	ExportHistory(ctx context.Context, in *api.ExportHistoryRequest, opts ...grpc.CallOption) (*api.ExportHistoryResponse, error)
	CreateArticle(ctx context.Context, in *api.CreateArticleRequest, opts ...grpc.CallOption) (*api.CreateArticleResponse, error)
	RunAutomation(ctx context.Context, in *api.RunAutomationRequest, opts ...grpc.CallOption) (*api.RunAutomationResponse, error)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	if token != "" {
		md.Set(common.AccessTokenHeaderName, token)
	}

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	accessToken, refreshToken := s.tokens()
	ctx = withAccessToken(ctx, accessToken)

	err := invoker(ctx, method, req, reply, cc, opts...)

	if err != nil {

		st, ok := status.FromError(err)
		if !ok {
			return err
		}

		if st.Code() != codes.Unauthenticated {
			return err
		}
		if st.Message() != common.ErrTokenExpired.Error() {
			return err
		}

		if refreshToken == "" {
			return err
		}

		refreshTokenResponse, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refreshToken})
		if err != nil {
			return err
		}

		s.setTokens(refreshTokenResponse.AccessToken, refreshTokenResponse.RefreshToken)

		// tokens refreshed, retry once with the new access token
		ctx = withAccessToken(ctx, refreshTokenResponse.AccessToken)
		return invoker(ctx, method, req, reply, cc, opts...)

	}

	return err
}

// NewReadDailyClient dials endpointURL lazily; extra options are appended
// after the defaults (insecure transport, token interceptor).
func NewReadDailyClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	all := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, all...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil

}

func (s *GRPCClient) Register(ctx context.Context, name, email string, salt, verifier []byte, categories []string) error {

	req := &api.RegisterRequest{Name: name, Email: email, Salt: salt, Verifier: verifier, Categories: categories}

	if _, err := s.client.Register(ctx, req); err != nil {
		return s.mapError(err)
	}

	return nil

}

func (s *GRPCClient) GetSalt(ctx context.Context, email string) ([]byte, error) {

	ctx, cancel := context.WithTimeout(ctx, 12*time.Second)
	defer cancel()

	resp, err := s.client.GetSalt(ctx, &api.GetSaltRequest{Email: email})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Salt, nil
}

func (s *GRPCClient) Login(ctx context.Context, email string, verifier []byte) (string, error) {

	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, VerifierCandidate: verifier})
	if err != nil {
		return "", s.mapError(err)
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)

	return resp.Role, nil

}

func (s *GRPCClient) Logout() {
	s.setTokens("", "")
}

func (s *GRPCClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	resp, err := s.client.ListCategories(ctx, &api.ListCategoriesRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}

	out := make([]models.Category, 0, len(resp.Categories))
	for _, c := range resp.Categories {
		out = append(out, models.Category{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

func (s *GRPCClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	resp, err := s.client.GetProfile(ctx, &api.GetProfileRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return toProfile(resp.Profile), nil
}

func (s *GRPCClient) UpdatePreferences(ctx context.Context, categories []string) (*models.Profile, error) {
	resp, err := s.client.UpdatePreferences(ctx, &api.UpdatePreferencesRequest{Categories: categories})
	if err != nil {
		return nil, s.mapError(err)
	}
	return toProfile(resp.Profile), nil
}

func (s *GRPCClient) DailyFeed(ctx context.Context) (*models.Feed, error) {
	resp, err := s.client.DailyFeed(ctx, &api.DailyFeedRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.Feed{
		Date:           resp.Date,
		Articles:       resp.Articles,
		TodayReadCount: resp.TodayReadCount,
		GoalReached:    resp.GoalReached,
	}, nil
}

func (s *GRPCClient) MarkRead(ctx context.Context, articleID string) (*models.ReadResult, error) {
	resp, err := s.client.MarkRead(ctx, &api.MarkReadRequest{ArticleID: articleID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.ReadResult{
		Changed:        resp.Changed,
		Streak:         resp.Streak,
		TodayReadCount: resp.TodayReadCount,
		GoalReached:    resp.GoalReached,
	}, nil
}

func (s *GRPCClient) ToggleLike(ctx context.Context, articleID string) (*models.LikeResult, error) {
	resp, err := s.client.ToggleLike(ctx, &api.ToggleLikeRequest{ArticleID: articleID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.LikeResult{Liked: resp.Liked, LikesCount: resp.LikesCount}, nil
}

func (s *GRPCClient) AddComment(ctx context.Context, articleID, content string) (*models.Comment, error) {
	resp, err := s.client.AddComment(ctx, &api.AddCommentRequest{ArticleID: articleID, Content: content})
	if err != nil {
		return nil, s.mapError(err)
	}
	c := toComment(resp.Comment)
	return &c, nil
}

func (s *GRPCClient) ListComments(ctx context.Context, articleID string) ([]models.Comment, error) {
	resp, err := s.client.ListComments(ctx, &api.ListCommentsRequest{ArticleID: articleID})
	if err != nil {
		return nil, s.mapError(err)
	}
	out := make([]models.Comment, 0, len(resp.Comments))
	for _, c := range resp.Comments {
		out = append(out, toComment(c))
	}
	return out, nil
}

func (s *GRPCClient) ShareArticle(ctx context.Context, url, categoryID, commentary string) (*reading.Article, error) {
	resp, err := s.client.ShareArticle(ctx, &api.ShareArticleRequest{URL: url, CategoryID: categoryID, Commentary: commentary})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Article, nil
}

func (s *GRPCClient) ListRecommended(ctx context.Context, limit int) ([]models.Recommended, error) {
	resp, err := s.client.ListRecommended(ctx, &api.ListRecommendedRequest{Limit: limit})
	if err != nil {
		return nil, s.mapError(err)
	}
	out := make([]models.Recommended, 0, len(resp.Articles))
	for _, r := range resp.Articles {
		out = append(out, models.Recommended{
			Article:         r.Article,
			RecommenderName: r.RecommenderName,
			LikedByMe:       r.LikedByMe,
			CommentsCount:   r.CommentsCount,
		})
	}
	return out, nil
}

func (s *GRPCClient) ExportHistory(ctx context.Context) (*models.Export, error) {
	resp, err := s.client.ExportHistory(ctx, &api.ExportHistoryRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.Export{URL: resp.URL, Key: resp.Key, ExpiresAt: resp.ExpiresAt}, nil
}

func (s *GRPCClient) CreateArticle(ctx context.Context, a reading.Article) (*reading.Article, error) {
	resp, err := s.client.CreateArticle(ctx, &api.CreateArticleRequest{Article: a})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Article, nil
}

func (s *GRPCClient) RunAutomation(ctx context.Context) (*models.AutomationStats, error) {
	resp, err := s.client.RunAutomation(ctx, &api.RunAutomationRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &models.AutomationStats{Fetched: resp.Fetched, Skipped: resp.Skipped, Created: resp.Created, Failed: resp.Failed}, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return common.ErrorForbidden
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func toProfile(p api.Profile) *models.Profile {
	return &models.Profile{
		Profile: reading.Profile{
			ID:           p.ID,
			Name:         p.Name,
			Email:        p.Email,
			Role:         reading.Role(p.Role),
			JoinDate:     p.JoinDate,
			LastActive:   p.LastActive,
			Preferences:  reading.Preferences{Categories: p.Categories},
			ReadArticles: p.ReadArticles,
			Streak:       p.Streak,
		},
		TodayReadCount: p.TodayReadCount,
		GoalReached:    p.GoalReached,
	}
}

func toComment(c api.Comment) models.Comment {
	return models.Comment{ID: c.ID, UserName: c.UserName, Content: c.Content, CommentedAt: c.CommentedAt}
}
