package grpc

import (
	"context"

	"github.com/dmitrijs2005/readdaily/internal/api"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
	"github.com/dmitrijs2005/readdaily/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	s.logger.Info(ctx, "Registration request")

	u, err := s.svc.Users.Register(ctx, services.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Salt:       req.Salt,
		Verifier:   req.Verifier,
		Categories: req.Categories,
	})
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodRegister, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", u.ID)
	return &api.RegisterResponse{UserID: u.ID}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *api.GetSaltRequest) (*api.GetSaltResponse, error) {
	salt, err := s.svc.Users.GetSalt(ctx, req.Email)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodGetSalt, err)
	}
	return &api.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	tokens, err := s.svc.Users.Login(ctx, req.Email, req.VerifierCandidate)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodLogin, err)
	}
	return &api.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken, Role: tokens.Role}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {
	tokens, err := s.svc.Users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodRefreshToken, err)
	}
	return &api.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) ListCategories(ctx context.Context, req *api.ListCategoriesRequest) (*api.ListCategoriesResponse, error) {
	list, err := s.svc.Catalog.ListCategories(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListCategories, err)
	}

	out := make([]api.Category, 0, len(list))
	for _, c := range list {
		out = append(out, api.Category{ID: c.ID, Name: c.Name})
	}
	return &api.ListCategoriesResponse{Categories: out}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *api.GetProfileRequest) (*api.GetProfileResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.svc.Reading.GetProfile(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodGetProfile, err)
	}
	return &api.GetProfileResponse{Profile: s.toProfile(p)}, nil
}

func (s *GRPCServer) UpdatePreferences(ctx context.Context, req *api.UpdatePreferencesRequest) (*api.UpdatePreferencesResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.svc.Reading.UpdatePreferences(ctx, userID, req.Categories)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodUpdatePreferences, err)
	}
	return &api.UpdatePreferencesResponse{Profile: s.toProfile(p)}, nil
}

func (s *GRPCServer) DailyFeed(ctx context.Context, req *api.DailyFeedRequest) (*api.DailyFeedResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	feed, err := s.svc.Reading.DailyFeed(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodDailyFeed, err)
	}

	articles := feed.Articles
	if articles == nil {
		articles = []reading.Article{}
	}
	return &api.DailyFeedResponse{
		Date:           feed.Date,
		Articles:       articles,
		TodayReadCount: feed.TodayReadCount,
		GoalReached:    feed.GoalReached,
	}, nil
}

func (s *GRPCServer) MarkRead(ctx context.Context, req *api.MarkReadRequest) (*api.MarkReadResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.svc.Reading.MarkRead(ctx, userID, req.ArticleID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodMarkRead, err)
	}
	if res.Changed {
		s.metrics.ReadMarked()
	}

	return &api.MarkReadResponse{
		Changed:        res.Changed,
		Streak:         res.Streak,
		TodayReadCount: res.TodayReadCount,
		GoalReached:    res.GoalReached,
	}, nil
}

func (s *GRPCServer) ToggleLike(ctx context.Context, req *api.ToggleLikeRequest) (*api.ToggleLikeResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.svc.Social.ToggleLike(ctx, req.ArticleID, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodToggleLike, err)
	}
	s.metrics.LikeToggled(res.Liked)

	return &api.ToggleLikeResponse{Liked: res.Liked, LikesCount: res.LikesCount}, nil
}

func (s *GRPCServer) AddComment(ctx context.Context, req *api.AddCommentRequest) (*api.AddCommentResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.svc.Social.AddComment(ctx, req.ArticleID, userID, req.Content)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodAddComment, err)
	}
	return &api.AddCommentResponse{Comment: toComment(*c)}, nil
}

func (s *GRPCServer) ListComments(ctx context.Context, req *api.ListCommentsRequest) (*api.ListCommentsResponse, error) {
	if _, err := userIDFromContext(ctx); err != nil {
		return nil, err
	}

	list, err := s.svc.Social.ListComments(ctx, req.ArticleID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListComments, err)
	}

	out := make([]api.Comment, 0, len(list))
	for _, c := range list {
		out = append(out, toComment(c))
	}
	return &api.ListCommentsResponse{Comments: out}, nil
}

func (s *GRPCServer) ShareArticle(ctx context.Context, req *api.ShareArticleRequest) (*api.ShareArticleResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	a, err := s.svc.Sharing.ShareArticle(ctx, userID, services.ShareInput{
		URL:        req.URL,
		CategoryID: req.CategoryID,
		Commentary: req.Commentary,
	})
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodShareArticle, err)
	}
	return &api.ShareArticleResponse{Article: *a}, nil
}

func (s *GRPCServer) ListRecommended(ctx context.Context, req *api.ListRecommendedRequest) (*api.ListRecommendedResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.svc.Social.ListRecommended(ctx, userID, req.Limit)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodListRecommended, err)
	}

	out := make([]api.RecommendedArticle, 0, len(list))
	for _, r := range list {
		out = append(out, api.RecommendedArticle{
			Article:         r.Article,
			RecommenderName: r.RecommenderName,
			LikedByMe:       r.LikedByMe,
			CommentsCount:   r.CommentsCount,
		})
	}
	return &api.ListRecommendedResponse{Articles: out}, nil
}

func (s *GRPCServer) ExportHistory(ctx context.Context, req *api.ExportHistoryRequest) (*api.ExportHistoryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	exp, err := s.svc.Export.ExportHistory(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodExportHistory, err)
	}
	return &api.ExportHistoryResponse{URL: exp.URL, Key: exp.Key, ExpiresAt: exp.ExpiresAt}, nil
}

func (s *GRPCServer) CreateArticle(ctx context.Context, req *api.CreateArticleRequest) (*api.CreateArticleResponse, error) {
	in := req.Article
	a, err := s.svc.Catalog.CreateArticle(ctx, services.ArticleInput{
		Title:                in.Title,
		Description:          in.Description,
		SourceURL:            in.SourceURL,
		ImageURL:             in.ImageURL,
		CategoryID:           in.CategoryID,
		EstimatedReadingTime: in.EstimatedReadingTime,
		PublishDate:          in.PublishDate.String(),
		Featured:             in.Featured,
	})
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodCreateArticle, err)
	}
	return &api.CreateArticleResponse{Article: *a}, nil
}

func (s *GRPCServer) RunAutomation(ctx context.Context, req *api.RunAutomationRequest) (*api.RunAutomationResponse, error) {
	if s.svc.Automation == nil {
		return nil, status.Error(codes.FailedPrecondition, "content automation is not configured")
	}

	stats, err := s.svc.Automation.Run(ctx)
	s.metrics.AutomationRun(stats.Created, err)
	if err != nil {
		return nil, s.toStatus(ctx, api.MethodRunAutomation, err)
	}

	return &api.RunAutomationResponse{
		Fetched: stats.Fetched,
		Skipped: stats.Skipped,
		Created: stats.Created,
		Failed:  stats.Failed,
	}, nil
}

func (s *GRPCServer) toProfile(p reading.Profile) api.Profile {
	today := s.svc.Clock.Today()
	reads := p.ReadArticles
	if reads == nil {
		reads = []reading.ReadArticle{}
	}
	return api.Profile{
		ID:             p.ID,
		Name:           p.Name,
		Email:          p.Email,
		Role:           string(p.Role),
		JoinDate:       p.JoinDate,
		LastActive:     p.LastActive,
		Categories:     p.Preferences.Categories,
		ReadArticles:   reads,
		Streak:         p.Streak,
		TodayReadCount: reading.TodayReadCount(p, today),
		GoalReached:    reading.GoalReached(p, today),
	}
}

func toComment(c models.Comment) api.Comment {
	return api.Comment{
		ID:          c.ID,
		ArticleID:   c.ArticleID,
		UserID:      c.UserID,
		UserName:    c.UserName,
		Content:     c.Content,
		CommentedAt: c.CommentedAt,
	}
}
