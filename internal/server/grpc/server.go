// Package grpc exposes the ReadDaily services over gRPC with the JSON codec
// from internal/api.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/readdaily/internal/api"
	"github.com/dmitrijs2005/readdaily/internal/logging"
	"github.com/dmitrijs2005/readdaily/internal/reading"
	"github.com/dmitrijs2005/readdaily/internal/server/models"
	"github.com/dmitrijs2005/readdaily/internal/server/observability"
	"github.com/dmitrijs2005/readdaily/internal/server/services"
	"google.golang.org/grpc"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	GetSalt(ctx context.Context, email string) ([]byte, error)
	Login(ctx context.Context, email string, verifierCandidate []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type ReadingService interface {
	GetProfile(ctx context.Context, userID string) (reading.Profile, error)
	UpdatePreferences(ctx context.Context, userID string, categories []string) (reading.Profile, error)
	DailyFeed(ctx context.Context, userID string) (*services.Feed, error)
	MarkRead(ctx context.Context, userID, articleID string) (*services.MarkReadResult, error)
}

type SocialService interface {
	ToggleLike(ctx context.Context, articleID, userID string) (*models.LikeResult, error)
	AddComment(ctx context.Context, articleID, userID, content string) (*models.Comment, error)
	ListComments(ctx context.Context, articleID string) ([]models.Comment, error)
	ListRecommended(ctx context.Context, viewerID string, limit int) ([]models.RecommendedArticle, error)
}

type SharingService interface {
	ShareArticle(ctx context.Context, userID string, in services.ShareInput) (*reading.Article, error)
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateArticle(ctx context.Context, in services.ArticleInput) (*reading.Article, error)
}

type ExportService interface {
	ExportHistory(ctx context.Context, userID string) (*services.Export, error)
}

type AutomationRunner interface {
	Run(ctx context.Context) (models.RunStats, error)
}

// Services bundles the collaborators of the handlers. Automation may be nil
// when the pipeline is not configured.
type Services struct {
	Users      UserService
	Reading    ReadingService
	Social     SocialService
	Sharing    SharingService
	Catalog    CatalogService
	Export     ExportService
	Automation AutomationRunner
	Clock      services.Clock
}

type GRPCServer struct {
	address   string
	svc       Services
	metrics   *observability.Metrics
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, svc Services, m *observability.Metrics, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		svc:       svc,
		metrics:   m,
		logger:    l.With("module", "grpc_server"),
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.ForceServerCodec(api.Codec{}),
		grpc.ChainUnaryInterceptor(s.metricsInterceptor, s.accessTokenInterceptor),
	)
	api.RegisterServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gPRC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
