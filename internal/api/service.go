package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "readdaily.ReadDaily"

// Method names.
const (
	MethodPing              = "Ping"
	MethodRegister          = "Register"
	MethodGetSalt           = "GetSalt"
	MethodLogin             = "Login"
	MethodRefreshToken      = "RefreshToken"
	MethodListCategories    = "ListCategories"
	MethodGetProfile        = "GetProfile"
	MethodUpdatePreferences = "UpdatePreferences"
	MethodDailyFeed         = "DailyFeed"
	MethodMarkRead          = "MarkRead"
	MethodToggleLike        = "ToggleLike"
	MethodAddComment        = "AddComment"
	MethodListComments      = "ListComments"
	MethodShareArticle      = "ShareArticle"
	MethodListRecommended   = "ListRecommended"
	MethodExportHistory     = "ExportHistory"
	MethodCreateArticle     = "CreateArticle"
	MethodRunAutomation     = "RunAutomation"
)

// FullMethod returns the path a unary call is dispatched on.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// Server is implemented by the ReadDaily gRPC handler.
type Server interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	GetSalt(context.Context, *GetSaltRequest) (*GetSaltResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	ListCategories(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	UpdatePreferences(context.Context, *UpdatePreferencesRequest) (*UpdatePreferencesResponse, error)
	DailyFeed(context.Context, *DailyFeedRequest) (*DailyFeedResponse, error)
	MarkRead(context.Context, *MarkReadRequest) (*MarkReadResponse, error)
	ToggleLike(context.Context, *ToggleLikeRequest) (*ToggleLikeResponse, error)
	AddComment(context.Context, *AddCommentRequest) (*AddCommentResponse, error)
	ListComments(context.Context, *ListCommentsRequest) (*ListCommentsResponse, error)
	ShareArticle(context.Context, *ShareArticleRequest) (*ShareArticleResponse, error)
	ListRecommended(context.Context, *ListRecommendedRequest) (*ListRecommendedResponse, error)
	ExportHistory(context.Context, *ExportHistoryRequest) (*ExportHistoryResponse, error)
	CreateArticle(context.Context, *CreateArticleRequest) (*CreateArticleResponse, error)
	RunAutomation(context.Context, *RunAutomationRequest) (*RunAutomationResponse, error)
}

func unary[Req, Resp any](method string, call func(Server, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(Server), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(Server), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the ReadDaily service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, Server.Ping),
		unary(MethodRegister, Server.Register),
		unary(MethodGetSalt, Server.GetSalt),
		unary(MethodLogin, Server.Login),
		unary(MethodRefreshToken, Server.RefreshToken),
		unary(MethodListCategories, Server.ListCategories),
		unary(MethodGetProfile, Server.GetProfile),
		unary(MethodUpdatePreferences, Server.UpdatePreferences),
		unary(MethodDailyFeed, Server.DailyFeed),
		unary(MethodMarkRead, Server.MarkRead),
		unary(MethodToggleLike, Server.ToggleLike),
		unary(MethodAddComment, Server.AddComment),
		unary(MethodListComments, Server.ListComments),
		unary(MethodShareArticle, Server.ShareArticle),
		unary(MethodListRecommended, Server.ListRecommended),
		unary(MethodExportHistory, Server.ExportHistory),
		unary(MethodCreateArticle, Server.CreateArticle),
		unary(MethodRunAutomation, Server.RunAutomation),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "readdaily",
}

// RegisterServer registers srv on s.
func RegisterServer(s grpc.ServiceRegistrar, srv Server) {
	s.RegisterService(&ServiceDesc, srv)
}
