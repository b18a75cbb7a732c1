package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/readdaily/internal/api"
	"github.com/dmitrijs2005/readdaily/internal/common"
	"github.com/dmitrijs2005/readdaily/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	userIDKey ctxKey = "userID"
	roleKey   ctxKey = "role"
)

type accessLevel int

const (
	accessUser accessLevel = iota
	accessPublic
	accessAdmin
)

// methodAccess lists methods that are not plain user calls. Anything absent
// requires a valid token.
var methodAccess = map[string]accessLevel{
	api.FullMethod(api.MethodPing):           accessPublic,
	api.FullMethod(api.MethodRegister):       accessPublic,
	api.FullMethod(api.MethodGetSalt):        accessPublic,
	api.FullMethod(api.MethodLogin):          accessPublic,
	api.FullMethod(api.MethodRefreshToken):   accessPublic,
	api.FullMethod(api.MethodListCategories): accessPublic,
	api.FullMethod(api.MethodCreateArticle):  accessAdmin,
	api.FullMethod(api.MethodRunAutomation):  accessAdmin,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	level := methodAccess[info.FullMethod]
	if level == accessPublic {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	if level == accessAdmin && claims.Role != common.RoleAdmin {
		return nil, status.Error(codes.PermissionDenied, "admin role required")
	}

	ctx = context.WithValue(ctx, userIDKey, claims.UserID)
	ctx = context.WithValue(ctx, roleKey, claims.Role)

	return handler(ctx, req)
}

func (s *GRPCServer) metricsInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.metrics.ObserveRPC(info.FullMethod, status.Code(err).String(), time.Since(start))
	return resp, err
}

func userIDFromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return "", status.Error(codes.Unauthenticated, "unauthenticated")
	}
	return id, nil
}
