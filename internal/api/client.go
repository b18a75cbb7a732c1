package api

import (
	"context"

	"google.golang.org/grpc"
)

// Client is a typed stub over a client connection. Calls are forced onto the
// JSON codec.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *Client) GetSalt(ctx context.Context, in *GetSaltRequest, opts ...grpc.CallOption) (*GetSaltResponse, error) {
	return invoke[GetSaltResponse](ctx, c.cc, MethodGetSalt, in, opts)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *Client) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *Client) ListCategories(ctx context.Context, in *ListCategoriesRequest, opts ...grpc.CallOption) (*ListCategoriesResponse, error) {
	return invoke[ListCategoriesResponse](ctx, c.cc, MethodListCategories, in, opts)
}

func (c *Client) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	return invoke[GetProfileResponse](ctx, c.cc, MethodGetProfile, in, opts)
}

func (c *Client) UpdatePreferences(ctx context.Context, in *UpdatePreferencesRequest, opts ...grpc.CallOption) (*UpdatePreferencesResponse, error) {
	return invoke[UpdatePreferencesResponse](ctx, c.cc, MethodUpdatePreferences, in, opts)
}

func (c *Client) DailyFeed(ctx context.Context, in *DailyFeedRequest, opts ...grpc.CallOption) (*DailyFeedResponse, error) {
	return invoke[DailyFeedResponse](ctx, c.cc, MethodDailyFeed, in, opts)
}

func (c *Client) MarkRead(ctx context.Context, in *MarkReadRequest, opts ...grpc.CallOption) (*MarkReadResponse, error) {
	return invoke[MarkReadResponse](ctx, c.cc, MethodMarkRead, in, opts)
}

func (c *Client) ToggleLike(ctx context.Context, in *ToggleLikeRequest, opts ...grpc.CallOption) (*ToggleLikeResponse, error) {
	return invoke[ToggleLikeResponse](ctx, c.cc, MethodToggleLike, in, opts)
}

func (c *Client) AddComment(ctx context.Context, in *AddCommentRequest, opts ...grpc.CallOption) (*AddCommentResponse, error) {
	return invoke[AddCommentResponse](ctx, c.cc, MethodAddComment, in, opts)
}

func (c *Client) ListComments(ctx context.Context, in *ListCommentsRequest, opts ...grpc.CallOption) (*ListCommentsResponse, error) {
	return invoke[ListCommentsResponse](ctx, c.cc, MethodListComments, in, opts)
}

func (c *Client) ShareArticle(ctx context.Context, in *ShareArticleRequest, opts ...grpc.CallOption) (*ShareArticleResponse, error) {
	return invoke[ShareArticleResponse](ctx, c.cc, MethodShareArticle, in, opts)
}

func (c *Client) ListRecommended(ctx context.Context, in *ListRecommendedRequest, opts ...grpc.CallOption) (*ListRecommendedResponse, error) {
	return invoke[ListRecommendedResponse](ctx, c.cc, MethodListRecommended, in, opts)
}

func (c *Client) ExportHistory(ctx context.Context, in *ExportHistoryRequest, opts ...grpc.CallOption) (*ExportHistoryResponse, error) {
	return invoke[ExportHistoryResponse](ctx, c.cc, MethodExportHistory, in, opts)
}

func (c *Client) CreateArticle(ctx context.Context, in *CreateArticleRequest, opts ...grpc.CallOption) (*CreateArticleResponse, error) {
	return invoke[CreateArticleResponse](ctx, c.cc, MethodCreateArticle, in, opts)
}

func (c *Client) RunAutomation(ctx context.Context, in *RunAutomationRequest, opts ...grpc.CallOption) (*RunAutomationResponse, error) {
	return invoke[RunAutomationResponse](ctx, c.cc, MethodRunAutomation, in, opts)
}
