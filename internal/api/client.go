package api

import (
	"context"

	"google.golang.org/grpc"
)

// Client is a typed TaskKeeper client over any grpc.ClientConnInterface.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *Client) RegisterUser(ctx context.Context, in *RegisterUserRequest, opts ...grpc.CallOption) (*RegisterUserResponse, error) {
	return invoke[RegisterUserResponse](ctx, c.cc, MethodRegisterUser, in, opts)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *Client) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *Client) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*SignOutResponse, error) {
	return invoke[SignOutResponse](ctx, c.cc, MethodSignOut, in, opts)
}

func (c *Client) CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*CreateTaskResponse, error) {
	return invoke[CreateTaskResponse](ctx, c.cc, MethodCreateTask, in, opts)
}

func (c *Client) ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*ListTasksResponse, error) {
	return invoke[ListTasksResponse](ctx, c.cc, MethodListTasks, in, opts)
}

func (c *Client) GetTask(ctx context.Context, in *GetTaskRequest, opts ...grpc.CallOption) (*GetTaskResponse, error) {
	return invoke[GetTaskResponse](ctx, c.cc, MethodGetTask, in, opts)
}

func (c *Client) UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*UpdateTaskResponse, error) {
	return invoke[UpdateTaskResponse](ctx, c.cc, MethodUpdateTask, in, opts)
}

func (c *Client) CompleteTask(ctx context.Context, in *CompleteTaskRequest, opts ...grpc.CallOption) (*CompleteTaskResponse, error) {
	return invoke[CompleteTaskResponse](ctx, c.cc, MethodCompleteTask, in, opts)
}

func (c *Client) DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*DeleteTaskResponse, error) {
	return invoke[DeleteTaskResponse](ctx, c.cc, MethodDeleteTask, in, opts)
}

func (c *Client) ClearTasks(ctx context.Context, in *ClearTasksRequest, opts ...grpc.CallOption) (*ClearTasksResponse, error) {
	return invoke[ClearTasksResponse](ctx, c.cc, MethodClearTasks, in, opts)
}
