package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "taskkeeper.TaskKeeperService"

// Method names.
const (
	MethodPing         = "Ping"
	MethodRegisterUser = "RegisterUser"
	MethodLogin        = "Login"
	MethodRefreshToken = "RefreshToken"
	MethodSignOut      = "SignOut"
	MethodCreateTask   = "CreateTask"
	MethodListTasks    = "ListTasks"
	MethodGetTask      = "GetTask"
	MethodUpdateTask   = "UpdateTask"
	MethodCompleteTask = "CompleteTask"
	MethodDeleteTask   = "DeleteTask"
	MethodClearTasks   = "ClearTasks"
)

// FullMethod returns the "/service/method" path used by interceptors.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// TaskKeeperServer is implemented by the server's gRPC handlers.
type TaskKeeperServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	RegisterUser(context.Context, *RegisterUserRequest) (*RegisterUserResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	SignOut(context.Context, *SignOutRequest) (*SignOutResponse, error)
	CreateTask(context.Context, *CreateTaskRequest) (*CreateTaskResponse, error)
	ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error)
	GetTask(context.Context, *GetTaskRequest) (*GetTaskResponse, error)
	UpdateTask(context.Context, *UpdateTaskRequest) (*UpdateTaskResponse, error)
	CompleteTask(context.Context, *CompleteTaskRequest) (*CompleteTaskResponse, error)
	DeleteTask(context.Context, *DeleteTaskRequest) (*DeleteTaskResponse, error)
	ClearTasks(context.Context, *ClearTasksRequest) (*ClearTasksResponse, error)
}

// RegisterTaskKeeperServer registers srv with s.
func RegisterTaskKeeperServer(s grpc.ServiceRegistrar, srv TaskKeeperServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the TaskKeeper service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TaskKeeperServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, TaskKeeperServer.Ping),
		unary(MethodRegisterUser, TaskKeeperServer.RegisterUser),
		unary(MethodLogin, TaskKeeperServer.Login),
		unary(MethodRefreshToken, TaskKeeperServer.RefreshToken),
		unary(MethodSignOut, TaskKeeperServer.SignOut),
		unary(MethodCreateTask, TaskKeeperServer.CreateTask),
		unary(MethodListTasks, TaskKeeperServer.ListTasks),
		unary(MethodGetTask, TaskKeeperServer.GetTask),
		unary(MethodUpdateTask, TaskKeeperServer.UpdateTask),
		unary(MethodCompleteTask, TaskKeeperServer.CompleteTask),
		unary(MethodDeleteTask, TaskKeeperServer.DeleteTask),
		unary(MethodClearTasks, TaskKeeperServer.ClearTasks),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taskkeeper.json",
}

// unary builds the MethodDesc for one RPC, decoding into a fresh Req and
// running the server's interceptor chain.
func unary[Req any, Resp any](method string, call func(TaskKeeperServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TaskKeeperServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TaskKeeperServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
