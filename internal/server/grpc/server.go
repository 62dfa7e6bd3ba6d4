// Package grpc serves the TaskKeeper API over gRPC and guards every
// non-public method with the access token interceptor.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, r services.Registration) (*models.User, error)
}

type sessionSvc interface {
	Login(ctx context.Context, name, password string) (*services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	SignOut(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (string, error)
}

type taskSvc interface {
	Create(ctx context.Context, owner string, in services.TaskInput) (*models.Task, error)
	List(ctx context.Context, owner string) ([]*models.Task, error)
	Get(ctx context.Context, owner, id string) (*models.Task, error)
	Update(ctx context.Context, owner, id string, in services.TaskInput) (*models.Task, error)
	Complete(ctx context.Context, owner, id string) error
	Delete(ctx context.Context, owner, id string) error
	Clear(ctx context.Context, owner string) (int64, error)
}

type GRPCServer struct {
	address  string
	users    userSvc
	sessions sessionSvc
	tasks    taskSvc
	metrics  *metrics.Auth
	logger   logging.Logger
}

var _ api.TaskKeeperServer = (*GRPCServer)(nil)

// NewGRPCServer wires the services behind the API. am may be nil.
func NewGRPCServer(address string, l logging.Logger, us *services.UserService, ss *services.SessionService,
	ts *services.TaskService, am *metrics.Auth) *GRPCServer {
	return &GRPCServer{
		address:  address,
		logger:   l.With("module", "grpc_server"),
		users:    us,
		sessions: ss,
		tasks:    ts,
		metrics:  am,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	api.RegisterTaskKeeperServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
