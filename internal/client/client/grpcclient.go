package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/session"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var publicMethods = map[string]bool{
	api.FullMethod(api.MethodPing):         true,
	api.FullMethod(api.MethodRegisterUser): true,
	api.FullMethod(api.MethodLogin):        true,
	api.FullMethod(api.MethodRefreshToken): true,
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      *api.Client
	store       SessionStore

	mu      sync.Mutex
	session session.Session
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if publicMethods[method] {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	sess := s.Session()
	if sess.AccessToken == "" && sess.RefreshToken == "" {
		return ErrNotLoggedIn
	}

	err := invoker(withAccessToken(ctx, sess.AccessToken), method, req, reply, cc, opts...)
	if status.Code(err) != codes.Unauthenticated {
		return err
	}
	// A revoked token stays revoked; there is nothing to refresh for sign-out.
	if sess.RefreshToken == "" || method == api.FullMethod(api.MethodSignOut) {
		return err
	}

	if rerr := s.refresh(ctx, sess.RefreshToken); rerr != nil {
		return err
	}

	return invoker(withAccessToken(ctx, s.Session().AccessToken), method, req, reply, cc, opts...)
}

// NewTaskKeeperClient connects lazily to endpointURL and loads the stored
// session. Extra dial options are appended to the defaults.
func NewTaskKeeperClient(endpointURL string, store SessionStore, opts ...grpc.DialOption) (*GRPCClient, error) {
	sess, err := store.Load()
	if err != nil {
		return nil, err
	}

	c := &GRPCClient{endpointURL: endpointURL, store: store, session: *sess}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// Session returns a copy of the current session.
func (s *GRPCClient) Session() session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *GRPCClient) saveSession(sess session.Session) error {
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
	return s.store.Save(&sess)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, name, email string, password []byte) (string, error) {
	resp, err := s.client.RegisterUser(ctx, &api.RegisterUserRequest{Name: name, Password: string(password), Email: email})
	if err != nil {
		return "", mapError(err)
	}
	return resp.ID, nil
}

// Login exchanges credentials for a token pair and stores it.
func (s *GRPCClient) Login(ctx context.Context, name string, password []byte) error {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Name: name, Password: string(password)})
	if err != nil {
		return mapError(err)
	}
	return s.saveSession(session.Session{Name: name, AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken})
}

// Refresh replaces the stored access token.
func (s *GRPCClient) Refresh(ctx context.Context) error {
	sess := s.Session()
	if sess.RefreshToken == "" {
		return ErrNotLoggedIn
	}
	return s.refresh(ctx, sess.RefreshToken)
}

func (s *GRPCClient) refresh(ctx context.Context, refreshToken string) error {
	resp, err := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		return mapError(err)
	}
	sess := s.Session()
	sess.AccessToken = resp.AccessToken
	return s.saveSession(sess)
}

// Logout revokes the access token on the server and forgets the session.
// A token the server already rejects is forgotten too.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, err := s.client.SignOut(ctx, &api.SignOutRequest{})
	err = mapError(err)
	if err != nil && !errors.Is(err, ErrUnauthorized) {
		return err
	}

	s.mu.Lock()
	s.session = session.Session{}
	s.mu.Unlock()
	if cerr := s.store.Clear(); cerr != nil {
		return cerr
	}
	return err
}

func (s *GRPCClient) CreateTask(ctx context.Context, in TaskInput) (*api.Task, error) {
	resp, err := s.client.CreateTask(ctx, &api.CreateTaskRequest{Name: in.Name, Date: in.Date, Time: in.Time, Priority: in.Priority})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Task, nil
}

func (s *GRPCClient) ListTasks(ctx context.Context) ([]api.Task, error) {
	resp, err := s.client.ListTasks(ctx, &api.ListTasksRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Tasks, nil
}

func (s *GRPCClient) GetTask(ctx context.Context, id string) (*api.Task, error) {
	resp, err := s.client.GetTask(ctx, &api.GetTaskRequest{ID: id})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Task, nil
}

func (s *GRPCClient) UpdateTask(ctx context.Context, id string, in TaskInput) (*api.Task, error) {
	resp, err := s.client.UpdateTask(ctx, &api.UpdateTaskRequest{ID: id, Name: in.Name, Date: in.Date, Priority: in.Priority})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Task, nil
}

func (s *GRPCClient) CompleteTask(ctx context.Context, id string) error {
	_, err := s.client.CompleteTask(ctx, &api.CompleteTaskRequest{ID: id})
	return mapError(err)
}

func (s *GRPCClient) DeleteTask(ctx context.Context, id string) error {
	_, err := s.client.DeleteTask(ctx, &api.DeleteTaskRequest{ID: id})
	return mapError(err)
}

func (s *GRPCClient) ClearTasks(ctx context.Context) (int64, error) {
	resp, err := s.client.ClearTasks(ctx, &api.ClearTasksRequest{})
	if err != nil {
		return 0, mapError(err)
	}
	return resp.Deleted, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return ErrNotFound
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrAlreadyExists, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
