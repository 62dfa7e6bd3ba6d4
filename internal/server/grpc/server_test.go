package grpc

import (
	"context"
	"net"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startServer(t *testing.T) *api.Client {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BcryptCost = bcrypt.MinCost

	rm := repomanager.NewInMemoryRepositoryManager()
	codec, err := auth.NewCodec([]byte(cfg.SecretKey), cfg.SigningAlgorithm)
	if err != nil {
		t.Fatalf("NewCodec error: %v", err)
	}
	ss, err := services.NewSessionService(rm, codec, cfg, nopLogger{}, nil)
	if err != nil {
		t.Fatalf("NewSessionService error: %v", err)
	}
	s := NewGRPCServer("bufnet", nopLogger{}, services.NewUserService(rm, cfg, nopLogger{}), ss, services.NewTaskService(rm, nopLogger{}), nil)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Serve returned error: %v", err)
		}
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return api.NewClient(conn)
}

func bearer(token string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
}

func TestServer_EndToEnd(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	if _, err := c.Ping(ctx, &api.PingRequest{}); err != nil {
		t.Fatalf("Ping error: %v", err)
	}

	if _, err := c.RegisterUser(ctx, &api.RegisterUserRequest{Name: "alice", Password: "pw", Email: "alice@x.com"}); err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}
	_, err := c.RegisterUser(ctx, &api.RegisterUserRequest{Name: "alice2", Password: "pw", Email: "alice@x.com"})
	if status.Code(err) != codes.AlreadyExists {
		t.Fatalf("duplicate email: want AlreadyExists, got %v", status.Code(err))
	}
	if _, err := c.RegisterUser(ctx, &api.RegisterUserRequest{Name: "bob", Password: "pw", Email: "bob@x.com"}); err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}

	_, err = c.Login(ctx, &api.LoginRequest{Name: "alice", Password: "wrong"})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("bad password: want Unauthenticated, got %v", status.Code(err))
	}

	alice, err := c.Login(ctx, &api.LoginRequest{Name: "alice", Password: "pw"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	bob, err := c.Login(ctx, &api.LoginRequest{Name: "bob", Password: "pw"})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	_, err = c.ListTasks(ctx, &api.ListTasksRequest{})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("no token: want Unauthenticated, got %v", status.Code(err))
	}

	late, err := c.CreateTask(bearer(alice.AccessToken), &api.CreateTaskRequest{Name: "late", Date: "2026-05-02", Time: "18:00", Priority: "low"})
	if err != nil {
		t.Fatalf("CreateTask error: %v", err)
	}
	if _, err := c.CreateTask(bearer(alice.AccessToken), &api.CreateTaskRequest{Name: "early", Date: "2026-05-01", Time: "08:00", Priority: "high"}); err != nil {
		t.Fatalf("CreateTask error: %v", err)
	}

	list, err := c.ListTasks(bearer(alice.AccessToken), &api.ListTasksRequest{})
	if err != nil {
		t.Fatalf("ListTasks error: %v", err)
	}
	if len(list.Tasks) != 2 || list.Tasks[0].Name != "early" || list.Tasks[1].Name != "late" {
		t.Fatalf("unexpected order: %+v", list.Tasks)
	}

	_, err = c.GetTask(bearer(bob.AccessToken), &api.GetTaskRequest{ID: late.Task.ID})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("foreign task: want NotFound, got %v", status.Code(err))
	}

	// The refresh token is not an access token for the guard's purposes,
	// but it does mint one.
	refreshed, err := c.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: alice.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	_, err = c.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: alice.AccessToken})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("access as refresh: want InvalidArgument, got %v", status.Code(err))
	}

	if _, err := c.SignOut(bearer(alice.AccessToken), &api.SignOutRequest{}); err != nil {
		t.Fatalf("SignOut error: %v", err)
	}
	_, err = c.ListTasks(bearer(alice.AccessToken), &api.ListTasksRequest{})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("revoked token: want Unauthenticated, got %v", status.Code(err))
	}

	if _, err := c.ListTasks(bearer(refreshed.AccessToken), &api.ListTasksRequest{}); err != nil {
		t.Fatalf("refreshed token rejected: %v", err)
	}

	cleared, err := c.ClearTasks(bearer(bob.AccessToken), &api.ClearTasksRequest{})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("bob clear: want NotFound, got %v (%+v)", status.Code(err), cleared)
	}
	cleared, err = c.ClearTasks(bearer(refreshed.AccessToken), &api.ClearTasksRequest{})
	if err != nil || cleared.Deleted != 2 {
		t.Fatalf("ClearTasks = %+v, %v", cleared, err)
	}
}
