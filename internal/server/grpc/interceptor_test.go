package grpc

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func withAuth(value string) context.Context {
	md := metadata.New(map[string]string{common.AuthorizationHeaderName: value})
	return metadata.NewIncomingContext(context.Background(), md)
}

func info(method string) *grpc.UnaryServerInfo {
	return &grpc.UnaryServerInfo{FullMethod: api.FullMethod(method)}
}

func TestInterceptor_PublicMethodsPassWithoutToken(t *testing.T) {
	s := newServer(&fakeUsers{}, &fakeSessions{resolveErr: fmt.Errorf("must not be called")}, &fakeTasks{})

	for _, m := range []string{api.MethodPing, api.MethodRegisterUser, api.MethodLogin, api.MethodRefreshToken} {
		called := false
		h := func(ctx context.Context, req any) (any, error) {
			called = true
			return "ok", nil
		}
		resp, err := s.accessTokenInterceptor(context.Background(), nil, info(m), h)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", m, err)
		}
		if !called || resp != "ok" {
			t.Fatalf("%s: handler not called", m)
		}
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := newServer(&fakeUsers{}, &fakeSessions{}, &fakeTasks{})
	s.metrics = metrics.NewAuth(reg)

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	for _, ctx := range []context.Context{context.Background(), withAuth(""), withAuth("Bearer ")} {
		_, err := s.accessTokenInterceptor(ctx, nil, info(api.MethodListTasks), h)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
		}
		if status.Convert(err).Message() != "missing token" {
			t.Fatalf("expected 'missing token', got %q", status.Convert(err).Message())
		}
	}

	if n, err := testutil.GatherAndCount(reg, "taskkeeper_auth_guard_rejections_total"); err != nil || n != 1 {
		t.Fatalf("expected one rejection series, got %d (err=%v)", n, err)
	}
}

func TestInterceptor_ResolveFailures(t *testing.T) {
	wrap := func(kind, detail error) error { return fmt.Errorf("%w: %w", kind, detail) }

	tests := []struct {
		name   string
		err    error
		code   codes.Code
		reason string
	}{
		{"revoked", wrap(common.ErrorUnauthenticated, common.ErrTokenRevoked), codes.Unauthenticated, reasonRevoked},
		{"expired", wrap(common.ErrorUnauthenticated, common.ErrTokenExpired), codes.Unauthenticated, reasonExpired},
		{"bad signature", wrap(common.ErrorUnauthenticated, common.ErrInvalidSignature), codes.Unauthenticated, reasonInvalid},
		{"no subject", wrap(common.ErrorUnauthenticated, common.ErrMissingSubject), codes.Unauthenticated, reasonInvalid},
		{"storage", wrap(common.ErrorStorage, fmt.Errorf("db down")), codes.Internal, reasonStorage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			am := metrics.NewAuth(reg)
			s := newServer(&fakeUsers{}, &fakeSessions{resolveErr: tt.err}, &fakeTasks{})
			s.metrics = am

			h := func(ctx context.Context, req any) (any, error) {
				t.Fatal("handler should not be called")
				return nil, nil
			}
			_, err := s.accessTokenInterceptor(withAuth("Bearer tok"), nil, info(api.MethodGetTask), h)
			if status.Code(err) != tt.code {
				t.Fatalf("want %v, got %v", tt.code, status.Code(err))
			}
			if tt.code == codes.Unauthenticated && status.Convert(err).Message() != "unauthenticated" {
				t.Fatalf("detail leaked: %q", status.Convert(err).Message())
			}

			expected := fmt.Sprintf(`
# HELP taskkeeper_auth_guard_rejections_total Requests rejected by the access guard, by reason
# TYPE taskkeeper_auth_guard_rejections_total counter
taskkeeper_auth_guard_rejections_total{reason="%s"} 1
`, tt.reason)
			if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "taskkeeper_auth_guard_rejections_total"); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestInterceptor_ValidToken_SetsUserID(t *testing.T) {
	s := newServer(&fakeUsers{}, &fakeSessions{userID: "user-123"}, &fakeTasks{})

	var got string
	h := func(ctx context.Context, req any) (any, error) {
		got, _ = UserIDFromContext(ctx)
		return "ok", nil
	}

	resp, err := s.accessTokenInterceptor(withAuth("Bearer abc"), nil, info(api.MethodListTasks), h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
	if got != "user-123" {
		t.Fatalf("user id not propagated in context: got %q", got)
	}
}

func TestTokenFromContext(t *testing.T) {
	if tok := tokenFromContext(context.Background()); tok != "" {
		t.Fatalf("expected empty token, got %q", tok)
	}
	if tok := tokenFromContext(withAuth("Bearer x.y.z")); tok != "x.y.z" {
		t.Fatalf("unexpected token %q", tok)
	}
	if tok := tokenFromContext(withAuth("x.y.z")); tok != "x.y.z" {
		t.Fatalf("unexpected token %q", tok)
	}
}

func TestUserIDFromContext_Empty(t *testing.T) {
	if _, ok := UserIDFromContext(context.Background()); ok {
		t.Fatal("expected no user id")
	}
	if _, ok := UserIDFromContext(withUserID(context.Background(), "")); ok {
		t.Fatal("empty user id must not count")
	}
}
