// Package server assembles the TaskKeeper server: storage, services, the
// gRPC endpoint and the admin HTTP endpoint, and runs them until a signal
// arrives.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/admin"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	gs "github.com/dmitrijs2005/taskkeeper/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	repomanager    repomanager.RepositoryManager
	registry       *prometheus.Registry
	metrics        *metrics.Auth
	userService    *services.UserService
	sessionService *services.SessionService
	taskService    *services.TaskService
}

// NewApp opens storage, applies migrations and builds the services.
// Logs go to w.
func NewApp(ctx context.Context, c *config.Config, w io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(w, c.LogLevel)

	rm, err := openStorage(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	codec, err := auth.NewCodec([]byte(c.SecretKey), c.SigningAlgorithm)
	if err != nil {
		_ = rm.Close()
		return nil, err
	}
	logger.Info(ctx, "token codec ready", "algorithm", codec.Algorithm())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	am := metrics.NewAuth(registry)

	ss, err := services.NewSessionService(rm, codec, c, logger, am)
	if err != nil {
		_ = rm.Close()
		return nil, err
	}

	return &App{
		config:         c,
		logger:         logger,
		repomanager:    rm,
		registry:       registry,
		metrics:        am,
		userService:    services.NewUserService(rm, c, logger),
		sessionService: ss,
		taskService:    services.NewTaskService(rm, logger),
	}, nil
}

func openStorage(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	if dsn == config.MemoryDSN {
		return repomanager.NewInMemoryRepositoryManager(), nil
	}
	db, err := repomanager.OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return repomanager.NewPostgresRepositoryManager(db), nil
}

// initSignalHandler cancels on the first termination signal. The returned
// channel is closed once the handler has stopped listening, either after a
// signal or because ctx is done.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) <-chan struct{} {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		defer signal.Stop(sigs)

		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
	return stopped
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger,
		app.userService, app.sessionService, app.taskService, app.metrics)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startAdminServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := admin.NewServer(app.config.AdminAddrHTTP, app.registry, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) pruneRevoked(ctx context.Context) {
	if _, err := app.sessionService.PruneRevoked(ctx); err != nil {
		app.logger.Warn(ctx, "pruning revoked tokens failed", "error", err)
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes storage.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	signalsStopped := app.initSignalHandler(ctx, cancelFunc)

	if app.config.PruneRevokedOnStart {
		app.pruneRevoked(ctx)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	if app.config.AdminAddrHTTP != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startAdminServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()
	cancelFunc()
	<-signalsStopped

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "closing storage failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
