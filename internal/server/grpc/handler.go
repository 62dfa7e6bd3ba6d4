package grpc

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/api"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *api.RegisterUserRequest) (*api.RegisterUserResponse, error) {
	s.logger.Info(ctx, "Registration request", "name", req.Name)

	user, err := s.users.Register(ctx, services.Registration{Name: req.Name, Password: req.Password, Email: req.Email})
	if err != nil {
		s.logger.Warn(ctx, "Registration failed", "name", req.Name, "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "name", req.Name, "user_id", user.ID)
	return &api.RegisterUserResponse{ID: user.ID, Message: "registered id=" + user.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	tokens, err := s.sessions.Login(ctx, req.Name, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.LoginResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.RefreshTokenResponse, error) {
	access, err := s.sessions.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.RefreshTokenResponse{AccessToken: access}, nil
}

// SignOut revokes the token the request was authorized with.
func (s *GRPCServer) SignOut(ctx context.Context, req *api.SignOutRequest) (*api.SignOutResponse, error) {
	if err := s.sessions.SignOut(ctx, tokenFromContext(ctx)); err != nil {
		return nil, toStatus(err)
	}
	return &api.SignOutResponse{Message: "signed out"}, nil
}

func (s *GRPCServer) CreateTask(ctx context.Context, req *api.CreateTaskRequest) (*api.CreateTaskResponse, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	task, err := s.tasks.Create(ctx, owner, services.TaskInput{Name: req.Name, Date: req.Date, Time: req.Time, Priority: req.Priority})
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.CreateTaskResponse{Task: toWire(task)}, nil
}

func (s *GRPCServer) ListTasks(ctx context.Context, req *api.ListTasksRequest) (*api.ListTasksResponse, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	list, err := s.tasks.List(ctx, owner)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &api.ListTasksResponse{Tasks: make([]api.Task, 0, len(list))}
	for _, t := range list {
		resp.Tasks = append(resp.Tasks, toWire(t))
	}
	return resp, nil
}

func (s *GRPCServer) GetTask(ctx context.Context, req *api.GetTaskRequest) (*api.GetTaskResponse, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	task, err := s.tasks.Get(ctx, owner, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.GetTaskResponse{Task: toWire(task)}, nil
}

func (s *GRPCServer) UpdateTask(ctx context.Context, req *api.UpdateTaskRequest) (*api.UpdateTaskResponse, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	task, err := s.tasks.Update(ctx, owner, req.ID, services.TaskInput{Name: req.Name, Date: req.Date, Priority: req.Priority})
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.UpdateTaskResponse{Task: toWire(task)}, nil
}

func (s *GRPCServer) CompleteTask(ctx context.Context, req *api.CompleteTaskRequest) (*api.CompleteTaskResponse, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Complete(ctx, owner, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &api.CompleteTaskResponse{}, nil
}

func (s *GRPCServer) DeleteTask(ctx context.Context, req *api.DeleteTaskRequest) (*api.DeleteTaskResponse, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Delete(ctx, owner, req.ID); err != nil {
		return nil, toStatus(err)
	}
	return &api.DeleteTaskResponse{}, nil
}

func (s *GRPCServer) ClearTasks(ctx context.Context, req *api.ClearTasksRequest) (*api.ClearTasksResponse, error) {
	owner, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	n, err := s.tasks.Clear(ctx, owner)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ClearTasksResponse{Deleted: n}, nil
}

// callerID returns the caller resolved by the access guard. Reaching a task
// handler without one is a wiring fault.
func callerID(ctx context.Context) (string, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Internal, "user id missing from context")
	}
	return id, nil
}

func toWire(t *models.Task) api.Task {
	at := t.ScheduledAt.UTC()
	return api.Task{
		ID:        t.ID,
		Name:      t.Name,
		Date:      at.Format(models.DateLayout),
		Time:      at.Format(models.TimeLayout),
		Priority:  string(t.Priority),
		Completed: t.Completed,
	}
}
