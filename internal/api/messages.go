package api

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type RegisterUserResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// SignOutRequest is empty: the token being revoked is the one in the
// authorization metadata.
type SignOutRequest struct{}

type SignOutResponse struct {
	Message string `json:"message"`
}

// Task is the wire form of a task. Date is "2006-01-02", Time is "15:04".
type Task struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Priority  string `json:"priority"`
	Completed bool   `json:"completed"`
}

type CreateTaskRequest struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Priority string `json:"priority"`
}

type CreateTaskResponse struct {
	Task Task `json:"task"`
}

type ListTasksRequest struct{}

type ListTasksResponse struct {
	Tasks []Task `json:"tasks"`
}

type GetTaskRequest struct {
	ID string `json:"id"`
}

type GetTaskResponse struct {
	Task Task `json:"task"`
}

// UpdateTaskRequest changes name, date and priority; the time of day is kept.
type UpdateTaskRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Priority string `json:"priority"`
}

type UpdateTaskResponse struct {
	Task Task `json:"task"`
}

type CompleteTaskRequest struct {
	ID string `json:"id"`
}

type CompleteTaskResponse struct{}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type DeleteTaskResponse struct{}

type ClearTasksRequest struct{}

type ClearTasksResponse struct {
	Deleted int64 `json:"deleted"`
}
