package task

// CreateTaskRequest is the request for creating a task. Required fields are
// pointers so a missing key is distinguishable from a zero value.
type CreateTaskRequest struct {
	Title       *string `json:"title"`
	Description string  `json:"description"`
	Priority    *int    `json:"priority"`
	Completed   *bool   `json:"completed"`
}

// TaskResponse represents a task in responses. Description and Date are
// pointers so an empty description and an unset date serialize as null.
type TaskResponse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    int     `json:"priority"`
	Completed   bool    `json:"completed"`
	Date        *string `json:"date"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	ID int `json:"id"`
}

// ListTasksRequest is the request for listing tasks.
type ListTasksRequest struct{}

// ListTasksResponse is the response containing all tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// UpdateTaskRequest is the request for partially updating a task. Fields holds
// the raw field set; it is validated before anything reaches the store.
type UpdateTaskRequest struct {
	ID     int            `json:"id"`
	Fields map[string]any `json:"fields"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID int `json:"id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
	ID      int  `json:"id"`
}
