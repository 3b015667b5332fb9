package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
)

// createTask handles the task.create service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	return m.service.Create(ctx, req)
}

// getTask handles the task.get service request.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	return m.service.Get(ctx, req.ID)
}

// listTasks handles the task.list service request.
func (m *TaskModule) listTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.List(ctx)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{
		Tasks: tasks,
		Total: len(tasks),
	}, nil
}

// updateTask handles the task.update service request. The raw field set goes
// through the same lenient validation as the HTTP layer.
func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	errs, fields := ValidateTaskUpdate(req.Fields)
	if len(errs) > 0 {
		return TaskResponse{}, fmt.Errorf("validation failed: %s", strings.Join(errs, "; "))
	}
	if len(fields) == 0 {
		return TaskResponse{}, fmt.Errorf("no fields to update")
	}
	return m.service.Update(ctx, req.ID, fields)
}

// deleteTask handles the task.delete service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}
