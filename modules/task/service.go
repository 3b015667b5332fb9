package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidTask is returned when a create payload fails validation.
var ErrInvalidTask = errors.New("invalid task data")

// dateFormat is the wire format for task dates.
const dateFormat = "2006-01-02"

// Service implements the task operations. Every operation runs inside one
// transaction against the injected handle: statements either fully commit or
// fully roll back, and the connection is released on every exit path.
type Service struct {
	db *gorm.DB
}

// NewService creates a new task service on the given database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create validates the payload, inserts a task dated today, reads the row
// back by its generated id and returns it. Validation failures are reported
// as ErrInvalidTask before any statement executes.
func (s *Service) Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error) {
	if err := ValidateTask(req); err != nil {
		return TaskResponse{}, fmt.Errorf("%w: %s", ErrInvalidTask, err)
	}

	var created *Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		task := &Task{
			Title:       *req.Title,
			Description: req.Description,
			Priority:    *req.Priority,
			Completed:   *req.Completed,
			Date:        today(),
		}
		if err := repo.Create(task); err != nil {
			return err
		}

		found, err := repo.FindByID(task.ID)
		if err != nil {
			return err
		}
		created = found
		return nil
	})
	if err != nil {
		return TaskResponse{}, err
	}

	return toTaskResponse(created), nil
}

// List returns all tasks ordered by date descending, then id descending. An
// empty store yields an empty slice, never an error.
func (s *Service) List(ctx context.Context) ([]TaskResponse, error) {
	var tasks []*Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := NewRepository(tx).FindAll()
		if err != nil {
			return err
		}
		tasks = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, toTaskResponse(task))
	}
	return responses, nil
}

// Get returns the task with the given id, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id int) (TaskResponse, error) {
	var task *Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := NewRepository(tx).FindByID(id)
		if err != nil {
			return err
		}
		task = found
		return nil
	})
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// Update applies a partial update with the given validated field set and
// returns the post-update task. Existence is re-checked first inside the same
// transaction. The creation date is never part of the updatable field set.
func (s *Service) Update(ctx context.Context, id int, fields map[string]any) (TaskResponse, error) {
	var updated *Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		if _, err := repo.FindByID(id); err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := repo.UpdateFields(id, fields); err != nil {
				return err
			}
		}

		found, err := repo.FindByID(id)
		if err != nil {
			return err
		}
		updated = found
		return nil
	})
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(updated), nil
}

// Delete removes the task with the given id, or returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return NewRepository(tx).Delete(id)
	})
}

// today returns the current calendar day in UTC. Stored dates never depend on
// the host timezone.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// toTaskResponse serializes a task. An empty description and an unset date
// come back as null.
func toTaskResponse(task *Task) TaskResponse {
	resp := TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Priority:  task.Priority,
		Completed: task.Completed,
	}
	if task.Description != "" {
		description := task.Description
		resp.Description = &description
	}
	if !task.Date.IsZero() {
		date := task.Date.Format(dateFormat)
		resp.Date = &date
	}
	return resp
}
