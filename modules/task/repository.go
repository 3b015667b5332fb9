package task

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a task is not found. Absence is an expected
// outcome for lookups on unknown ids, not a fault.
var ErrNotFound = errors.New("task not found")

// Repository provides access to task storage. It runs on whatever handle it
// is given, so it composes inside a transaction.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task to the database. The store assigns the id.
func (r *Repository) Create(task *Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its id.
func (r *Repository) FindByID(id int) (*Task, error) {
	var task Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindAll retrieves all tasks, newest date first, ties broken by id
// descending so tasks created the same day come back most recent first.
func (r *Repository) FindAll() ([]*Task, error) {
	var tasks []*Task
	if err := r.db.Order("date DESC, id DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// UpdateFields applies a partial update with the given column values.
func (r *Repository) UpdateFields(id int, fields map[string]any) error {
	result := r.db.Model(&Task{}).Where("id = ?", id).Updates(fields)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes a task by id.
func (r *Repository) Delete(id int) error {
	result := r.db.Delete(&Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
