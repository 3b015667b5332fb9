package task

import (
	"time"
)

// Task represents a task record in the store.
type Task struct {
	ID          int       `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"size:1000" json:"description"`
	Priority    int       `gorm:"not null" json:"priority"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	Date        time.Time `gorm:"type:date" json:"date"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}
