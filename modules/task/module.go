package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TaskModule provides task management services via GORM + SQLite.
type TaskModule struct {
	db      *gorm.DB
	service *Service
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule backed by the SQLite database at dbPath.
func NewModule(dbPath string) *TaskModule {
	return &TaskModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// Service returns the task service. It is available after Start.
func (m *TaskModule) Service() *Service {
	return m.service
}

// Health performs a health check on the task module.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
// The framework prefixes service names with "services.<module>." so "create"
// becomes "services.task.create" in the NATS subject.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	log.Printf("[task] Registered services: services.task.{create,get,list,update,delete}")
	return nil
}

// Start opens the database connection and creates the tasks table if it is
// not already present.
func (m *TaskModule) Start(_ context.Context) error {
	log.Printf("[task] Connecting to SQLite database: %s", m.dbPath)

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	m.db = db

	// AutoMigrate is idempotent
	if err := m.db.AutoMigrate(&Task{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.service = NewService(m.db)

	log.Println("[task] Module started successfully")
	return nil
}

// Stop gracefully closes the database connection.
func (m *TaskModule) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	log.Println("[task] Closing database connection...")

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("[task] Database connection closed")
	return nil
}
