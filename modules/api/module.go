package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/task-api-demo/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// Module provides the HTTP API for the task service.
type Module struct {
	app         *fiber.App
	handlers    *Handlers
	taskModule  *task.TaskModule
	port        int
	corsOrigins string
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new API module.
func NewModule(port int, corsOrigins string) *Module {
	return &Module{
		port:        port,
		corsOrigins: corsOrigins,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// SetTaskModule sets the task module dependency.
func (m *Module) SetTaskModule(tm *task.TaskModule) {
	m.taskModule = tm
}

// Start configures the Fiber app and starts the HTTP server.
func (m *Module) Start(_ context.Context) error {
	if m.taskModule == nil {
		return fmt.Errorf("task module not set")
	}

	service := m.taskModule.Service()
	if service == nil {
		return fmt.Errorf("task service not available")
	}

	m.app = fiber.New(fiber.Config{
		AppName:               "Task API",
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})

	// Global middleware
	m.app.Use(recover.New())
	m.app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New(cors.Config{
		AllowOrigins: m.corsOrigins,
	}))

	m.handlers = NewHandlers(service)
	m.setupRoutes()

	go func() {
		addr := fmt.Sprintf(":%d", m.port)
		log.Printf("[api] Starting HTTP server on %s", addr)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	return nil
}

// setupRoutes configures all HTTP routes.
func (m *Module) setupRoutes() {
	m.app.Get("/", m.handlers.Root)
	m.app.Get("/health", m.handlers.HealthCheck)

	m.app.Post("/tasks", m.handlers.CreateTask)
	m.app.Get("/tasks", m.handlers.ListTasks)
	m.app.Get("/tasks/:id", m.handlers.GetTask)
	m.app.Patch("/tasks/:id", m.handlers.UpdateTask)
	m.app.Delete("/tasks/:id", m.handlers.DeleteTask)
}

// Stop stops the HTTP server gracefully.
func (m *Module) Stop(_ context.Context) error {
	if m.app != nil {
		log.Println("[api] Shutting down HTTP server...")
		return m.app.Shutdown()
	}
	return nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// errorHandler handles errors from Fiber routes, including the generic
// 404/405 fallbacks for unregistered paths and methods.
func (m *Module) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error: message,
	})
}
