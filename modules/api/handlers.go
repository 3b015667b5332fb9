package api

import (
	"errors"
	"log"

	"github.com/example/task-api-demo/modules/task"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains the HTTP handlers for the task API. They validate the
// body shape, delegate to the task service and map outcomes to status codes;
// no business logic lives here.
type Handlers struct {
	service *task.Service
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *task.Service) *Handlers {
	return &Handlers{service: service}
}

// CreateTask handles POST /tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var req task.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "No JSON data received",
		})
	}

	if req.Title == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing field: title",
		})
	}
	if req.Completed == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing field: completed",
		})
	}
	if req.Priority == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Missing field: priority",
		})
	}

	created, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// ListTasks handles GET /tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.service.List(c.UserContext())
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tasks)
}

// GetTask handles GET /tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Task not found",
		})
	}

	found, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(found)
}

// UpdateTask handles PATCH /tasks/:id.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Task not found",
		})
	}

	payload := map[string]any{}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "No JSON data received",
		})
	}

	errs, fields := task.ValidateTaskUpdate(payload)
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ValidationErrorResponse{
			Error:   "Validation failed",
			Details: errs,
		})
	}
	if len(fields) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "No fields to update",
		})
	}

	updated, err := h.service.Update(c.UserContext(), id, fields)
	if err != nil {
		return h.handleServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeleteTask handles DELETE /tasks/:id. Success is 204 with no body.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Task not found",
		})
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.handleServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Root handles GET / with service information.
func (h *Handlers) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service":   "task-api",
		"endpoints": []string{"/tasks", "/tasks/:id", "/health"},
	})
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"module": "api",
	})
}

// handleServiceError maps task service errors to responses. Unexpected
// errors are logged with the request id and never echoed to the client.
func (h *Handlers) handleServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, task.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "Task not found",
		})
	case errors.Is(err, task.ErrInvalidTask):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: err.Error(),
		})
	default:
		log.Printf("[api] Internal error (request %v): %v", c.Locals("requestid"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}
