package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/example/task-api-demo/modules/task"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp wires the handlers to a real task service over an in-memory
// SQLite database, with the same error handler the module installs.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&task.Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	m := NewModule(0, "*")
	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})
	m.handlers = NewHandlers(task.NewService(db))
	m.setupRoutes()

	return m.app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp, data
}

func decodeObject(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		t.Fatalf("failed to decode response %q: %v", data, err)
	}
	return obj
}

func createTask(t *testing.T, app *fiber.App, body string) map[string]any {
	t.Helper()
	resp, data := doJSON(t, app, "POST", "/tasks", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", resp.StatusCode, data)
	}
	return decodeObject(t, data)
}

func TestCreateTask(t *testing.T) {
	app := setupTestApp(t)

	created := createTask(t, app, `{"title":"Buy milk","priority":2,"completed":false}`)

	id, isNumber := created["id"].(float64)
	if !isNumber || id < 1 {
		t.Errorf("expected generated integer id, got %v", created["id"])
	}
	if created["title"] != "Buy milk" {
		t.Errorf("title = %v, want %q", created["title"], "Buy milk")
	}
	if created["description"] != nil {
		t.Errorf("expected null description, got %v", created["description"])
	}
	if created["priority"] != float64(2) {
		t.Errorf("priority = %v, want 2", created["priority"])
	}
	if created["completed"] != false {
		t.Errorf("completed = %v, want false", created["completed"])
	}
	if created["date"] != time.Now().UTC().Format("2006-01-02") {
		t.Errorf("date = %v, want today", created["date"])
	}
}

func TestCreateTask_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{
			name:      "no body",
			body:      "",
			wantError: "No JSON data received",
		},
		{
			name:      "missing title",
			body:      `{"priority":2,"completed":false}`,
			wantError: "Missing field: title",
		},
		{
			name:      "missing completed",
			body:      `{"title":"Task","priority":2}`,
			wantError: "Missing field: completed",
		},
		{
			name:      "missing priority",
			body:      `{"title":"Task","completed":false}`,
			wantError: "Missing field: priority",
		},
		{
			name:      "priority out of range",
			body:      `{"title":"Task","priority":6,"completed":false}`,
			wantError: task.MsgPriorityRange,
		},
		{
			name:      "priority as numeric string",
			body:      `{"title":"Task","priority":"2","completed":false}`,
			wantError: "No JSON data received",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(t)

			resp, data := doJSON(t, app, "POST", "/tasks", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body = %s", resp.StatusCode, data)
			}

			obj := decodeObject(t, data)
			message, _ := obj["error"].(string)
			if !strings.Contains(message, tt.wantError) {
				t.Errorf("error = %q, want it to contain %q", message, tt.wantError)
			}
		})
	}
}

func TestListTasks(t *testing.T) {
	app := setupTestApp(t)

	resp, data := doJSON(t, app, "GET", "/tasks", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty store body = %s, want []", data)
	}

	// Same-day tasks come back most recently created first.
	for _, title := range []string{"First", "Second", "Third"} {
		createTask(t, app, `{"title":"`+title+`","priority":1,"completed":false}`)
	}

	resp, data = doJSON(t, app, "GET", "/tasks", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var tasks []map[string]any
	if err := json.Unmarshal(data, &tasks); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	wantTitles := []string{"Third", "Second", "First"}
	for i, want := range wantTitles {
		if tasks[i]["title"] != want {
			t.Errorf("tasks[%d].title = %v, want %q", i, tasks[i]["title"], want)
		}
	}
}

func TestGetTask(t *testing.T) {
	app := setupTestApp(t)

	created := createTask(t, app, `{"title":"Lookup","description":"find me","priority":3,"completed":true}`)
	id := int(created["id"].(float64))

	t.Run("existing task", func(t *testing.T) {
		resp, data := doJSON(t, app, "GET", "/tasks/"+strconv.Itoa(id), "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		obj := decodeObject(t, data)
		if obj["title"] != "Lookup" {
			t.Errorf("title = %v, want %q", obj["title"], "Lookup")
		}
		if obj["description"] != "find me" {
			t.Errorf("description = %v, want %q", obj["description"], "find me")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, data := doJSON(t, app, "GET", "/tasks/9999", "")
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
		obj := decodeObject(t, data)
		if obj["error"] != "Task not found" {
			t.Errorf("error = %v, want %q", obj["error"], "Task not found")
		}
	})

	t.Run("non-numeric id", func(t *testing.T) {
		resp, _ := doJSON(t, app, "GET", "/tasks/abc", "")
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
	})
}

func TestUpdateTask(t *testing.T) {
	app := setupTestApp(t)

	created := createTask(t, app, `{"title":"Original","description":"keep me","priority":2,"completed":false}`)
	id := strconv.Itoa(int(created["id"].(float64)))

	t.Run("partial update changes only supplied fields", func(t *testing.T) {
		resp, data := doJSON(t, app, "PATCH", "/tasks/"+id, `{"completed":true}`)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, body = %s", resp.StatusCode, data)
		}
		obj := decodeObject(t, data)
		if obj["completed"] != true {
			t.Errorf("completed = %v, want true", obj["completed"])
		}
		if obj["title"] != "Original" {
			t.Errorf("title = %v, want unchanged", obj["title"])
		}
		if obj["description"] != "keep me" {
			t.Errorf("description = %v, want unchanged", obj["description"])
		}
		if obj["priority"] != float64(2) {
			t.Errorf("priority = %v, want unchanged", obj["priority"])
		}
	})

	t.Run("validation failure returns details", func(t *testing.T) {
		resp, data := doJSON(t, app, "PATCH", "/tasks/"+id, `{"priority":6}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		obj := decodeObject(t, data)
		if obj["error"] != "Validation failed" {
			t.Errorf("error = %v, want %q", obj["error"], "Validation failed")
		}
		details, _ := obj["details"].([]any)
		if len(details) != 1 || details[0] != task.MsgPriorityRange {
			t.Errorf("details = %v, want [%q]", details, task.MsgPriorityRange)
		}
	})

	t.Run("empty update set", func(t *testing.T) {
		resp, data := doJSON(t, app, "PATCH", "/tasks/"+id, `{}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
		obj := decodeObject(t, data)
		if obj["error"] != "No fields to update" {
			t.Errorf("error = %v, want %q", obj["error"], "No fields to update")
		}
	})

	t.Run("no body", func(t *testing.T) {
		resp, _ := doJSON(t, app, "PATCH", "/tasks/"+id, "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", resp.StatusCode)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, _ := doJSON(t, app, "PATCH", "/tasks/9999", `{"completed":true}`)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
	})
}

func TestDeleteTask(t *testing.T) {
	app := setupTestApp(t)

	created := createTask(t, app, `{"title":"Doomed","priority":0,"completed":false}`)
	id := strconv.Itoa(int(created["id"].(float64)))

	resp, data := doJSON(t, app, "DELETE", "/tasks/"+id, "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	if len(data) != 0 {
		t.Errorf("expected empty body, got %s", data)
	}

	resp, _ = doJSON(t, app, "GET", "/tasks/"+id, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "DELETE", "/tasks/"+id, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestHealthAndRoot(t *testing.T) {
	app := setupTestApp(t)

	resp, data := doJSON(t, app, "GET", "/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d, want 200", resp.StatusCode)
	}
	obj := decodeObject(t, data)
	if obj["status"] != "healthy" {
		t.Errorf("status = %v, want %q", obj["status"], "healthy")
	}

	resp, data = doJSON(t, app, "GET", "/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("root status = %d, want 200", resp.StatusCode)
	}
	obj = decodeObject(t, data)
	if obj["service"] != "task-api" {
		t.Errorf("service = %v, want %q", obj["service"], "task-api")
	}
}
