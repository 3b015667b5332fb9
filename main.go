package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-api-demo/config"
	"github.com/example/task-api-demo/modules/api"
	"github.com/example/task-api-demo/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load .env if present; environment variables win otherwise.
	if err := godotenv.Load(); err != nil {
		log.Println("[main] No .env file found, using process environment")
	}

	cfg := config.Load()

	log.Println("=== Task API ===")
	log.Printf("Database: %s", cfg.DatabasePath)
	log.Printf("HTTP port: %d", cfg.HTTPPort)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules. The task module owns the store; the api module
	// exposes it over HTTP and is wired with a direct module reference.
	taskModule := task.NewModule(cfg.DatabasePath)
	apiModule := api.NewModule(cfg.HTTPPort, cfg.CORSOrigins)
	apiModule.SetTaskModule(taskModule)

	app.Register(taskModule)
	app.Register(apiModule)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	log.Println("Application started successfully")

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}
