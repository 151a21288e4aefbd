package hosting

import (
	"fmt"
	"log/slog"

	"tinysort/src/features/classes"
	"tinysort/src/features/config"
	"tinysort/src/features/jobs"
	"tinysort/src/features/metrics"
	"tinysort/src/features/projects"
	"tinysort/src/features/sorting"
	"tinysort/src/infra/imaging"

	"github.com/gofiber/fiber/v2"
)

// Server is the HTTP server for the application.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, sortingService *sorting.Service, classService *classes.Service, projectStore *projects.Store, jobService *jobs.Service, loader *imaging.Loader) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("Internal Server Error", "error", err)
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		},
		AppName:               "tinySort",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	app.Use(LogAllRequestsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	sorting.RegisterRoutes(app, sortingService, loader)
	classes.RegisterRoutes(app, classService, loader)
	projects.RegisterRoutes(app, projectStore)
	jobs.RegisterRoutes(app, jobService)
	config.RegisterRoutes(app, cfg)
	metrics.RegisterRoutes(app)

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
