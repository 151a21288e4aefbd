package projects

import "github.com/gofiber/fiber/v2"

// RegisterRoutes registers the routes for the projects feature.
func RegisterRoutes(app *fiber.App, store *Store) {
	handler := NewHandler(store)

	group := app.Group("/projects")
	group.Get("/", handler.HandleList)
	group.Post("/", handler.HandleAdd)
	group.Delete("/", handler.HandleRemove)
	group.Put("/name", handler.HandleRename)
}
