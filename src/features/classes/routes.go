package classes

import (
	"github.com/gofiber/fiber/v2"

	"tinysort/src/infra/imaging"
)

// RegisterRoutes registers the routes for the classes feature.
func RegisterRoutes(app *fiber.App, service *Service, loader *imaging.Loader) {
	handler := NewHandler(service, loader)

	group := app.Group("/classes")
	group.Get("/", handler.HandleList)
	group.Get("/:name/counts", handler.HandleCounts)
	group.Get("/:name/icon", handler.HandleIcon)

	app.Get("/labelmap", handler.HandleGetLabelmap)
	app.Put("/labelmap", handler.HandlePutLabelmap)
}
