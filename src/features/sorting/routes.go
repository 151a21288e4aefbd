package sorting

import (
	"github.com/gofiber/fiber/v2"

	"tinysort/src/infra/imaging"
)

// RegisterRoutes registers the routes for the sorting feature.
func RegisterRoutes(app *fiber.App, service *Service, loader *imaging.Loader) {
	handler := NewHandler(service, loader)

	sorter := app.Group("/sorter")
	sorter.Post("/open", handler.HandleOpen)
	sorter.Get("/current", handler.HandleCurrent)
	sorter.Post("/sort", handler.HandleSort)
	sorter.Post("/undo", handler.HandleUndo)
	sorter.Post("/navigate", handler.HandleNavigate)
	sorter.Get("/counts", handler.HandleCounts)
	sorter.Get("/stats", handler.HandleStats)
	sorter.Get("/chunks", handler.HandleChunkInfo)
	sorter.Post("/chunks/:index", handler.HandleSetActiveChunk)
	sorter.Post("/reenumerate", handler.HandleReenumerate)
	sorter.Get("/image", handler.HandleImage)
	sorter.Get("/image/info", handler.HandleImageInfo)
	sorter.Get("/thumbnail", handler.HandleThumbnail)
}
