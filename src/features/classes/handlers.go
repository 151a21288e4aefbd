package classes

import (
	"image/jpeg"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"tinysort/src/infra/imaging"
)

// Handler is the handler for the classes feature.
type Handler struct {
	service *Service
	loader  *imaging.Loader
}

func NewHandler(service *Service, loader *imaging.Loader) *Handler {
	return &Handler{service: service, loader: loader}
}

func (h *Handler) base(c *fiber.Ctx) (string, bool) {
	base := c.Query("base")
	return base, base != ""
}

func (h *Handler) HandleList(c *fiber.Ctx) error {
	base, ok := h.base(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "base query parameter is required"})
	}
	infos, err := h.service.List(base)
	if err != nil {
		slog.Error("failed to list classes", "base", base, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(infos)
}

func (h *Handler) HandleCounts(c *fiber.Ctx) error {
	base, ok := h.base(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "base query parameter is required"})
	}
	return c.JSON(h.service.Counts(base, c.Params("name")))
}

// HandleIcon serves the class preview: the first image found in the class,
// scaled down. Classes without images get the error placeholder.
func (h *Handler) HandleIcon(c *fiber.Ctx) error {
	base, ok := h.base(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "base query parameter is required"})
	}

	first := h.service.FirstImage(base, c.Params("name"))
	img := imaging.Placeholder()
	if first != "" {
		img = h.loader.Thumbnail(first, c.QueryInt("height", 64))
	}

	c.Set(fiber.HeaderContentType, "image/jpeg")
	return jpeg.Encode(c.Response().BodyWriter(), img, &jpeg.Options{Quality: 85})
}

func (h *Handler) HandleGetLabelmap(c *fiber.Ctx) error {
	base, ok := h.base(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "base query parameter is required"})
	}
	return c.JSON(LoadLabelmap(base))
}

func (h *Handler) HandlePutLabelmap(c *fiber.Ctx) error {
	base, ok := h.base(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "base query parameter is required"})
	}
	var mapping map[string]string
	if err := c.BodyParser(&mapping); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid labelmap body"})
	}
	if err := SaveLabelmap(base, mapping); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(mapping)
}
