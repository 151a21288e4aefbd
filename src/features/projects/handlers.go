package projects

import (
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type projectRequest struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (h *Handler) HandleList(c *fiber.Ctx) error {
	return c.JSON(h.store.List())
}

func (h *Handler) HandleAdd(c *fiber.Ctx) error {
	var req projectRequest
	if err := c.BodyParser(&req); err != nil || req.Path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and path are required"})
	}
	projects, err := h.store.Add(req.Name, req.Path)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(projects)
}

func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	path := c.Query("path")
	if path == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path query parameter is required"})
	}
	projects, err := h.store.Remove(path)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(projects)
}

func (h *Handler) HandleRename(c *fiber.Ctx) error {
	var req projectRequest
	if err := c.BodyParser(&req); err != nil || req.Path == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and path are required"})
	}
	projects, err := h.store.Rename(req.Path, req.Name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(projects)
}
