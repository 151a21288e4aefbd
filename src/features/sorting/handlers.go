package sorting

import (
	"errors"
	"image/jpeg"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tinysort/src/infra/imaging"
	"tinysort/src/triage"
)

// Handler exposes the sorting engine to the presentation layer.
type Handler struct {
	service *Service
	loader  *imaging.Loader
}

func NewHandler(service *Service, loader *imaging.Loader) *Handler {
	return &Handler{service: service, loader: loader}
}

type openRequest struct {
	Base  string `json:"base"`
	Class string `json:"class"`
}

func (h *Handler) HandleOpen(c *fiber.Ctx) error {
	var req openRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Base == "" || req.Class == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "base and class are required"})
	}

	session := h.service.Open(req.Base, req.Class)
	return c.JSON(fiber.Map{
		"class":  session.Class().Name,
		"chunks": session.ChunkInfo(),
		"counts": session.Counts(),
	})
}

func (h *Handler) session(c *fiber.Ctx) (*Session, error) {
	session, err := h.service.Session()
	if err != nil {
		return nil, c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return session, nil
}

func (h *Handler) HandleCurrent(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}
	path, ok := session.Current()
	if !ok {
		return c.JSON(fiber.Map{"current": nil})
	}
	return c.JSON(fiber.Map{"current": path, "state": string(triage.StateUnsorted)})
}

type sortRequest struct {
	Action string `json:"action"`
}

func (h *Handler) HandleSort(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}

	var req sortRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := session.Sort(triage.State(req.Action)); err != nil {
		return h.sortError(c, err)
	}
	return c.JSON(fiber.Map{"counts": session.Counts()})
}

func (h *Handler) HandleUndo(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}
	if err := session.Undo(); err != nil {
		return h.sortError(c, err)
	}
	current, _ := session.Current()
	return c.JSON(fiber.Map{"current": current, "counts": session.Counts()})
}

// sortError maps engine errors to responses: benign no-ops come back as
// 200 with a reason, move failures as 500 with full context.
func (h *Handler) sortError(c *fiber.Ctx, err error) error {
	if errors.Is(err, triage.ErrNoCurrentImage) || errors.Is(err, triage.ErrNothingToUndo) {
		return c.JSON(fiber.Map{"noop": err.Error()})
	}
	var moveErr *triage.MoveError
	if errors.As(err, &moveErr) {
		slog.Error("move failed", "path", moveErr.Path, "dest", moveErr.Dest, "error", moveErr.Err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "move failed",
			"path":  moveErr.Path,
			"dest":  moveErr.Dest,
			"cause": moveErr.Err.Error(),
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

type navigateRequest struct {
	Direction string `json:"direction"`
}

func (h *Handler) HandleNavigate(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}

	var req navigateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	switch req.Direction {
	case "next":
		session.Navigate(1)
	case "prev":
		session.Navigate(-1)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "direction must be next or prev"})
	}
	current, _ := session.Current()
	return c.JSON(fiber.Map{"current": current})
}

func (h *Handler) HandleCounts(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}
	return c.JSON(session.Counts())
}

func (h *Handler) HandleStats(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}
	return c.JSON(session.Stats())
}

func (h *Handler) HandleChunkInfo(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}
	return c.JSON(session.ChunkInfo())
}

func (h *Handler) HandleSetActiveChunk(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "chunk index must be an integer"})
	}
	return c.JSON(session.SetActiveChunk(index))
}

func (h *Handler) HandleReenumerate(c *fiber.Ctx) error {
	if _, err := h.service.Session(); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	jobID, err := h.service.jobs.StartJob(JobTypeReenumerate, "re-enumerate", nil)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"job_id": jobID})
}

// HandleImage streams the current image file. The decoded bitmap also lands
// in the cache via the async pipeline; serving the original bytes keeps the
// endpoint format-faithful.
func (h *Handler) HandleImage(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}
	path, ok := session.Current()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": triage.ErrNoCurrentImage.Error()})
	}
	return c.SendFile(path)
}

// HandleImageInfo returns dimensions, byte size and EXIF data of the
// current image.
func (h *Handler) HandleImageInfo(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}
	path, ok := session.Current()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": triage.ErrNoCurrentImage.Error()})
	}
	info, err := h.loader.Info(path)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(info)
}

// HandleThumbnail waits for the decoded bitmap of the current head and
// returns it scaled to the requested height as JPEG.
func (h *Handler) HandleThumbnail(c *fiber.Ctx) error {
	session, err := h.session(c)
	if session == nil {
		return err
	}
	path, ok := session.Current()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": triage.ErrNoCurrentImage.Error()})
	}

	height := c.QueryInt("height", 160)
	thumb := h.loader.Thumbnail(path, height)

	c.Set(fiber.HeaderContentType, "image/jpeg")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return jpeg.Encode(c.Response().BodyWriter(), thumb, &jpeg.Options{Quality: 85})
}
