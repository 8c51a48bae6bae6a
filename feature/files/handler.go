package files

import (
	"net/url"

	"scene-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RoomKeyHeader carries the room key on download requests.
const RoomKeyHeader = "X-Room-Key"

// UploadRequest is the body of a batch upload.
type UploadRequest struct {
	Files []File `json:"files"`
}

// DownloadRequest is the body of a batch download.
type DownloadRequest struct {
	IDs []string `json:"ids"`
}

// Handler handles HTTP requests for room files.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the file routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/files")
	group.Put("/:prefix", h.HandleUpload)
	group.Post("/:prefix/download", h.HandleDownload)
}

// HandleUpload stores a batch of encoded files.
// @Summary Upload Files
// @Description Uploads encoded files under a prefix. Per-file failures are reported in erroredFiles.
// @Tags files
// @Accept json
// @Produce json
// @Param prefix path string true "Object prefix (URL encoded)"
// @Param body body UploadRequest true "Files with base64 data"
// @Success 200 {object} UploadResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /files/{prefix} [put]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	prefix, err := url.PathUnescape(c.Params("prefix"))
	if err != nil || prefix == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid prefix"})
	}

	var req UploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body", "details": err.Error()})
	}

	result := h.service.UploadBatch(c.UserContext(), prefix, req.Files)
	l.Info("File batch uploaded",
		zap.String("prefix", prefix),
		zap.Int("saved", len(result.Saved)),
		zap.Int("errored", len(result.Errored)))

	return c.JSON(result)
}

// HandleDownload fetches and decodes a batch of files.
// @Summary Download Files
// @Description Downloads and decrypts files under a prefix. Per-file failures are reported in erroredFiles.
// @Tags files
// @Accept json
// @Produce json
// @Param prefix path string true "Object prefix (URL encoded)"
// @Param X-Room-Key header string true "Room key"
// @Param body body DownloadRequest true "File ids"
// @Success 200 {object} DownloadResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /files/{prefix}/download [post]
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	prefix, err := url.PathUnescape(c.Params("prefix"))
	if err != nil || prefix == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid prefix"})
	}

	key := c.Get(RoomKeyHeader)
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing room key"})
	}

	var req DownloadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body", "details": err.Error()})
	}

	result := h.service.DownloadBatch(c.UserContext(), prefix, key, req.IDs)
	l.Info("File batch downloaded",
		zap.String("prefix", prefix),
		zap.Int("loaded", len(result.Loaded)),
		zap.Int("errored", len(result.Errored)))

	return c.JSON(result)
}
