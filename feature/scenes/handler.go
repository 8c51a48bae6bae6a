package scenes

import (
	"errors"

	"scene-sync/core/crypto"
	"scene-sync/core/element"
	"scene-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	// RoomKeyHeader carries the room key. The key never reaches the store.
	RoomKeyHeader = "X-Room-Key"
	// ConnectionIDHeader identifies the client connection for sync tracking.
	ConnectionIDHeader = "X-Connection-ID"
)

// SaveRequest is the body of a scene save.
type SaveRequest struct {
	Elements element.Scene `json:"elements"`
}

// SceneResponse is returned by scene loads and saves.
type SceneResponse struct {
	RoomID       string        `json:"roomId"`
	Written      bool          `json:"written"`
	SceneVersion int64         `json:"sceneVersion"`
	Elements     element.Scene `json:"elements"`
}

// Handler handles HTTP requests for room scenes.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the scene routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/rooms/:roomId/scene", h.HandleLoad)
	app.Put("/rooms/:roomId/scene", h.HandleSave)
	app.Delete("/connections/:connectionId", h.HandleCloseConnection)
}

// HandleLoad returns the decrypted scene of a room.
// @Summary Load Scene
// @Description Fetches and decrypts the stored scene of a room.
// @Tags scenes
// @Produce json
// @Param roomId path string true "Room ID"
// @Param X-Room-Key header string true "Room key"
// @Param X-Connection-ID header string false "Connection ID"
// @Success 200 {object} SceneResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 403 {object} map[string]string "Wrong room key"
// @Failure 404 {object} map[string]string "Empty room"
// @Failure 502 {object} map[string]string "Storage failure"
// @Router /rooms/{roomId}/scene [get]
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	key := c.Get(RoomKeyHeader)
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing room key"})
	}

	scene, err := h.service.LoadScene(c.UserContext(), roomID, key, c.Get(ConnectionIDHeader))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(SceneResponse{
		RoomID:       roomID,
		SceneVersion: scene.Version(),
		Elements:     scene,
	})
}

// HandleSave reconciles and stores the scene of a room.
// @Summary Save Scene
// @Description Reconciles the posted elements with the stored scene and replaces the snapshot. Returns written=false when already synced.
// @Tags scenes
// @Accept json
// @Produce json
// @Param roomId path string true "Room ID"
// @Param X-Room-Key header string true "Room key"
// @Param X-Connection-ID header string true "Connection ID"
// @Param body body SaveRequest true "Local elements"
// @Success 200 {object} SceneResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 403 {object} map[string]string "Wrong room key"
// @Failure 502 {object} map[string]string "Storage failure"
// @Router /rooms/{roomId}/scene [put]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	key := c.Get(RoomKeyHeader)
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing room key"})
	}

	var req SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body", "details": err.Error()})
	}

	result, err := h.service.SaveScene(c.UserContext(), roomID, key, req.Elements, c.Get(ConnectionIDHeader))
	if err != nil {
		return h.fail(c, err)
	}

	elements := result.Scene
	if elements == nil {
		elements = element.Scene{}
	}

	return c.JSON(SceneResponse{
		RoomID:       roomID,
		Written:      result.Written,
		SceneVersion: result.SceneVersion,
		Elements:     elements,
	})
}

// HandleCloseConnection drops the sync state of a connection.
// @Summary Close Connection
// @Description Forgets the last synced scene version of a connection.
// @Tags scenes
// @Param connectionId path string true "Connection ID"
// @Success 204 "No Content"
// @Router /connections/{connectionId} [delete]
func (h *Handler) HandleCloseConnection(c *fiber.Ctx) error {
	h.service.CloseConnection(c.Params("connectionId"))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Scene request failed",
			zap.String("room_id", c.Params("roomId")),
			zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor maps a scene error to an HTTP status.
func StatusFor(err error) int {
	var storageErr *StorageError
	switch {
	case errors.Is(err, ErrSceneNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, crypto.ErrAuthentication), errors.Is(err, crypto.ErrInvalidKey):
		return fiber.StatusForbidden
	case errors.Is(err, ErrCorruptSnapshot):
		return fiber.StatusInternalServerError
	case errors.Is(err, element.ErrInvalidElement):
		return fiber.StatusBadRequest
	case errors.As(err, &storageErr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
