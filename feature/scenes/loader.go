package scenes

import (
	"scene-sync/core/crypto"
	"scene-sync/core/versioncache"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Scenes feature. A nil db disables it.
func NewFeature(db *gorm.DB, codec crypto.Codec, cache *versioncache.Cache, logger *zap.Logger) *Feature {
	f := &Feature{}
	if db == nil {
		return f
	}
	f.service = NewService(NewRepository(db), codec, cache, logger)
	f.handler = NewHandler(f.service)
	return f
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "scenes"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
