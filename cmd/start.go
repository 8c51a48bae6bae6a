package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"scene-sync/core/crypto"
	"scene-sync/core/database"
	"scene-sync/core/loader"
	"scene-sync/core/logger"
	"scene-sync/core/metrics"
	"scene-sync/core/middleware/auth"
	"scene-sync/core/middleware/rayid"
	"scene-sync/core/storage"
	"scene-sync/core/versioncache"

	"scene-sync/feature/files"
	"scene-sync/feature/health"
	"scene-sync/feature/scenes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "scene-sync/docs/swagger"
)

// @title Scene Sync API
// @version 1.0
// @description Encrypted scene persistence and file transfer for collaborative whiteboard rooms.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the scene sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration and Logger
		cfg, logg, err := bootstrap()
		if err != nil {
			log.Fatal(err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := cfg.Server.Validate(); err != nil {
			logg.Fatal("Invalid server configuration", zap.Error(err))
		}

		codec, err := crypto.Lookup(cfg.Crypto.Algorithm)
		if err != nil {
			logg.Fatal("Invalid crypto configuration", zap.Error(err))
		}

		// 2. Connect to Database (scenes are disabled without it)
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Database connection failed, scenes disabled", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
		}

		// 3. Initialize Storage (files are disabled without it)
		var store storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Storage client failed, files disabled", zap.Error(err))
		} else {
			store = client
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 5. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(health.NewFeature(db, store, cfg.Storage.Bucket, logg))
		mgr.Register(scenes.NewFeature(db, codec, versioncache.New(), logg))
		mgr.Register(files.NewFeature(store, cfg.Storage.Bucket, cfg.Files, codec, logg))

		// Middleware Registration
		// RayID must be first to trace everything
		app.Use(rayid.New())
		app.Use(metrics.Middleware())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", metrics.Handler())

		// Everything below requires the API key
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		for _, f := range mgr.Features() {
			logg.Info("Feature", zap.String("name", f.Name()), zap.Bool("enabled", f.IsEnabled()))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
