package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"scene-sync/core/crypto"
	"scene-sync/core/database"
	"scene-sync/core/element"
	"scene-sync/core/versioncache"
	"scene-sync/feature/scenes"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sceneKey        string
	sceneFile       string
	sceneConnection string
)

// sceneCmd represents the scene command
var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Load or save room scenes",
	Long:  `Reads and writes encrypted room scenes directly against the configured database.`,
}

// sceneLoadCmd represents the scene load command
var sceneLoadCmd = &cobra.Command{
	Use:   "load <roomId>",
	Short: "Decrypt and print the scene of a room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newSceneService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		scene, err := svc.LoadScene(cmd.Context(), args[0], sceneKey, "")
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(scene, "", "  ")
		if err != nil {
			return err
		}
		if sceneFile == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(sceneFile, data, 0o600); err != nil {
			return fmt.Errorf("failed to write scene: %w", err)
		}
		logg.Info("Scene written", zap.String("file", sceneFile), zap.Int("elements", len(scene)))
		return nil
	},
}

// sceneSaveCmd represents the scene save command
var sceneSaveCmd = &cobra.Command{
	Use:   "save <roomId>",
	Short: "Reconcile a scene file into the stored scene of a room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if sceneFile == "" {
			return fmt.Errorf("--file is required")
		}
		data, err := os.ReadFile(sceneFile)
		if err != nil {
			return fmt.Errorf("failed to read scene: %w", err)
		}
		local, err := element.Decode(data)
		if err != nil {
			return err
		}

		svc, logg, err := newSceneService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		connection := sceneConnection
		if connection == "" {
			connection = uuid.NewString()
		}

		result, err := svc.SaveScene(cmd.Context(), args[0], sceneKey, local, connection)
		if err != nil {
			return err
		}

		fmt.Printf("Written: %t\n", result.Written)
		fmt.Printf("Elements: %d\n", len(result.Scene))
		fmt.Printf("Scene Version: %d\n", result.SceneVersion)
		return nil
	},
}

func newSceneService() (*scenes.Service, *zap.Logger, error) {
	if sceneKey == "" {
		return nil, nil, fmt.Errorf("--key is required")
	}

	cfg, logg, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}

	codec, err := crypto.Lookup(cfg.Crypto.Algorithm)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection required: %w", err)
	}

	return scenes.NewService(scenes.NewRepository(db), codec, versioncache.New(), logg), logg, nil
}

func init() {
	sceneCmd.PersistentFlags().StringVar(&sceneKey, "key", "", "Room key")
	sceneCmd.PersistentFlags().StringVarP(&sceneFile, "file", "f", "", "Scene JSON file")
	sceneSaveCmd.Flags().StringVar(&sceneConnection, "connection", "", "Connection ID (random when empty)")

	sceneCmd.AddCommand(sceneLoadCmd)
	sceneCmd.AddCommand(sceneSaveCmd)
	RootCmd.AddCommand(sceneCmd)
}
