package cmd

import (
	"encoding/json"
	"fmt"

	"scene-sync/core/database"
	"scene-sync/core/storage"
	"scene-sync/feature/health"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the database, scenes schema and files bucket",
	Long:  `Checks that the backing stores are reachable and prepared. With --fix, migrates the scenes table and creates the bucket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Database connection failed", zap.Error(err))
		} else {
			db = conn
		}

		var client storage.Client
		if c, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Storage client failed", zap.Error(err))
		} else {
			client = c
		}

		report := health.NewService(db, client, cfg.Storage.Bucket, logg).Check(cmd.Context(), fixFlag)

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

		if !report.Healthy {
			return fmt.Errorf("health check failed")
		}
		return nil
	},
}

func init() {
	healthCmd.Flags().BoolVar(&fixFlag, "fix", false, "Migrate the scenes table and create the bucket")
	RootCmd.AddCommand(healthCmd)
}
