// Package config provides configuration management for scene-sync.
//
// It utilizes Viper for loading configuration from an optional config.yaml,
// a .env file and environment variables.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, body limit)
//   - Database: scene snapshot database (postgres, mysql or sqlite)
//   - Storage: S3/MinIO credentials and the files bucket
//   - Crypto: encryption algorithm
//   - Files: cache lifetime, batch concurrency and compression for file transfers
//   - Log: Logging level and format
//
// Defaults come from `default` struct tags. Environment variables map to nested
// keys by replacing dots with underscores (STORAGE_BUCKET -> storage.bucket).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
