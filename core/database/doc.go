// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to open Postgres, MySQL or SQLite connections
// from the application's configuration. Scene snapshots live in this database.
//
// # Connect
//
// Connect picks the GORM dialector for the configured driver, applies pool
// settings and verifies the connection with a bounded ping.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the health check verify that the scenes
// table carries the columns the scene store expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "scenes", []string{"id", "iv"})
package database
