// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL, PostgreSQL or SQLite connections based on the
// application's configuration. SQLite is mainly used for tests and small
// single-machine deployments.
//
// # Connect and Migrate
//
// Connect opens and pings the connection. Migrate runs AutoMigrate for the
// models it is given and is invoked once at startup, never lazily per request.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns back the health check, which reports
// tables whose columns drifted from the models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "residents", []string{"nik", "updated_at"})
package database
