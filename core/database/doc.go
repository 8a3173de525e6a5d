// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL, PostgreSQL or SQLite connections from
// the application's configuration. The database only backs the run history,
// so a failed connection is reported and the service keeps running without it.
//
// # Schema Inspection
//
// GetTableColumns returns the column definitions of a table on every supported
// dialect. The history package uses it to verify that its tables match the
// models before trusting them.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("history disabled", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "reconcile_runs")
package database
