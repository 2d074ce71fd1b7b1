// Package database handles database connections and schema inspection.
//
// It wraps GORM and configures either a MySQL connection or a sqlite file
// (sqlite ":memory:" is used by tests). The database only backs the optional
// run journal; the two catalog stores are remote and never touch it.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the journal verify that an existing
// schema still carries the columns it writes.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("journal disabled", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "sync_runs", []string{"id", "kind"})
package database
