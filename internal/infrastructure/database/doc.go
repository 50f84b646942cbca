// Package database provides SQLite connectivity for the invocation history
// store.
//
// This package manages:
//   - Database connection with WAL mode for concurrent access
//   - Schema migrations embedded in the binary
//   - Connection lifecycle management
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Performance Characteristics:
//   - WAL mode allows concurrent reads during writes
//   - Busy timeout prevents lock contention errors when several dispatch
//     sessions append history at once
//
// Usage:
//
//	db, err := database.Open(database.DefaultConfig(cfg.History.Path))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	// Run migrations
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Migration files live in the top-level migrations directory and are named
// YYYYMMDD_HHMMSS_description.up.sql with a matching .down.sql.
package database
