// Package sqlite provides a SQLite-backed results store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Each crawl is stored as a run with its
// classified records in ranked order, so results from different runs can be
// compared with `reposift results`.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// The database path comes from output.db or --db. The default is
// ~/.reposift/data/results.db.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
