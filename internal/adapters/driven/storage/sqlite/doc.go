// Package sqlite provides a SQLite-backed store for pending tag selections.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. The database lives at ~/.kb/kb.db by default, so a
// selection started in one process can be confirmed from another.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files and applied versions are recorded in schema_migrations.
//
// # Thread Safety
//
// All operations are safe for concurrent use. The database runs in WAL mode
// with a busy timeout so a TUI and an MCP server can share it.
package sqlite
