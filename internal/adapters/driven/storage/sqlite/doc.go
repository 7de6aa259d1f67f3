// Package sqlite provides a SQLite-backed evaluation store.
// The database lives under the SARA data directory and is migrated
// automatically on open from embedded SQL files.
package sqlite
