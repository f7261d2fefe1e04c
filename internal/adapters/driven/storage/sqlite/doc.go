// Package sqlite provides the durable storage tier: session messages
// and generated projects, persisted in a single SQLite database.
//
// The database is opened in WAL mode and schema changes are applied
// through embedded, versioned migrations. The in-memory session cache
// is rehydrated from this store after a restart, so the tables here
// are the source of truth for conversation history.
package sqlite
