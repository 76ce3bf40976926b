// Package repositories implements SQLite persistence for local client state.
//
// [KVRepository] backs the [store.Store] capability with the kv_store table created by the
// embedded migrations in package shared. Values are opaque strings; the session and favorites
// layers decide what they hold (a token, a JSON user record, a JSON array of movies).
//
// Writes are upserts so the last write wins, matching the single-writer model of the client.
package repositories
