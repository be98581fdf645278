// Package store provides local persistence for the wallet CLI.
//
// It contains concrete implementations of the domain storage interfaces.
// All methods are concurrency-safe via internal locking. Files live under
// the user's configured home directory.
//
// The package includes:
//   - Wallet sessions, sealed under the user passphrase (SessionFileStore)
//   - Transfer submission history in SQLite (SQLiteHistoryStore)
package store
