// Package store provides SQLite-backed durable storage for user parameters.
//
// The store holds two tables:
//   - parameters: one row per user parameter, keyed by name
//   - changes: append-only history of every create, update and delete
//
// # Invariants
//
// Every mutation writes its history entry in the same transaction as the
// parameter row, so the two tables never disagree.
//
// History ordering uses the seq column (a logical clock), never timestamps.
// All list queries carry an explicit ORDER BY so results are deterministic.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
