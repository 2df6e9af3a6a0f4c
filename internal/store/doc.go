// Package store provides SQLite-backed history of test runs.
//
// Each run records its summary: one row per test entry and one row per
// failed case of a parameterized test. History only records outcomes; it
// never stores values needed to re-run a test.
//
// # Ordering
//
//   - Runs are ordered by seq, a logical counter assigned on write
//   - Entries are ordered by their position in the summary
//   - Wall-clock time is never used for ordering
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks instead of failing
//   - foreign_keys=ON: Cascade deletes from runs to entries
//
// Run ids are UUIDv7 strings, time-sortable for debugging.
package store
