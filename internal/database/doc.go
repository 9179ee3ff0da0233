// Package database provides SQLite-based run history for fernetcrack.
//
// RunDB stores two kinds of records:
//   - Benchmarks: measured verification throughput per iteration count,
//     used to estimate attack time without measuring again
//   - Attack runs: the summary of every finished attack
//
// Only finished runs are stored. Nothing in the database is used to resume
// an interrupted attack.
//
// The database is a single file (fernetcrack.db) opened through the CGO-free
// modernc.org/sqlite driver with WAL journaling and a single connection.
package database
