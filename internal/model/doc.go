// Package model defines the core data structures used throughout fernetcrack.
//
// This package contains the following main types:
//   - Target: The immutable salt, Fernet token and iteration count under attack
//   - AttackResult: The outcome of one attack run and its terminal State
//   - Progress: A periodic observation emitted while an attack is running
//   - WordCount and Estimate: The size of a search space and its time cost
//   - BenchmarkResult: A measured verification throughput
//
// Models live in their own package so that the candidate, attack, report and
// database packages can share them without import cycles. All of them are
// serializable to JSON for report output and database storage.
package model
