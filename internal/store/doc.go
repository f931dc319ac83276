// Package store provides SQLite-backed provenance for labeling runs.
//
// Block IDs are only stable within the artifact that carries the attached
// identity metadata, so knowing which labeling run produced a table, and
// exactly which records it produced, matters when correlating runtime
// samples back to blocks. The store keeps:
//   - label_runs: one row per labeling run (run ID, module name, raw pass
//     parameters, function and block totals), ordered by an insertion seq
//     rather than wall-clock time
//   - block_records: every descriptive record of a run, readable back in
//     label order
//
// Database configuration mirrors a single-writer workload:
//   - WAL mode for concurrent reads
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
