// Package ir provides the in-memory intermediate representation the
// instrumentation passes operate on.
//
// This package contains type definitions and serialization only. All other
// internal packages import ir; ir imports nothing internal. This keeps IR
// the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Iteration order is definition order everywhere. Functions are visited
//     in module order and blocks in function order, so any scan over a
//     module is deterministic and reproducible.
//   - Block identity lives on the terminator instruction as string-encoded
//     metadata under the reserved key BlockIDKey. It is written once by the
//     labeling pass and read, never mutated, by every later pass. A block
//     without the metadata is legal downstream and must be handled.
//   - Modules are mutated in place by metadata attachment and instruction
//     insertion. There is no concurrency; passes are whole-module,
//     single-threaded scans.
package ir
