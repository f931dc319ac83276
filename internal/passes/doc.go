// Package passes implements the three whole-module instrumentation passes
// and the option micro-language that configures them.
//
// ARCHITECTURE:
//
// Single-threaded scan-and-mutate:
// Every pass is a complete, synchronous walk over the module. Functions are
// visited in definition order and blocks in function order, so ID
// assignment, record emission, and marker placement are deterministic and
// reproducible given the same input module.
//
// Pass pipeline:
//  1. ir-bb-label-pass assigns a dense module-global ID to every block of
//     every non-excluded defined function, attaches it as bb.id metadata on
//     the terminator, and writes one descriptive CSV row per block.
//  2. phase-analysis-pass re-reads the metadata and inserts a sampling-hook
//     call (instruction count, block ID, threshold) before every labeled
//     terminator, then reports the instrumented-block total through the
//     init hook in the ROI entry function.
//  3. phase-bound-pass locates the warmup/start/end marker blocks by
//     decoded ID and inserts marker-hook calls (or label-only asm markers),
//     then reports the three trigger counts through the init hook.
//
// Passes 2 and 3 depend on the labeling metadata surviving whatever runs
// between them and the labeler. A block whose metadata is missing or
// undecodable is skipped with a diagnostic, never fatally: intervening
// transformations may legitimately merge or delete blocks.
//
// ERROR TAXONOMY:
//
// Fatal (abort the run): malformed structure (block without terminator
// during labeling), a required hook or the ROI entry missing, a configured
// marker ID never located, zero blocks instrumented, sink write failure.
// No partial output is trustworthy after any of these.
//
// Recoverable (skip with diagnostic): missing or undecodable bb.id
// metadata during instrumentation. Collected on the pass, reported by the
// caller, and never changes the run's outcome.
//
// Configuration errors: malformed items, unknown keys, or unresolved
// required options in a parameter string. Reported distinctly from "this
// invocation name is not this pass" (ErrNameMismatch) so a dispatcher can
// silently try the next registered pass.
package passes
