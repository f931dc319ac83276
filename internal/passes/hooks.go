package passes

import (
	"fmt"

	"github.com/studyztp/nugget/internal/ir"
)

// Runtime entry points the passes call into. All are resolved by fixed
// name; the runtime library implements them.
const (
	// InitHookName receives the instrumented-block total (analysis) or the
	// three marker trigger counts (bound) once, in the ROI entry function.
	InitHookName = "nugget_init"

	// BBHookName is the per-block sampling hook:
	// (instruction count, block ID, threshold).
	BBHookName = "nugget_bb_hook"

	// Marker hooks take no arguments; the runtime counts their executions.
	WarmupMarkerHookName = "nugget_warmup_marker_hook"
	StartMarkerHookName  = "nugget_start_marker_hook"
	EndMarkerHookName    = "nugget_end_marker_hook"

	// ROIBeginName and ROIEndName delimit the region of interest in the
	// instrumented program.
	ROIBeginName = "nugget_roi_begin_"
	ROIEndName   = "nugget_roi_end_"
)

// runtimeRoutines is the fixed exclusion set: helper entry points that are
// never labeled or instrumented by the block scans, even when the module
// carries their definitions.
var runtimeRoutines = map[string]bool{
	InitHookName:         true,
	BBHookName:           true,
	WarmupMarkerHookName: true,
	StartMarkerHookName:  true,
	EndMarkerHookName:    true,
	ROIBeginName:         true,
	ROIEndName:           true,
}

// excluded reports whether a function is skipped by every block scan:
// declarations and runtime helper routines.
func excluded(f *ir.Function) bool {
	return f.IsDeclaration() || runtimeRoutines[f.Name]
}

// instrumentROIBegin inserts a call to the init hook, carrying args,
// immediately before the terminator of the ROI entry function's unique
// exit block.
//
// Fatal when the ROI entry is missing or bodyless, when the init hook is
// not present in the module, or when the ROI entry has anything other than
// exactly one exit block. A multi-exit ROI entry would be silently
// half-instrumented otherwise.
func instrumentROIBegin(m *ir.Module, args ...uint64) error {
	roi := m.Function(ROIBeginName)
	if roi == nil || roi.IsDeclaration() {
		return &PassError{
			Code:     ErrCodeROIBeginNotFound,
			Message:  "ROI entry function not defined in module",
			Function: ROIBeginName,
		}
	}
	if m.Function(InitHookName) == nil {
		return newHookError(InitHookName)
	}
	exit, ok := roi.UniqueExitBlock()
	if !ok {
		return &PassError{
			Code:     ErrCodeROIMultiExit,
			Message:  "ROI entry function must have exactly one exit block",
			Function: ROIBeginName,
		}
	}
	exit.InsertBeforeTerminator(ir.NewCall(InitHookName, args...))
	return nil
}

// decodeBlockID reads and decodes the identity metadata from a block's
// terminator. The returned diagnostic is non-empty when the block must be
// skipped: no terminator, no metadata, or metadata that does not decode.
func decodeBlockID(f *ir.Function, b *ir.Block) (uint64, string) {
	t := b.Terminator()
	if t == nil {
		return 0, fmt.Sprintf("block %q in function %s has no terminator, skipping", b.Name, f.Name)
	}
	raw, ok := t.MetaValue(ir.BlockIDKey)
	if !ok {
		return 0, fmt.Sprintf("block %q in function %s is missing %s metadata, skipping", b.Name, f.Name, ir.BlockIDKey)
	}
	id, err := parseBlockID(raw)
	if err != nil {
		return 0, fmt.Sprintf("block %q in function %s carries invalid %s metadata %q, skipping", b.Name, f.Name, ir.BlockIDKey, raw)
	}
	return id, ""
}
