package passes

import (
	"fmt"
	"strings"

	"github.com/studyztp/nugget/internal/ir"
)

// BoundPassName is the invocation base name for the phase-boundary
// instrumentation pass.
const BoundPassName = "phase-bound-pass"

// BoundPassOptions is the option schema for the phase-boundary pass. Every
// marker option is required; label_only selects structural asm markers
// instead of hook calls.
var BoundPassOptions = []Option{
	{Name: "warmup_marker_bb_id"},
	{Name: "warmup_marker_count"},
	{Name: "start_marker_bb_id"},
	{Name: "start_marker_count"},
	{Name: "end_marker_bb_id"},
	{Name: "end_marker_count"},
	{Name: "label_only", Default: "false"},
}

// markerTarget is one pending marker placement: the block ID to find and
// the hook that marks it. Each target is consumed at most once.
type markerTarget struct {
	blockID uint64
	hook    string
}

// markerLabel is the symbolic tag a label-only marker emits, derived from
// the hook name: "nugget_start_marker_hook" labels "nugget_start_marker:".
func markerLabel(hook string) string {
	return strings.TrimSuffix(hook, "_hook") + ":\n"
}

// BoundPass marks the warmup/start/end phase-boundary blocks and reports
// their trigger counts through the init hook in the ROI entry function.
//
// Targets are located by scanning blocks in label order and decoding each
// terminator's identity metadata; the first block whose decoded ID matches
// a still-pending target receives that target's marker, and the scan stops
// early once every pending target is placed. A configured ID that never
// matches is fatal: it means the configuration and the labeled program
// disagree, not that something transient went wrong.
//
// A warmup trigger count of zero requests no warmup marker at all: the
// warmup hook is neither looked up nor placed.
//
// In label_only mode each marker is an architecture no-op asm instruction
// carrying a unique symbolic tag and a clobbers-memory annotation instead
// of a call, for tooling that locates markers structurally rather than by
// call target.
type BoundPass struct {
	opts   OptionSet
	placed int
	diags  []string
}

// NewBoundPass creates the pass from resolved options.
func NewBoundPass(opts OptionSet) *BoundPass {
	return &BoundPass{opts: opts}
}

// Name returns the pass invocation base name.
func (p *BoundPass) Name() string { return BoundPassName }

// Diagnostics returns the skip diagnostics collected during the last Run.
func (p *BoundPass) Diagnostics() []string { return p.diags }

// Summary describes the last Run.
func (p *BoundPass) Summary() string {
	return fmt.Sprintf("placed %d marker(s)", p.placed)
}

// Run places the requested markers and instruments the ROI entry function
// with the three trigger counts.
func (p *BoundPass) Run(m *ir.Module) error {
	cfg, err := p.config()
	if err != nil {
		return err
	}

	p.placed = 0
	p.diags = nil

	targets := []markerTarget{
		{cfg.startID, StartMarkerHookName},
		{cfg.endID, EndMarkerHookName},
	}
	if cfg.warmupCount != 0 {
		targets = append(targets, markerTarget{cfg.warmupID, WarmupMarkerHookName})
	}

	if !cfg.labelOnly {
		for _, t := range targets {
			if m.Function(t.hook) == nil {
				return newHookError(t.hook)
			}
		}
	}

	if err := instrumentROIBegin(m, cfg.warmupCount, cfg.startCount, cfg.endCount); err != nil {
		return err
	}

	targets = p.placeMarkers(m, targets, cfg.labelOnly)
	if len(targets) > 0 {
		ids := make([]string, len(targets))
		for i, t := range targets {
			ids[i] = fmt.Sprintf("%d", t.blockID)
		}
		return &PassError{
			Code:    ErrCodeMarkerNotFound,
			Message: "no labeled block matches marker block ID(s) " + strings.Join(ids, ", "),
		}
	}
	return nil
}

// placeMarkers scans blocks in label order, placing each pending target at
// the first block whose decoded ID matches it. Returns the targets still
// pending when the scan ends.
func (p *BoundPass) placeMarkers(m *ir.Module, targets []markerTarget, labelOnly bool) []markerTarget {
	for _, f := range m.Functions {
		if excluded(f) {
			continue
		}
		for _, b := range f.Blocks {
			id, diag := decodeBlockID(f, b)
			if diag != "" {
				p.diags = append(p.diags, diag)
				continue
			}
			for i, t := range targets {
				if t.blockID != id {
					continue
				}
				if labelOnly {
					b.InsertBeforeTerminator(ir.NewAsm(markerLabel(t.hook), "memory"))
				} else {
					b.InsertBeforeTerminator(ir.NewCall(t.hook))
				}
				p.placed++
				targets = append(targets[:i], targets[i+1:]...)
				break
			}
			if len(targets) == 0 {
				return nil
			}
		}
	}
	return targets
}

// boundConfig holds the decoded option values.
type boundConfig struct {
	warmupID, warmupCount uint64
	startID, startCount   uint64
	endID, endCount       uint64
	labelOnly             bool
}

func (p *BoundPass) config() (boundConfig, error) {
	var cfg boundConfig
	var err error
	if cfg.warmupID, err = p.opts.Uint("warmup_marker_bb_id"); err != nil {
		return cfg, err
	}
	if cfg.warmupCount, err = p.opts.Uint("warmup_marker_count"); err != nil {
		return cfg, err
	}
	if cfg.startID, err = p.opts.Uint("start_marker_bb_id"); err != nil {
		return cfg, err
	}
	if cfg.startCount, err = p.opts.Uint("start_marker_count"); err != nil {
		return cfg, err
	}
	if cfg.endID, err = p.opts.Uint("end_marker_bb_id"); err != nil {
		return cfg, err
	}
	if cfg.endCount, err = p.opts.Uint("end_marker_count"); err != nil {
		return cfg, err
	}
	if cfg.labelOnly, err = p.opts.Bool("label_only"); err != nil {
		return cfg, err
	}
	return cfg, nil
}
