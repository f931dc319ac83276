package passes

import (
	"fmt"

	"github.com/studyztp/nugget/internal/ir"
)

// AnalysisPassName is the invocation base name for the interval
// instrumentation pass.
const AnalysisPassName = "phase-analysis-pass"

// AnalysisPassOptions is the option schema for the interval instrumentation
// pass. interval_length has no default: it is the sampling threshold and
// must come from the caller.
var AnalysisPassOptions = []Option{
	{Name: "interval_length"},
}

// AnalysisPass inserts a sampling-hook call before the terminator of every
// block that carries decodable identity metadata, then reports the
// instrumented-block total through the init hook in the ROI entry function.
//
// The hook call carries the block's live instruction count (recomputed at
// insertion time, not read from the labeling table), the decoded block ID,
// and the configured threshold. Blocks whose metadata is missing or
// undecodable are skipped with a diagnostic: transformations that ran after
// labeling may have merged or deleted blocks, and losing a few is expected.
// Instrumenting zero blocks is not.
type AnalysisPass struct {
	opts         OptionSet
	instrumented int
	diags        []string
}

// NewAnalysisPass creates the pass from resolved options.
func NewAnalysisPass(opts OptionSet) *AnalysisPass {
	return &AnalysisPass{opts: opts}
}

// Name returns the pass invocation base name.
func (p *AnalysisPass) Name() string { return AnalysisPassName }

// Instrumented returns the number of blocks that received a sampling-hook
// call during the last Run.
func (p *AnalysisPass) Instrumented() int { return p.instrumented }

// Diagnostics returns the skip diagnostics collected during the last Run.
func (p *AnalysisPass) Diagnostics() []string { return p.diags }

// Summary describes the last Run.
func (p *AnalysisPass) Summary() string {
	return fmt.Sprintf("instrumented %d block(s), skipped %d", p.instrumented, len(p.diags))
}

// Run instruments every labeled block and the ROI entry function.
func (p *AnalysisPass) Run(m *ir.Module) error {
	threshold, err := p.opts.Uint("interval_length")
	if err != nil {
		return err
	}
	if m.Function(BBHookName) == nil {
		return newHookError(BBHookName)
	}

	p.instrumented = 0
	p.diags = nil

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
			// Count before inserting so the hook call itself is not
			// included.
			count := uint64(b.InstCount())
			b.InsertBeforeTerminator(ir.NewCall(BBHookName, count, id, threshold))
			p.instrumented++
		}
	}

	if p.instrumented == 0 {
		return &PassError{
			Code:    ErrCodeNothingInstrumented,
			Message: "no block carried usable identity metadata; run " + LabelPassName + " first",
		}
	}
	return instrumentROIBegin(m, uint64(p.instrumented))
}
