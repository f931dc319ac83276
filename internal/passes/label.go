package passes

import (
	"fmt"
	"strconv"

	"github.com/studyztp/nugget/internal/ir"
)

// LabelPassName is the invocation base name for the labeling pass.
const LabelPassName = "ir-bb-label-pass"

// LabelPassOptions is the option schema for the labeling pass.
var LabelPassOptions = []Option{
	{Name: "output_csv", Default: "bb_info.csv"},
}

// LabelPass assigns a dense, module-global ID to every basic block of every
// non-excluded defined function, attaches the ID as string metadata to the
// block's terminator, and writes one descriptive record per block to the
// configured CSV sink.
//
// IDs start at 0 and increase strictly in (function definition order, block
// order), the same total order every later scan uses. Function IDs
// likewise form a dense range over the processed functions. The IDs are
// stable only through the attached metadata: re-deriving the module without
// replaying this pass does not reproduce them by fiat, which is why the
// instrumentation passes decode the metadata instead of recounting.
type LabelPass struct {
	opts    OptionSet
	records []BlockRecord
}

// labelCounters threads the module-global ID accumulators through the
// single-pass walk.
type labelCounters struct {
	nextBlockID    uint64
	nextFunctionID uint64
}

// NewLabelPass creates the pass from resolved options.
func NewLabelPass(opts OptionSet) *LabelPass {
	return &LabelPass{opts: opts}
}

// Name returns the pass invocation base name.
func (p *LabelPass) Name() string { return LabelPassName }

// Records returns the descriptive records from the last Run, in label
// order.
func (p *LabelPass) Records() []BlockRecord { return p.records }

// Diagnostics returns nil: labeling has no recoverable conditions. A
// malformed block is fatal, because a table with silently skipped blocks
// would be incomplete and misleading.
func (p *LabelPass) Diagnostics() []string { return nil }

// Summary describes the last Run.
func (p *LabelPass) Summary() string {
	return fmt.Sprintf("labeled %d block(s), table written to %s",
		len(p.records), p.opts.Value("output_csv"))
}

// Run labels every block and writes the descriptive table. Re-running
// discards and recomputes all records; there is no incremental state.
func (p *LabelPass) Run(m *ir.Module) error {
	p.records = p.records[:0]
	var c labelCounters

	for _, f := range m.Functions {
		if excluded(f) {
			continue
		}
		for _, b := range f.Blocks {
			t := b.Terminator()
			if t == nil {
				return newStructureError(f.Name, b.Name)
			}

			id := c.nextBlockID
			c.nextBlockID++
			t.SetMeta(ir.BlockIDKey, strconv.FormatUint(id, 10))

			p.records = append(p.records, BlockRecord{
				FunctionName: ir.CanonicalName(f.Name),
				FunctionID:   c.nextFunctionID,
				BlockName:    ir.CanonicalName(b.Name),
				InstCount:    uint64(b.InstCount()),
				BlockID:      id,
			})
		}
		c.nextFunctionID++
	}

	return WriteTableFile(p.opts.Value("output_csv"), p.records)
}
