package passes

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyztp/nugget/internal/ir"
	"github.com/studyztp/nugget/internal/testutil"
)

// newLabelPass builds the pass with its table sink pointed into a temp
// directory.
func newLabelPass(t *testing.T) *LabelPass {
	t.Helper()
	opts, err := ParseOptions("output_csv="+filepath.Join(t.TempDir(), "bb_info.csv"), LabelPassOptions)
	require.NoError(t, err)
	return NewLabelPass(opts)
}

func TestLabelPass_DenseIDsAndMetadata(t *testing.T) {
	m := testutil.InstrumentedModule()
	pass := newLabelPass(t)
	require.NoError(t, pass.Run(m))

	records := pass.Records()
	require.Len(t, records, 5)

	// Block IDs are dense over [0, 5) in (function order, block order).
	for i, r := range records {
		assert.Equal(t, uint64(i), r.BlockID)
	}

	// Function IDs are dense over the processed functions.
	assert.Equal(t, uint64(0), records[0].FunctionID)
	for _, r := range records[1:] {
		assert.Equal(t, uint64(1), r.FunctionID)
	}

	// The attached metadata decodes back to each record's ID.
	i := 0
	for _, name := range []string{"warm", "compute"} {
		f := m.Function(name)
		require.NotNil(t, f)
		for _, b := range f.Blocks {
			raw, ok := b.Terminator().MetaValue(ir.BlockIDKey)
			require.True(t, ok)
			assert.Equal(t, strconv.FormatUint(records[i].BlockID, 10), raw)
			i++
		}
	}
}

func TestLabelPass_Records(t *testing.T) {
	m := testutil.InstrumentedModule()
	pass := newLabelPass(t)
	require.NoError(t, pass.Run(m))

	want := []BlockRecord{
		{FunctionName: "warm", FunctionID: 0, BlockName: "", InstCount: 4, BlockID: 0},
		{FunctionName: "compute", FunctionID: 1, BlockName: "", InstCount: 3, BlockID: 1},
		{FunctionName: "compute", FunctionID: 1, BlockName: "if.then", InstCount: 5, BlockID: 2},
		{FunctionName: "compute", FunctionID: 1, BlockName: "if.else", InstCount: 2, BlockID: 3},
		{FunctionName: "compute", FunctionID: 1, BlockName: "if.end", InstCount: 3, BlockID: 4},
	}
	assert.Equal(t, want, pass.Records())
}

func TestLabelPass_ExcludesDeclarationsAndRuntimeRoutines(t *testing.T) {
	m := testutil.InstrumentedModule()
	pass := newLabelPass(t)
	require.NoError(t, pass.Run(m))

	for _, r := range pass.Records() {
		assert.NotEqual(t, "nugget_roi_begin_", r.FunctionName)
		assert.NotContains(t, r.FunctionName, "hook")
	}

	// The ROI entry keeps its body unlabeled.
	roi := m.Function("nugget_roi_begin_")
	require.NotNil(t, roi)
	_, ok := roi.Blocks[0].Terminator().MetaValue(ir.BlockIDKey)
	assert.False(t, ok)
}

func TestLabelPass_Deterministic(t *testing.T) {
	a, b := testutil.InstrumentedModule(), testutil.InstrumentedModule()

	passA, passB := newLabelPass(t), newLabelPass(t)
	require.NoError(t, passA.Run(a))
	require.NoError(t, passB.Run(b))

	assert.Equal(t, passA.Records(), passB.Records())
	assert.Equal(t, a, b)
}

func TestLabelPass_RerunDiscardsState(t *testing.T) {
	pass := newLabelPass(t)
	require.NoError(t, pass.Run(testutil.InstrumentedModule()))
	require.NoError(t, pass.Run(testutil.InstrumentedModule()))

	// Records are recomputed, not accumulated.
	assert.Len(t, pass.Records(), 5)
}

func TestLabelPass_MissingTerminatorIsFatal(t *testing.T) {
	m := testutil.Module("prog",
		testutil.Func("broken", &ir.Block{
			Name:         "body",
			Instructions: []*ir.Instruction{{Op: "add"}},
		}),
	)
	pass := newLabelPass(t)

	err := pass.Run(m)
	require.Error(t, err)
	assert.Equal(t, ErrCodeMissingTerminator, ErrorCode(err))
	assert.Contains(t, err.Error(), "broken")
}

func TestLabelPass_CanonicalizesNames(t *testing.T) {
	decomposed := "für" // u + combining diaeresis
	composed := "für"

	m := testutil.Module("prog", testutil.Func(decomposed, testutil.Block("", 0, "ret")))
	pass := newLabelPass(t)
	require.NoError(t, pass.Run(m))

	require.Len(t, pass.Records(), 1)
	assert.Equal(t, composed, pass.Records()[0].FunctionName)
}

func TestLabelPass_SinkError(t *testing.T) {
	opts, err := ParseOptions("output_csv="+filepath.Join(t.TempDir(), "no", "such", "dir", "t.csv"), LabelPassOptions)
	require.NoError(t, err)

	err = NewLabelPass(opts).Run(testutil.InstrumentedModule())
	require.Error(t, err)
	assert.Equal(t, ErrCodeSink, ErrorCode(err))
}

func TestLabelPass_DeclarationOnlyModule(t *testing.T) {
	m := testutil.Module("empty", testutil.Decl("ext"))
	pass := newLabelPass(t)
	require.NoError(t, pass.Run(m))
	assert.Empty(t, pass.Records())
}
