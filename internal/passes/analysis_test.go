package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyztp/nugget/internal/ir"
	"github.com/studyztp/nugget/internal/testutil"
)

// labeledModule runs the labeling pass over the canonical fixture so the
// instrumentation passes have identity metadata to work with.
func labeledModule(t *testing.T) *ir.Module {
	t.Helper()
	m := testutil.InstrumentedModule()
	require.NoError(t, newLabelPass(t).Run(m))
	return m
}

func newAnalysisPass(t *testing.T, params string) *AnalysisPass {
	t.Helper()
	opts, err := ParseOptions(params, AnalysisPassOptions)
	require.NoError(t, err)
	return NewAnalysisPass(opts)
}

func TestAnalysisPass_InsertsHookBeforeEveryTerminator(t *testing.T) {
	m := labeledModule(t)
	pass := newAnalysisPass(t, "interval_length=100000")
	require.NoError(t, pass.Run(m))

	assert.Equal(t, 5, pass.Instrumented())
	assert.Empty(t, pass.Diagnostics())

	// warm's single block held 4 instructions when labeled; the hook call
	// lands immediately before the terminator and carries the live count,
	// the decoded ID, and the threshold.
	warm := m.Function("warm").Blocks[0]
	require.Len(t, warm.Instructions, 5)
	hook := warm.Instructions[3]
	assert.Equal(t, "call", hook.Op)
	assert.Equal(t, BBHookName, hook.Callee)
	assert.Equal(t, []uint64{4, 0, 100000}, hook.Args)
	assert.Equal(t, "ret", warm.Instructions[4].Op)

	// compute's if.then block: live count 5, ID 2.
	ifThen := m.Function("compute").Blocks[1]
	hook = ifThen.Instructions[len(ifThen.Instructions)-2]
	assert.Equal(t, BBHookName, hook.Callee)
	assert.Equal(t, []uint64{5, 2, 100000}, hook.Args)
}

func TestAnalysisPass_InitCarriesInstrumentedTotal(t *testing.T) {
	m := labeledModule(t)
	pass := newAnalysisPass(t, "interval_length=50")
	require.NoError(t, pass.Run(m))

	roi := m.Function("nugget_roi_begin_")
	exit, ok := roi.UniqueExitBlock()
	require.True(t, ok)

	init := exit.Instructions[len(exit.Instructions)-2]
	assert.Equal(t, InitHookName, init.Callee)
	assert.Equal(t, []uint64{5}, init.Args)
}

func TestAnalysisPass_SkipsUnlabeledBlocks(t *testing.T) {
	m := labeledModule(t)
	// Strip the metadata from one block; a transformation between labeling
	// and analysis may have replaced its terminator.
	ifElse := m.Function("compute").Blocks[2]
	ifElse.Terminator().Meta = nil

	pass := newAnalysisPass(t, "interval_length=100")
	require.NoError(t, pass.Run(m))

	assert.Equal(t, 4, pass.Instrumented())
	require.Len(t, pass.Diagnostics(), 1)
	assert.Contains(t, pass.Diagnostics()[0], "if.else")

	// The skipped block got no hook call.
	for _, ins := range ifElse.Instructions {
		assert.NotEqual(t, BBHookName, ins.Callee)
	}

	// The init total counts instrumented blocks, not labeled ones.
	exit, _ := m.Function("nugget_roi_begin_").UniqueExitBlock()
	init := exit.Instructions[len(exit.Instructions)-2]
	assert.Equal(t, []uint64{4}, init.Args)
}

func TestAnalysisPass_InvalidMetadataSkipsWithDiagnostic(t *testing.T) {
	m := labeledModule(t)
	m.Function("warm").Blocks[0].Terminator().SetMeta(ir.BlockIDKey, "not-a-number")

	pass := newAnalysisPass(t, "interval_length=100")
	require.NoError(t, pass.Run(m))

	assert.Equal(t, 4, pass.Instrumented())
	require.Len(t, pass.Diagnostics(), 1)
	assert.Contains(t, pass.Diagnostics()[0], "invalid")
}

func TestAnalysisPass_MissingHookIsFatal(t *testing.T) {
	m := testutil.Module("prog",
		testutil.Func("f", testutil.Block("", 1, "ret")),
		testutil.ROIBegin(),
		testutil.Decl(InitHookName),
	)
	require.NoError(t, newLabelPass(t).Run(m))

	err := newAnalysisPass(t, "interval_length=100").Run(m)
	require.Error(t, err)
	assert.Equal(t, ErrCodeHookNotFound, ErrorCode(err))
}

func TestAnalysisPass_NothingInstrumentedIsFatal(t *testing.T) {
	// Never labeled: every block lacks metadata.
	m := testutil.InstrumentedModule()

	err := newAnalysisPass(t, "interval_length=100").Run(m)
	require.Error(t, err)
	assert.Equal(t, ErrCodeNothingInstrumented, ErrorCode(err))
}

func TestAnalysisPass_MissingROIBeginIsFatal(t *testing.T) {
	m := testutil.Module("prog", testutil.Func("f", testutil.Block("", 1, "ret")))
	m.Functions = append(m.Functions, testutil.HookDecls()...)
	require.NoError(t, newLabelPass(t).Run(m))

	err := newAnalysisPass(t, "interval_length=100").Run(m)
	require.Error(t, err)
	assert.Equal(t, ErrCodeROIBeginNotFound, ErrorCode(err))
}

func TestAnalysisPass_MultiExitROIBeginIsFatal(t *testing.T) {
	roi := &ir.Function{
		Name: "nugget_roi_begin_",
		Blocks: []*ir.Block{
			testutil.Block("", 0, "condbr"),
			testutil.Block("a", 0, "ret"),
			testutil.Block("b", 0, "ret"),
		},
	}
	m := testutil.Module("prog", testutil.Func("f", testutil.Block("", 1, "ret")), roi)
	m.Functions = append(m.Functions, testutil.HookDecls()...)
	require.NoError(t, newLabelPass(t).Run(m))

	err := newAnalysisPass(t, "interval_length=100").Run(m)
	require.Error(t, err)
	assert.Equal(t, ErrCodeROIMultiExit, ErrorCode(err))
}

func TestAnalysisPass_BadIntervalLength(t *testing.T) {
	opts := OptionSet{"interval_length": "lots"}
	err := NewAnalysisPass(opts).Run(testutil.InstrumentedModule())
	require.Error(t, err)
	assert.True(t, IsOptionError(err))
}
