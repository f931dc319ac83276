package passes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch_MatchesEveryRegisteredPass(t *testing.T) {
	testCases := []struct {
		invocation string
		wantName   string
	}{
		{"ir-bb-label-pass", LabelPassName},
		{"ir-bb-label-pass<output_csv=table.csv>", LabelPassName},
		{"phase-analysis-pass<interval_length=100000>", AnalysisPassName},
		{"phase-bound-pass<" + boundParams + ">", BoundPassName},
	}

	for _, tc := range testCases {
		t.Run(tc.invocation, func(t *testing.T) {
			pass, matched, err := Dispatch(tc.invocation)
			require.NoError(t, err)
			require.True(t, matched)
			assert.Equal(t, tc.wantName, pass.Name())
		})
	}
}

func TestDispatch_UnknownNamePassesThrough(t *testing.T) {
	testCases := []string{
		"dead-code-elimination",
		"ir-bb-label-pass-v2",       // shared prefix is not a match
		"ir-bb-label-pass<oops",     // malformed bracketing is not a match
		"phase-analysis-passextras", // no bracket after base name
	}
	for _, invocation := range testCases {
		t.Run(invocation, func(t *testing.T) {
			pass, matched, err := Dispatch(invocation)
			assert.NoError(t, err)
			assert.False(t, matched)
			assert.Nil(t, pass)
		})
	}
}

func TestDispatch_BadParamsIsClaimedError(t *testing.T) {
	pass, matched, err := Dispatch("phase-analysis-pass<bogus=1>")
	require.Error(t, err)
	assert.True(t, matched)
	assert.Nil(t, pass)
	assert.True(t, IsOptionError(err))
}

func TestDispatch_MissingRequiredOption(t *testing.T) {
	// Bare analysis invocation cannot resolve interval_length.
	_, matched, err := Dispatch("phase-analysis-pass")
	require.Error(t, err)
	assert.True(t, matched)
	assert.True(t, IsOptionError(err))
}

func TestBuild(t *testing.T) {
	pass, err := Build(LabelPassName, "")
	require.NoError(t, err)
	assert.IsType(t, &LabelPass{}, pass)

	pass, err = Build(AnalysisPassName, "interval_length=10")
	require.NoError(t, err)
	assert.IsType(t, &AnalysisPass{}, pass)

	_, err = Build("no-such-pass", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown pass")

	_, err = Build(AnalysisPassName, "interval_length=10;bogus=1")
	require.Error(t, err)
	assert.True(t, IsOptionError(err))
}
