package shell

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentlelab/gentle/internal/engine"
	"github.com/gentlelab/gentle/internal/enzyme"
	"github.com/gentlelab/gentle/internal/seq"
)

func newTestShell() *Shell {
	eng := engine.New(engine.NewProject(), enzyme.NewCatalog(nil))
	return New(eng)
}

func seedSequence() seq.Sequence {
	s := seq.Sequence{ID: "seed", Name: "seed", Bases: []byte("ACGTACGTACGT")}
	s.UpdateComputedFeatures()
	return s
}

func TestTokenizeQuoting(t *testing.T) {
	tokens, err := Tokenize(`op '{"tag":"Branch","input":"a b"}'`)
	assert.NoError(t, err)
	assert.Equal(t, []string{"op", `{"tag":"Branch","input":"a b"}`}, tokens)
}

func TestTokenizeDoubleQuoteEscapes(t *testing.T) {
	tokens, err := Tokenize(`save-project "a \"quoted\" path.json"`)
	assert.NoError(t, err)
	assert.Equal(t, []string{"save-project", `a "quoted" path.json`}, tokens)
}

func TestHelpAndCapabilities(t *testing.T) {
	s := newTestShell()
	resp, err := s.Execute("help")
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Message)
	assert.False(t, resp.StateChanged)

	resp, err = s.Execute("capabilities")
	assert.NoError(t, err)
	caps, ok := resp.Summary.(CapabilitiesInfo)
	assert.True(t, ok)
	assert.Contains(t, caps.Operations, "Digest")
}

func TestUnsupportedCommandsReportExternalCollaborator(t *testing.T) {
	s := newTestShell()
	_, err := s.Execute("render-svg a linear out.svg")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Unsupported")
}

func TestUnknownCommand(t *testing.T) {
	s := newTestShell()
	_, err := s.Execute("frobnicate")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidInput")
}

func TestOpBranchAndStateSummary(t *testing.T) {
	s := newTestShell()
	s.Engine.State.Sequences["seed"] = seedSequence()

	resp, err := s.Execute(`op '{"tag":"Branch","input":"seed","outputId":"copy"}'`)
	assert.NoError(t, err)
	assert.NotNil(t, resp.Result)
	assert.Contains(t, resp.Result.Created, "copy")
	assert.True(t, resp.StateChanged)

	resp, err = s.Execute("state-summary")
	assert.NoError(t, err)
	summary, ok := resp.Summary.(StateSummary)
	assert.True(t, ok)
	assert.Equal(t, 2, summary.SequenceCount)
}

func TestStateSummaryDiffReportsChange(t *testing.T) {
	s := newTestShell()
	s.Engine.State.Sequences["seed"] = seedSequence()

	before, err := s.Execute("state-summary")
	require.NoError(t, err)
	beforeJSON, err := json.Marshal(before.Summary)
	require.NoError(t, err)

	_, err = s.Execute(`op '{"tag":"Branch","input":"seed","outputId":"copy"}'`)
	require.NoError(t, err)

	resp, err := s.Execute(`state-summary --diff '` + string(beforeJSON) + `'`)
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "sequenceCount")
	assert.NotEqual(t, "(no change)", resp.Message)
}

func TestStateSummaryDiffRejectsBadArgs(t *testing.T) {
	s := newTestShell()
	_, err := s.Execute("state-summary --diff")
	assert.Error(t, err)
}
