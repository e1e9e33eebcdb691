package rebase

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDump = `<1>BamHI
<2>
<3>G^GATCC
<4>
<5>Bacillus amyloliquefaciens H

<1>AarI
<2>
<3>CACCTGC(4/8)
<4>
<5>Arthrobacter aurescens SS2-322
`

func TestParse(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleDump))
	require.NoError(t, err)
	assert.Contains(t, records, "BamHI")
	assert.Equal(t, "G^GATCC", records["BamHI"].RecognitionSequence)
	assert.Equal(t, "Arthrobacter aurescens SS2-322", records["AarI"].MicroOrganism)
}

func TestParse_empty(t *testing.T) {
	_, err := Parse(strings.NewReader("nothing useful here"))
	assert.Error(t, err)
}

func TestParse_readError(t *testing.T) {
	readErr := errors.New("boom")
	old := readAllFn
	readAllFn = func(r io.Reader) ([]byte, error) {
		return nil, readErr
	}
	defer func() { readAllFn = old }()
	_, err := Parse(strings.NewReader(sampleDump))
	assert.EqualError(t, err, readErr.Error())
}

func TestToRestrictionEnzyme_caretNotation(t *testing.T) {
	e, ok := ToRestrictionEnzyme(Record{Name: "BamHI", RecognitionSequence: "G^GATCC"})
	require.True(t, ok)
	assert.Equal(t, "GGATCC", e.RecognitionSite)
	assert.Equal(t, 1, e.CutOffset)
	assert.Equal(t, 4, e.OverlapOffset)
}

func TestToRestrictionEnzyme_parenNotation(t *testing.T) {
	e, ok := ToRestrictionEnzyme(Record{Name: "AarI", RecognitionSequence: "CACCTGC(4/8)"})
	require.True(t, ok)
	assert.Equal(t, "CACCTGC", e.RecognitionSite)
}

func TestToRestrictionEnzyme_unknown(t *testing.T) {
	_, ok := ToRestrictionEnzyme(Record{Name: "Mystery", RecognitionSequence: ""})
	assert.False(t, ok)
}

func TestExport(t *testing.T) {
	records, err := Parse(strings.NewReader(sampleDump))
	require.NoError(t, err)
	out, err := Export(ConvertAll(records))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"type": "restriction"`)
	assert.Contains(t, string(out), `"BamHI"`)
}
