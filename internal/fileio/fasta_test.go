package fileio

import (
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"

	"github.com/gentlelab/gentle/internal/seq"
)

// assertSequenceRoundTrip fails with a human-readable diff (rather than a
// bare "not equal") when a round trip through a file format mangles bases.
func assertSequenceRoundTrip(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(want, got, false)
	t.Fatalf("sequence changed across round trip:\n%s", dmp.DiffPrettyText(diffs))
}

func TestParseFastaSplitsHeader(t *testing.T) {
	data := []byte(">seq1 a test record\nACGTACGT\nACGT\n>seq2\nTTTT\n")
	recs, err := ParseFasta(data)
	assert.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, "seq1", recs[0].ID)
	assert.Equal(t, "a test record", recs[0].Description)
	assert.Equal(t, "ACGTACGTACGT", recs[0].Sequence)
	assert.Equal(t, "seq2", recs[1].ID)
	assert.Equal(t, "", recs[1].Description)
}

func TestBuildFastaWraps80Columns(t *testing.T) {
	bases := strings.Repeat("A", 200)
	s := seq.Sequence{ID: "long", Bases: []byte(bases)}
	out := string(BuildFasta(s))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, ">long", lines[0])
	for _, line := range lines[1:] {
		assert.LessOrEqual(t, len(line), fastaWrapColumn)
	}

	var rejoined strings.Builder
	for _, line := range lines[1:] {
		rejoined.WriteString(line)
	}
	assert.Equal(t, bases, rejoined.String())
}

func TestFastaRoundTrip(t *testing.T) {
	data := []byte(">roundtrip desc here\nACGTACGTACGTACGTACGT\n")
	recs, err := ParseFasta(data)
	assert.NoError(t, err)
	s := seq.FromFastaRecord(recs[0])
	s.Description = recs[0].Description

	rebuilt := BuildFasta(s)
	recs2, err := ParseFasta(rebuilt)
	assert.NoError(t, err)
	assert.Equal(t, recs[0].ID, recs2[0].ID)
	assertSequenceRoundTrip(t, recs[0].Sequence, recs2[0].Sequence)
}
