package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextOpIDMonotone(t *testing.T) {
	j := New()
	assert.Equal(t, "op-1", j.NextOpID())
	assert.Equal(t, "op-2", j.NextOpID())
	assert.Equal(t, "op-3", j.NextOpID())
}

func TestAppendAndEntries(t *testing.T) {
	j := New()
	id := j.NextOpID()
	j.Append("run-1", map[string]string{"tag": "Digest"}, OpResult{OpID: id, Created: []string{"frag_2"}})
	require := assert.New(t)
	require.Equal(1, j.Len())
	entries := j.Entries()
	require.Equal("run-1", entries[0].RunID)
	require.Equal(id, entries[0].Result.OpID)
}

func TestEntriesReturnsCopy(t *testing.T) {
	j := New()
	j.Append("run-1", nil, OpResult{OpID: "op-1"})
	entries := j.Entries()
	entries[0].RunID = "tampered"
	assert.Equal(t, "run-1", j.Entries()[0].RunID)
}
