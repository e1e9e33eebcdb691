package lineage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildSample() *Graph {
	g := New()
	g.AddNode(Node{NodeID: "n1", SeqID: "seq1", Origin: ImportedGenomic, CreatedAtMs: 1})
	g.AddNode(Node{NodeID: "n2", SeqID: "seq2", Origin: Derived, CreatedByOp: "op-1", CreatedAtMs: 2})
	g.AddNode(Node{NodeID: "n3", SeqID: "seq3", Origin: Derived, CreatedByOp: "op-1", CreatedAtMs: 2})
	g.AddNode(Node{NodeID: "n4", SeqID: "seq4", Origin: Derived, CreatedByOp: "op-2", CreatedAtMs: 3})
	g.AddEdge(Edge{FromNode: "n1", ToNode: "n2", OpID: "op-1", RunID: "run-1"})
	g.AddEdge(Edge{FromNode: "n1", ToNode: "n3", OpID: "op-1", RunID: "run-1"})
	g.AddEdge(Edge{FromNode: "n2", ToNode: "n4", OpID: "op-2", RunID: "run-1"})
	return g
}

func TestAncestors(t *testing.T) {
	g := buildSample()
	ancestors := g.Ancestors("seq4")
	require := assert.New(t)
	require.Len(ancestors, 2)
	var ids []string
	for _, n := range ancestors {
		ids = append(ids, n.SeqID)
	}
	require.ElementsMatch([]string{"seq1", "seq2"}, ids)
}

func TestDescendants(t *testing.T) {
	g := buildSample()
	descendants := g.Descendants("seq1")
	var ids []string
	for _, n := range descendants {
		ids = append(ids, n.SeqID)
	}
	assert.ElementsMatch(t, []string{"seq2", "seq3", "seq4"}, ids)
}

func TestSiblings(t *testing.T) {
	g := buildSample()
	siblings := g.Siblings("seq2")
	require := assert.New(t)
	require.Len(siblings, 1)
	require.Equal("seq3", siblings[0].SeqID)
}

func TestSiblingsNoneForSingleOutput(t *testing.T) {
	g := buildSample()
	assert.Empty(t, g.Siblings("seq4"))
}

func TestAncestorsUnknownSeqID(t *testing.T) {
	g := buildSample()
	assert.Nil(t, g.Ancestors("does-not-exist"))
}

func TestOriginJSONRoundTrip(t *testing.T) {
	data, err := Derived.MarshalJSON()
	assert.NoError(t, err)
	var o Origin
	assert.NoError(t, o.UnmarshalJSON(data))
	assert.Equal(t, Derived, o)
}
