package seq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTextNormalizesAndComputesFeatures(t *testing.T) {
	s := FromText("seq1", "acgtacgt")
	assert.Equal(t, "ACGTACGT", string(s.Bases))
	assert.Equal(t, Linear, s.Topology)
}

func TestOverhangBluntChecks(t *testing.T) {
	blunt := Overhang{}
	assert.True(t, blunt.IsBlunt())
	assert.True(t, blunt.LeftBlunt())
	assert.True(t, blunt.RightBlunt())

	sticky := Overhang{Forward5: []byte("AATT")}
	assert.False(t, sticky.IsBlunt())
	assert.False(t, sticky.LeftBlunt())
	assert.True(t, sticky.RightBlunt())
	assert.Equal(t, [][]byte{[]byte("AATT")}, sticky.LeftOverhangs())
}

func TestSetCircularRejectsStickyEnds(t *testing.T) {
	s := FromText("seq1", "ACGTACGT")
	s.Overhang = Overhang{Forward5: []byte("AATT")}
	err := s.SetCircular(true)
	assert.Error(t, err)
	assert.Equal(t, Linear, s.Topology)

	s.Overhang = Overhang{}
	require.NoError(t, s.SetCircular(true))
	assert.True(t, s.IsCircular())
}

func TestGetRangeLinearBounds(t *testing.T) {
	s := FromText("seq1", "ACGTACGT")
	out, err := s.GetRange(2, 5)
	require.NoError(t, err)
	assert.Equal(t, "GTA", string(out))

	_, err = s.GetRange(0, 100)
	assert.Error(t, err)

	_, err = s.GetRange(5, 2)
	assert.Error(t, err)
}

func TestGetRangeCircularWraps(t *testing.T) {
	s := FromText("seq1", "ACGTACGT")
	require.NoError(t, s.SetCircular(true))

	out, err := s.GetRange(6, 2)
	require.NoError(t, err)
	assert.Equal(t, "GTAC", string(out))

	whole, err := s.GetRange(3, 3)
	require.NoError(t, err)
	assert.Equal(t, s.Len(), len(whole))
	assert.Equal(t, "TACGTACG", string(whole))
}

func TestGetRangeEmptySequence(t *testing.T) {
	s := Sequence{ID: "empty"}
	out, err := s.GetRange(0, 0)
	require.NoError(t, err)
	assert.Nil(t, out)

	_, err = s.GetRange(0, 1)
	assert.Error(t, err)
}

func TestLocationBoundsRangeAndJoin(t *testing.T) {
	r := Location{Kind: Range, Start: 10, End: 20}
	start, end, ok := r.Bounds()
	assert.True(t, ok)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	j := Location{Kind: Join, Sub: []Location{
		{Kind: Range, Start: 5, End: 10},
		{Kind: Range, Start: 50, End: 60},
	}}
	start, end, ok = j.Bounds()
	assert.True(t, ok)
	assert.Equal(t, 5, start)
	assert.Equal(t, 60, end)

	gap := Location{Kind: Gap, GapLen: 5}
	_, _, ok = gap.Bounds()
	assert.False(t, ok)
}

func TestLocationIsComplementMajorityVote(t *testing.T) {
	plain := Location{Kind: Range, Start: 0, End: 10}
	assert.False(t, plain.IsComplement())

	comp := Location{Kind: ComplementLoc, Sub: []Location{{Kind: Range, Start: 0, End: 10}}}
	assert.True(t, comp.IsComplement())

	mixedMajorityForward := Location{Kind: Join, Sub: []Location{
		{Kind: Range, Start: 0, End: 10},
		{Kind: Range, Start: 20, End: 30},
		{Kind: ComplementLoc, Sub: []Location{{Kind: Range, Start: 40, End: 50}}},
	}}
	assert.False(t, mixedMajorityForward.IsComplement())
}

func TestFeatureIsComputed(t *testing.T) {
	imported := Feature{Key: "gene"}
	assert.False(t, imported.IsComputed())

	computed := Feature{Key: "ORF", Qualifiers: map[string][]string{"gentle_generated": {"true"}}}
	assert.True(t, computed.IsComputed())
}

func TestUpdateComputedFeaturesIsIdempotent(t *testing.T) {
	s := FromText("seq1", "ATGAAATAGACGTACGTACGTACGTACGT")
	first := append([]Feature(nil), s.Features...)
	s.UpdateComputedFeatures()
	assert.Equal(t, first, s.Features)
}

func TestUpdateComputedFeaturesDropsStaleComputedOnly(t *testing.T) {
	s := FromText("seq1", "ACGTACGTACGTACGT")
	s.Features = append(s.Features, Feature{Key: "gene", Qualifiers: map[string][]string{"label": {"fakeA"}}})
	s.UpdateComputedFeatures()

	found := false
	for _, f := range s.Features {
		if f.Key == "gene" {
			found = true
		}
		assert.False(t, f.IsComputed() && f.Key != "ORF")
	}
	assert.True(t, found)
}

func TestCloneDeepCopiesSlices(t *testing.T) {
	s := FromText("seq1", "ACGTACGT")
	clone := s.Clone()
	clone.Bases[0] = 'T'
	assert.NotEqual(t, s.Bases[0], clone.Bases[0])
}

func TestFromGenBankRecordPreservesCircularAndFeatures(t *testing.T) {
	rec := GenBankRecord{
		ID:       "plasmid1",
		Name:     "plasmid1",
		Sequence: "acgtacgt",
		Circular: true,
		Features: []Feature{{Key: "gene", Location: Location{Kind: Range, Start: 0, End: 4}}},
	}
	s := FromGenBankRecord(rec)
	assert.True(t, s.IsCircular())
	found := false
	for _, f := range s.Features {
		if f.Key == "gene" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestFromFastaRecordAlwaysLinear(t *testing.T) {
	rec := FastaRecord{ID: "seq1", Sequence: "acgtacgt"}
	s := FromFastaRecord(rec)
	assert.False(t, s.IsCircular())
	assert.Empty(t, s.Description)
}
