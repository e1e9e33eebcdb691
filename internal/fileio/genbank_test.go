package fileio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gentlelab/gentle/internal/seq"
)

const sampleGenBank = `LOCUS       sample                    40 bp    DNA     circular SYN 01-JAN-1980
DEFINITION  a tiny test plasmid.
FEATURES             Location/Qualifiers
     gene            1..10
                     /gene="fakeA"
ORIGIN
        1 acgtacgtac gtacgtacgt acgtacgtac gtacgtacgt
//
`

func TestParseGenBankBasic(t *testing.T) {
	recs, err := ParseGenBank([]byte(sampleGenBank))
	assert.NoError(t, err)
	assert.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, "sample", rec.ID)
	assert.True(t, rec.Circular)
	assert.Equal(t, "acgtacgtacgtacgtacgtacgtacgtacgtacgtacgt", rec.Sequence)
	assert.Len(t, rec.Features, 1)
	assert.Equal(t, "gene", rec.Features[0].Key)
	assert.Equal(t, seq.Range, rec.Features[0].Location.Kind)
	assert.Equal(t, 0, rec.Features[0].Location.Start)
	assert.Equal(t, 10, rec.Features[0].Location.End)
	assert.Equal(t, []string{"fakeA"}, rec.Features[0].Qualifiers["gene"])
}

func TestGenBankRoundTrip(t *testing.T) {
	recs, err := ParseGenBank([]byte(sampleGenBank))
	assert.NoError(t, err)
	s := seq.FromGenBankRecord(recs[0])

	built, err := BuildGenBank(s)
	assert.NoError(t, err)

	recs2, err := ParseGenBank(built)
	assert.NoError(t, err)
	assert.Len(t, recs2, 1)
	assert.Equal(t, recs[0].Sequence, recs2[0].Sequence)
	assert.Equal(t, recs[0].Circular, recs2[0].Circular)
	assert.Len(t, recs2[0].Features, 1)
	assert.Equal(t, recs[0].Features[0].Key, recs2[0].Features[0].Key)
}

func TestComplementJoinLocationRoundTrip(t *testing.T) {
	loc := seq.Location{
		Kind: seq.ComplementLoc,
		Sub: []seq.Location{{
			Kind: seq.Join,
			Sub: []seq.Location{
				{Kind: seq.Range, Start: 0, End: 5},
				{Kind: seq.Range, Start: 10, End: 15},
			},
		}},
	}
	gbLoc := toGenbankLocation(loc)
	assert.True(t, gbLoc.Complement)
	assert.True(t, gbLoc.Join)
	assert.Len(t, gbLoc.SubLocations, 2)

	back := fromGenbankLocation(gbLoc)
	assert.Equal(t, seq.ComplementLoc, back.Kind)
	assert.Equal(t, seq.Join, back.Sub[0].Kind)
	assert.Equal(t, 0, back.Sub[0].Sub[0].Start)
	assert.Equal(t, 15, back.Sub[0].Sub[1].End)
}
