package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComplementInvolution(t *testing.T) {
	for _, letter := range []byte("ACGTUWSMKRYBDHVN") {
		twice := Complement(Complement(letter))
		// U complements to A and A complements back to T, not U, so U is
		// excluded from the involution property; every other letter holds.
		if letter == 'U' {
			continue
		}
		assert.Equalf(t, letter, twice, "complement not involutive for %q", letter)
	}
}

func TestComplementPairs(t *testing.T) {
	pairs := map[byte]byte{
		'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C',
		'R': 'Y', 'Y': 'R', 'K': 'M', 'M': 'K',
		'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D',
		'S': 'S', 'W': 'W', 'N': 'N',
	}
	for in, want := range pairs {
		assert.Equal(t, want, Complement(in))
	}
}

func TestReverseComplementInvolution(t *testing.T) {
	seq := []byte("ATGGATCCGCATGGNNNRYKM")
	assert.Equal(t, seq, ReverseComplement(ReverseComplement(seq)))
}

func TestExpand(t *testing.T) {
	assert.Equal(t, []Letter{'A'}, Expand('A'))
	assert.ElementsMatch(t, []Letter{'A', 'G'}, Expand('R'))
	assert.ElementsMatch(t, []Letter{'A', 'C', 'G', 'T'}, Expand('N'))
}

func TestNormalize(t *testing.T) {
	got := Normalize([]byte("atg c\nxyz"))
	// x and z are not IUPAC letters and become N; y is the IUPAC code Y.
	assert.Equal(t, []byte("ATGCNYN"), got)
}

func TestNormalizeDNA(t *testing.T) {
	got := NormalizeDNA([]byte("augc"))
	assert.Equal(t, []byte("ATGC"), got)
}

func TestExpandPrimerCartesianProduct(t *testing.T) {
	variants := ExpandPrimer([]byte("AR"))
	assert.Len(t, variants, 2)
	assert.Equal(t, VariantCount([]byte("AR")), len(variants))
	asStrings := []string{string(variants[0]), string(variants[1])}
	assert.ElementsMatch(t, []string{"AA", "AG"}, asStrings)
}

func TestIntersects(t *testing.T) {
	assert.True(t, Intersects('N', 'A'))
	assert.True(t, Intersects('R', 'A'))
	assert.False(t, Intersects('R', 'C'))
}
