package computed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindORFs_simpleForward(t *testing.T) {
	// ATG + 9 codons + stop = 33 bp, frame 1.
	bases := []byte("ATG" + "AAAAAAAAA" + "AAAAAAAAA" + "AAAAAAAAA" + "TAA")
	orfs := FindORFs(bases, false)
	require := assert.New(t)
	require.Len(orfs, 1)
	require.Equal(0, orfs[0].Start)
	require.Equal(len(bases), orfs[0].End)
	require.Equal(1, orfs[0].Frame)
}

func TestFindORFs_tooShortDropped(t *testing.T) {
	bases := []byte("ATGAAATAA") // 9 bp, under the 30 bp floor
	assert.Empty(t, FindORFs(bases, false))
}

func TestFindORFs_reverseStrand(t *testing.T) {
	fwd := []byte("ATG" + "AAAAAAAAA" + "AAAAAAAAA" + "AAAAAAAAA" + "TAA")
	// Build a sequence whose reverse complement is fwd, i.e. bases ==
	// reverse_complement(fwd); the forward-strand scan of bases finds
	// nothing, but FindORFs must recover the frame via its reverse-strand
	// pass.
	bases := make([]byte, len(fwd))
	comp := map[byte]byte{'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C'}
	for i, b := range fwd {
		bases[len(fwd)-1-i] = comp[b]
	}
	orfs := FindORFs(bases, false)
	require := assert.New(t)
	require.Len(orfs, 1)
	require.Negative(orfs[0].Frame)
}

func TestFindORFs_circularOriginCrossing(t *testing.T) {
	// Place the back half of an ORF at the tail and the front half (ATG) is
	// actually whole here for simplicity: rotate a valid ORF so it starts
	// near the end of the sequence and wraps.
	orf := []byte("ATG" + "AAAAAAAAA" + "AAAAAAAAA" + "AAAAAAAAA" + "TAA") // 33bp
	tailLen := 10
	bases := append(append([]byte{}, orf[len(orf)-tailLen:]...), orf[:len(orf)-tailLen]...)
	linear := FindORFs(bases, false)
	circular := FindORFs(bases, true)
	assert.Empty(t, linear)
	assert.NotEmpty(t, circular)
}
