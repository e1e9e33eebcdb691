/*
Package computed derives the caches Sequence.UpdateComputedFeatures
refreshes: open reading frames today, with room for the GC-content and
methylation-site finders spec.md §2's ComputedFeatures component names.

ORF search is grounded on the teacher's codon-table walk in
synthesis/codon (start/stop codon recognition), generalized here to a
six-frame scan (three forward, three reverse, via alphabet.ReverseComplement)
with circular origin-crossing search, which the teacher's linear-only
codon walker doesn't need.
*/
package computed

import "github.com/gentlelab/gentle/internal/alphabet"

// ORF is a single open reading frame: its half-open [Start, End) span on
// the sequence's forward-strand coordinate system (when the frame crosses a
// circular origin, End exceeds Len() for a forward-strand ORF and Start is
// negative for a reverse-strand one), and its reading frame, one of
// {-3,-2,-1,1,2,3} (spec.md §3).
type ORF struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Frame int `json:"frame"`
}

const minORFLen = 30

var stopCodons = map[string]bool{"TAA": true, "TAG": true, "TGA": true}

// FindORFs scans all six reading frames for ATG-to-stop runs of at least
// minORFLen bases. Circular sequences are searched on a doubled copy so a
// frame may cross the origin once; any hit entirely contained in the
// duplicated tail is a rotation of one already found and is dropped.
func FindORFs(bases []byte, circular bool) []ORF {
	var orfs []ORF
	orfs = append(orfs, scanStrand(bases, circular, 1)...)

	rc := alphabet.ReverseComplement(bases)
	for _, orf := range scanStrand(rc, circular, 1) {
		n := len(bases)
		orfs = append(orfs, ORF{
			Start: n - orf.End,
			End:   n - orf.Start,
			Frame: -orf.Frame,
		})
	}
	return orfs
}

// scanStrand finds every forward-strand ORF (frames 1, 2, 3) in bases.
func scanStrand(bases []byte, circular bool, strandSign int) []ORF {
	n := len(bases)
	if n == 0 {
		return nil
	}

	search := bases
	if circular {
		search = append(append([]byte{}, bases...), bases...)
	}

	var orfs []ORF
	for frame := 0; frame < 3; frame++ {
		start := -1
		limit := len(search) - 2
		for i := frame; i < limit; i += 3 {
			if start < 0 {
				if i >= n {
					break
				}
				if string(search[i:i+3]) == "ATG" {
					start = i
				}
				continue
			}
			codon := string(search[i : i+3])
			if stopCodons[codon] {
				end := i + 3
				if end-start >= minORFLen && start < n {
					orfs = append(orfs, ORF{Start: start, End: end, Frame: strandSign * (frame + 1)})
				}
				start = -1
				if i >= n {
					break
				}
			}
		}
	}
	return orfs
}
