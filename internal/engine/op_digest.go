package engine

import (
	"sort"
	"time"

	"lukechampine.com/blake3"

	"github.com/gentlelab/gentle/internal/alphabet"
	"github.com/gentlelab/gentle/internal/container"
	"github.com/gentlelab/gentle/internal/enzyme"
	"github.com/gentlelab/gentle/internal/lineage"
	"github.com/gentlelab/gentle/internal/seq"
)

const digestWallClock = 750 * time.Millisecond

// digestFragment is a piece of DNA mid-digest: its double-stranded core plus
// the single-stranded overhangs (if any) hanging off each end. leftOverhang
// is the literal top-strand bases released by the cut that created this
// fragment's left end (seq.Overhang.Forward5's counterpart); rightOverhang
// is the complementary bottom-strand bases at its right end
// (seq.Overhang.Reverse5's counterpart). Concatenating frag[0].bases, then
// frag[i].leftOverhang+frag[i].bases for i>0, reconstructs the original
// top-strand string exactly.
type digestFragment struct {
	bases         []byte
	leftOverhang  []byte
	rightOverhang []byte
}

func complementBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	for i, c := range b {
		out[i] = alphabet.Complement(c)
	}
	return out
}

// linearizeCircular applies a single cut to a still-uncut circular molecule,
// producing the one linear fragment that results.
func linearizeCircular(bases []byte, topCut, overlap int) digestFragment {
	n := len(bases)
	bottomCut := topCut + overlap
	work := append(append([]byte{}, bases...), bases...)
	core := append([]byte(nil), work[bottomCut:topCut+n]...)
	overhang := append([]byte(nil), work[topCut:bottomCut]...)
	return digestFragment{bases: core, leftOverhang: overhang, rightOverhang: complementBytes(overhang)}
}

// cutLinear splits a linear fragment at topCut, distributing its existing
// outer overhangs to whichever side keeps that end.
func cutLinear(frag digestFragment, topCut, overlap int) (digestFragment, digestFragment) {
	bottomCut := topCut + overlap
	overhang := append([]byte(nil), frag.bases[topCut:bottomCut]...)
	left := digestFragment{
		bases:         append([]byte(nil), frag.bases[:topCut]...),
		leftOverhang:  frag.leftOverhang,
		rightOverhang: complementBytes(overhang),
	}
	right := digestFragment{
		bases:         append([]byte(nil), frag.bases[bottomCut:]...),
		leftOverhang:  overhang,
		rightOverhang: frag.rightOverhang,
	}
	return left, right
}

func hashFragmentState(frags []digestFragment) string {
	keys := make([]string, len(frags))
	for i, f := range frags {
		keys[i] = string(f.leftOverhang) + "\x00" + string(f.bases) + "\x00" + string(f.rightOverhang)
	}
	sort.Strings(keys)
	var joined []byte
	for _, k := range keys {
		joined = append(joined, k...)
		joined = append(joined, '\x01')
	}
	sum := blake3.Sum256(joined)
	return string(sum[:])
}

// runDigestForEnzyme repeatedly cuts at the first site found for e until
// none remain, bounded per spec.md §4.4's five digest guards.
func runDigestForEnzyme(frags []digestFragment, startCircular bool, e enzyme.RestrictionEnzyme, maxFragments int) ([]digestFragment, error) {
	roundCap := 1024
	if maxFragments < roundCap {
		roundCap = maxFragments
	}
	deadline := time.Now().Add(digestWallClock)
	seen := map[string]bool{}
	prevCount := -1
	stillCircular := startCircular

	for round := 0; ; round++ {
		if round >= roundCap {
			return nil, invalidInput("Digest: enzyme %s exceeded the %d-round cap", e.Name, roundCap)
		}
		if time.Now().After(deadline) {
			return nil, invalidInput("Digest: enzyme %s exceeded its 750ms cutting budget", e.Name)
		}

		cutIndex := -1
		var site enzyme.RestrictionEnzymeSite
		for i, f := range frags {
			circularScan := stillCircular && len(frags) == 1 && i == 0
			sites := enzyme.FindSites(f.bases, circularScan, e, 1<<20)
			if len(sites) > 0 {
				cutIndex = i
				site = sites[0]
				break
			}
		}
		if cutIndex < 0 {
			break
		}

		var next []digestFragment
		next = append(next, frags[:cutIndex]...)
		if stillCircular && cutIndex == 0 && len(frags) == 1 {
			next = append(next, linearizeCircular(frags[cutIndex].bases, site.Cut, e.OverlapOffset))
			stillCircular = false
		} else {
			left, right := cutLinear(frags[cutIndex], site.Cut, e.OverlapOffset)
			next = append(next, left, right)
		}
		next = append(next, frags[cutIndex+1:]...)
		frags = next

		if len(frags) > maxFragments {
			return nil, invalidInput("Digest: fragment count %d exceeds max_fragments_per_container (%d)", len(frags), maxFragments)
		}
		if round >= 1 && len(frags) <= prevCount {
			return nil, invalidInput("Digest: enzyme %s made no progress after its first round", e.Name)
		}
		prevCount = len(frags)

		state := hashFragmentState(frags)
		if seen[state] {
			return nil, invalidInput("Digest: enzyme %s revisited a prior fragment state", e.Name)
		}
		seen[state] = true
	}
	return frags, nil
}

// applyDigest implements Digest per spec.md §4.4: clones the input, cuts it
// with every requested enzyme in turn, and registers each resulting
// fragment as a new sequence in a fresh Digest container. Unknown enzyme
// names are warnings unless none of the requested names are known.
func (e *Engine) applyDigest(runID string, op *DigestOp) (OpResult, error) {
	input, err := e.State.getSequence(op.Input)
	if err != nil {
		return OpResult{}, err
	}

	found, missing := e.catalog.ByName(op.Enzymes)
	if len(found) == 0 {
		return OpResult{}, invalidInput("Digest: none of the requested enzymes (%v) are in the catalog", op.Enzymes)
	}

	maxFragments := e.State.Parameters.MaxFragmentsPerContainer
	seed := digestFragment{bases: append([]byte(nil), input.Bases...)}
	if !input.IsCircular() {
		if left := input.Overhang.LeftOverhangs(); len(left) > 0 {
			seed.leftOverhang = left[0]
		}
		if right := input.Overhang.RightOverhangs(); len(right) > 0 {
			seed.rightOverhang = right[0]
		}
	}
	frags := []digestFragment{seed}

	circular := input.IsCircular()
	for _, enz := range found {
		var derr error
		frags, derr = runDigestForEnzyme(frags, circular, enz, maxFragments)
		if derr != nil {
			return OpResult{}, derr
		}
		circular = false
	}

	if len(frags) == 0 {
		return OpResult{}, internalErr("Digest: produced zero fragments")
	}

	prefix := op.OutputPrefix
	if prefix == "" {
		prefix = op.Input + "_frag"
	}

	opID := e.Journal.NextOpID()
	var created []string
	for _, f := range frags {
		newID := e.State.disambiguate(prefix)
		out := seq.Sequence{
			ID:       newID,
			Name:     newID,
			Bases:    f.bases,
			Topology: seq.Linear,
			Overhang: seq.Overhang{Forward5: f.leftOverhang, Reverse5: f.rightOverhang},
		}
		out.UpdateComputedFeatures()
		e.State.putSequence(out)
		e.State.recordDerivation(newID, lineage.Derived, opID, runID, []string{op.Input}, clockFn())
		created = append(created, newID)
	}

	result := OpResult{OpID: opID, Created: created}
	if len(missing) > 0 {
		result.Warnings = append(result.Warnings, "Digest: unknown enzymes ignored: "+joinNames(missing))
	}

	if len(created) > 1 {
		if _, err := e.State.Containers.Create(container.KindDigest, created, maxFragments); err != nil {
			return OpResult{}, invalidInput("%v", err)
		}
	}

	return result, nil
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}
