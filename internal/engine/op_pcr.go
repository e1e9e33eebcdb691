package engine

import (
	"index/suffixarray"
	"sort"

	"github.com/gentlelab/gentle/internal/alphabet"
	"github.com/gentlelab/gentle/internal/container"
	"github.com/gentlelab/gentle/internal/lineage"
	"github.com/gentlelab/gentle/internal/seq"
)

// substringPositions returns every start offset of pattern in text, grounded
// on pcr.SimulateSimple's use of index/suffixarray for exact-match lookup.
func substringPositions(text, pattern []byte) []int {
	if len(pattern) == 0 || len(pattern) > len(text) {
		return nil
	}
	idx := suffixarray.New(text)
	positions := idx.Lookup(pattern, -1)
	sort.Ints(positions)
	return positions
}

// applyPcr implements Pcr per spec.md §4.4: exact-substring search for the
// forward primer, exact reverse-complement search for the reverse primer,
// on linear templates only.
func (e *Engine) applyPcr(runID string, op *PcrOp) (OpResult, error) {
	input, err := e.State.getSequence(op.Template)
	if err != nil {
		return OpResult{}, err
	}
	if input.IsCircular() {
		return OpResult{}, unsupported("Pcr: circular templates are not supported")
	}

	template := input.Bases
	forward := alphabet.NormalizeDNA([]byte(op.Forward))
	reverse := alphabet.NormalizeDNA([]byte(op.Reverse))

	fwdPositions := substringPositions(template, forward)
	revPositions := substringPositions(template, alphabet.ReverseComplement(reverse))

	type span struct{ start, end int }
	seen := map[span]bool{}
	var amplicons []span
	for _, f := range fwdPositions {
		for _, r := range revPositions {
			if r < f {
				continue
			}
			end := r + len(reverse)
			if end > len(template) {
				continue
			}
			sp := span{f, end}
			if seen[sp] {
				continue
			}
			seen[sp] = true
			amplicons = append(amplicons, sp)
		}
	}
	sort.Slice(amplicons, func(i, j int) bool {
		if amplicons[i].start != amplicons[j].start {
			return amplicons[i].start < amplicons[j].start
		}
		return amplicons[i].end < amplicons[j].end
	})

	if len(amplicons) == 0 {
		return OpResult{}, invalidInput("Pcr: no amplicons found")
	}
	if (op.Unique || op.OutputID != "") && len(amplicons) != 1 {
		return OpResult{}, invalidInput("Pcr: unique/output_id require exactly one amplicon, got %d", len(amplicons))
	}
	if len(amplicons) > e.State.Parameters.MaxFragmentsPerContainer {
		return OpResult{}, invalidInput("Pcr: %d amplicons exceeds max_fragments_per_container (%d)", len(amplicons), e.State.Parameters.MaxFragmentsPerContainer)
	}

	opID := e.Journal.NextOpID()
	var created []string
	for _, a := range amplicons {
		newID := op.OutputID
		if newID == "" {
			newID = e.State.disambiguate(op.Template + "_amplicon")
		} else if _, exists := e.State.Sequences[newID]; exists {
			return OpResult{}, invalidInput("output id %q already exists", newID)
		}
		out := seq.Sequence{ID: newID, Name: newID, Bases: append([]byte(nil), template[a.start:a.end]...), Topology: seq.Linear}
		out.UpdateComputedFeatures()
		e.State.putSequence(out)
		e.State.recordDerivation(newID, lineage.Derived, opID, runID, []string{op.Template}, clockFn())
		created = append(created, newID)
	}

	result := OpResult{OpID: opID, Created: created}
	if len(created) > 1 {
		if _, err := e.State.Containers.Create(container.KindPcr, created, e.State.Parameters.MaxFragmentsPerContainer); err != nil {
			return OpResult{}, invalidInput("%v", err)
		}
	}
	return result, nil
}

const (
	lcgMultiplier  uint64 = 6364136223846793005
	lcgIncrement   uint64 = 1442695040888963407
	lcgDefaultSeed uint64 = 0x9E3779B97F4A7C15
)

// expandOptions returns, for each position of primer, the concrete bases an
// IUPAC code there may stand for.
func expandOptions(primer []byte) [][]byte {
	options := make([][]byte, len(primer))
	for i, letter := range primer {
		opts := alphabet.Expand(letter)
		if len(opts) == 0 {
			opts = []byte{letter}
		}
		options[i] = opts
	}
	return options
}

// variantAt decodes the index-th variant of a mixed-radix digit expansion,
// matching ExpandPrimer's odometer order (last position is least
// significant) without materialising the whole Cartesian product.
func variantAt(options [][]byte, index int) []byte {
	out := make([]byte, len(options))
	for i := len(options) - 1; i >= 0; i-- {
		radix := len(options[i])
		out[i] = options[i][index%radix]
		index /= radix
	}
	return out
}

// sampleIndices draws distinct indices in [0,total) using the seeded linear
// congruential generator spec.md §4.4 names, until min(maxVariants,total)
// are collected, then returns them sorted ascending.
func sampleIndices(total, maxVariants int, seed uint64) []int {
	if seed == 0 {
		seed = lcgDefaultSeed
	}
	want := maxVariants
	if want > total {
		want = total
	}
	if want <= 0 {
		return nil
	}
	seen := make(map[int]bool, want)
	var out []int
	state := seed
	limit := total * 8
	if limit < 10000 {
		limit = 10000
	}
	for i := 0; len(out) < want && i < limit; i++ {
		state = state*lcgMultiplier + lcgIncrement
		idx := int(state % uint64(total))
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}

// expandPrimerVariants implements PrimerSpec's library_mode per spec.md
// §4.4: Enumerate materialises the full Cartesian product (failing over
// max_variants), Sample draws a bounded distinct subset via the LCG.
func expandPrimerVariants(spec PrimerSpec) ([][]byte, error) {
	base := alphabet.NormalizeDNA([]byte(spec.Sequence))
	total := alphabet.VariantCount(base)

	switch spec.LibraryMode {
	case LibrarySample:
		options := expandOptions(base)
		idxs := sampleIndices(total, spec.MaxVariants, spec.SampleSeed)
		variants := make([][]byte, len(idxs))
		for i, idx := range idxs {
			variants[i] = variantAt(options, idx)
		}
		return variants, nil
	case LibraryEnumerate, "":
		if total > spec.MaxVariants {
			return nil, invalidInput("primer %q expands to %d variants, exceeds max_variants (%d)", spec.Sequence, total, spec.MaxVariants)
		}
		return alphabet.ExpandPrimer(base), nil
	default:
		return nil, invalidInput("unknown library_mode %q", spec.LibraryMode)
	}
}

// findAnnealSites returns every position where pattern aligns against
// template with at most maxMismatches mismatches, none of which fall within
// the first exactPrefix or last exactSuffix positions of pattern.
func findAnnealSites(template, pattern []byte, maxMismatches, exactPrefix, exactSuffix int) []int {
	var sites []int
	n, m := len(template), len(pattern)
	for pos := 0; pos+m <= n; pos++ {
		mismatches := 0
		ok := true
		for i := 0; i < m; i++ {
			if alphabet.Intersects(template[pos+i], pattern[i]) {
				continue
			}
			if i < exactPrefix || i >= m-exactSuffix {
				ok = false
				break
			}
			mismatches++
			if mismatches > maxMismatches {
				ok = false
				break
			}
		}
		if ok {
			sites = append(sites, pos)
		}
	}
	return sites
}

// primerHit is one way a PrimerSpec variant anneals to the template. anneal
// is always expressed in top-strand/template orientation (for a reverse
// primer this is already the reverse-complement of its own 3'→5' anneal
// region), so anneal[p-pos] is directly comparable against
// Mutation.AltBase.
type primerHit struct {
	full    []byte
	anneal  []byte
	pos     int
	annealLen int
}

func findPrimerHits(template []byte, spec PrimerSpec, reverse bool) ([]primerHit, error) {
	variants, err := expandPrimerVariants(spec)
	if err != nil {
		return nil, err
	}
	if spec.AnnealLen <= 0 || spec.AnnealLen > len(spec.Sequence) {
		return nil, invalidInput("primer %q: anneal_len %d out of range", spec.Sequence, spec.AnnealLen)
	}

	var hits []primerHit
	for _, v := range variants {
		anneal := v[len(v)-spec.AnnealLen:]
		searchPattern := anneal
		exactPrefix, exactSuffix := 0, spec.Require3PrimeExactBases
		if reverse {
			searchPattern = alphabet.ReverseComplement(anneal)
			exactPrefix, exactSuffix = spec.Require3PrimeExactBases, 0
		}
		for _, pos := range findAnnealSites(template, searchPattern, spec.MaxMismatches, exactPrefix, exactSuffix) {
			hits = append(hits, primerHit{full: v, anneal: searchPattern, pos: pos, annealLen: len(searchPattern)})
		}
	}
	return hits, nil
}

// pcrAdvancedCandidate is one (fwd_variant, rev_variant, fwd_site, rev_site)
// quadruple, pre-deduplication, carrying enough to evaluate
// PcrMutagenesis's per-mutation realization rule.
type pcrAdvancedCandidate struct {
	fwd, rev primerHit
	bases    []byte
}

func pcrAdvancedCandidates(template []byte, forward, reverse PrimerSpec) ([]pcrAdvancedCandidate, error) {
	fwdHits, err := findPrimerHits(template, forward, false)
	if err != nil {
		return nil, err
	}
	revHits, err := findPrimerHits(template, reverse, true)
	if err != nil {
		return nil, err
	}

	var out []pcrAdvancedCandidate
	for _, f := range fwdHits {
		fwdEnd := f.pos + f.annealLen
		for _, r := range revHits {
			if r.pos < fwdEnd {
				continue
			}
			middle := template[fwdEnd:r.pos]
			bases := append(append(append([]byte(nil), f.full...), middle...), alphabet.ReverseComplement(r.full)...)
			out = append(out, pcrAdvancedCandidate{fwd: f, rev: r, bases: bases})
		}
	}
	return out, nil
}

// applyPcrAdvanced implements PcrAdvanced per spec.md §4.4.
func (e *Engine) applyPcrAdvanced(runID string, op *PcrAdvancedOp) (OpResult, error) {
	input, err := e.State.getSequence(op.Template)
	if err != nil {
		return OpResult{}, err
	}
	if input.IsCircular() {
		return OpResult{}, unsupported("PcrAdvanced: circular templates are not supported")
	}

	candidates, err := pcrAdvancedCandidates(input.Bases, op.Forward, op.Reverse)
	if err != nil {
		return OpResult{}, err
	}

	seen := map[string]bool{}
	var amplicons [][]byte
	for _, c := range candidates {
		key := string(c.bases)
		if seen[key] {
			continue
		}
		seen[key] = true
		amplicons = append(amplicons, c.bases)
	}

	return e.commitPcrAmplicons(runID, op.Template, amplicons, op.OutputPrefix, op.OutputID, op.Unique, "PcrAdvanced")
}

// applyPcrMutagenesis implements PcrMutagenesis per spec.md §4.4: extends
// PcrAdvanced, keeping only candidates that realize the requested
// mutation(s) through the primer that covers each mutated position.
func (e *Engine) applyPcrMutagenesis(runID string, op *PcrMutagenesisOp) (OpResult, error) {
	input, err := e.State.getSequence(op.Template)
	if err != nil {
		return OpResult{}, err
	}
	if input.IsCircular() {
		return OpResult{}, unsupported("PcrMutagenesis: circular templates are not supported")
	}
	template := input.Bases

	for _, mut := range op.Mutations {
		if mut.Position < 0 || mut.Position >= len(template) {
			return OpResult{}, invalidInput("mutation position %d out of range", mut.Position)
		}
		if template[mut.Position] != mut.RefBase {
			return OpResult{}, invalidInput("mutation at %d expects ref_base %q, template has %q", mut.Position, mut.RefBase, template[mut.Position])
		}
	}

	candidates, err := pcrAdvancedCandidates(template, op.Forward, op.Reverse)
	if err != nil {
		return OpResult{}, err
	}

	realizes := func(c pcrAdvancedCandidate, mut Mutation) bool {
		if mut.Position >= c.fwd.pos && mut.Position < c.fwd.pos+c.fwd.annealLen {
			return c.fwd.anneal[mut.Position-c.fwd.pos] == mut.AltBase
		}
		if mut.Position >= c.rev.pos && mut.Position < c.rev.pos+c.rev.annealLen {
			return c.rev.anneal[mut.Position-c.rev.pos] == mut.AltBase
		}
		return false
	}

	seen := map[string]bool{}
	var amplicons [][]byte
	for _, c := range candidates {
		realized := 0
		for _, mut := range op.Mutations {
			if realizes(c, mut) {
				realized++
			}
		}
		if len(op.Mutations) > 0 {
			if op.RequireAllMutations && realized != len(op.Mutations) {
				continue
			}
			if !op.RequireAllMutations && realized == 0 {
				continue
			}
		}
		key := string(c.bases)
		if seen[key] {
			continue
		}
		seen[key] = true
		amplicons = append(amplicons, c.bases)
	}

	return e.commitPcrAmplicons(runID, op.Template, amplicons, op.OutputPrefix, op.OutputID, op.Unique, "PcrMutagenesis")
}

func (e *Engine) commitPcrAmplicons(runID, templateID string, amplicons [][]byte, outputPrefix, outputID string, unique bool, opName string) (OpResult, error) {
	if len(amplicons) == 0 {
		return OpResult{}, invalidInput("%s: no amplicons found", opName)
	}
	if (unique || outputID != "") && len(amplicons) != 1 {
		return OpResult{}, invalidInput("%s: unique/output_id require exactly one amplicon, got %d", opName, len(amplicons))
	}
	if len(amplicons) > e.State.Parameters.MaxFragmentsPerContainer {
		return OpResult{}, invalidInput("%s: %d amplicons exceeds max_fragments_per_container (%d)", opName, len(amplicons), e.State.Parameters.MaxFragmentsPerContainer)
	}

	prefix := outputPrefix
	if prefix == "" {
		prefix = templateID + "_amplicon"
	}

	opID := e.Journal.NextOpID()
	var created []string
	for _, bases := range amplicons {
		newID := outputID
		if newID == "" {
			newID = e.State.disambiguate(prefix)
		} else if _, exists := e.State.Sequences[newID]; exists {
			return OpResult{}, invalidInput("output id %q already exists", newID)
		}
		out := seq.Sequence{ID: newID, Name: newID, Bases: bases, Topology: seq.Linear}
		out.UpdateComputedFeatures()
		e.State.putSequence(out)
		e.State.recordDerivation(newID, lineage.Derived, opID, runID, []string{templateID}, clockFn())
		created = append(created, newID)
	}

	result := OpResult{OpID: opID, Created: created}
	if len(created) > 1 {
		if _, err := e.State.Containers.Create(container.KindPcr, created, e.State.Parameters.MaxFragmentsPerContainer); err != nil {
			return OpResult{}, invalidInput("%v", err)
		}
	}
	return result, nil
}
