package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentlelab/gentle/internal/enzyme"
	"github.com/gentlelab/gentle/internal/seq"
)

func newTestEngine() *Engine {
	catalog := enzyme.NewCatalog([]enzyme.RestrictionEnzyme{
		{Name: "EcoRI", RecognitionSite: "GAATTC", CutOffset: 1, OverlapOffset: 4},
	})
	return New(NewProject(), catalog)
}

func putLinear(e *Engine, id, bases string) {
	e.State.putSequence(seq.Sequence{ID: id, Name: id, Bases: []byte(bases), Topology: seq.Linear})
}

func TestDigestCutsAtEveryRecognitionSite(t *testing.T) {
	e := newTestEngine()
	// two EcoRI sites: GAATTC at offset 5 and offset 20
	bases := "AAAAAGAATTCAAAAAAAAAGAATTCAAAAA"
	putLinear(e, "plasmid", bases)

	res, err := e.Apply("run-1", &DigestOp{Input: "plasmid", Enzymes: []string{"EcoRI"}})
	require.NoError(t, err)
	assert.Len(t, res.Created, 3)

	total := 0
	for _, id := range res.Created {
		s, err := e.State.getSequence(id)
		require.NoError(t, err)
		total += len(s.Bases)
	}
	// fragment bases sum to less than original since overhangs are held
	// out-of-line rather than double-counted on each neighbor.
	assert.LessOrEqual(t, total, len(bases))
	assert.Equal(t, 1, len(e.State.Containers.Containers))
}

func TestDigestUnknownEnzymeFailsWhenNoneKnown(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "seq1", "ACGTACGTACGTACGT")
	_, err := e.Apply("run-1", &DigestOp{Input: "seq1", Enzymes: []string{"NotAnEnzyme"}})
	assert.Error(t, err)
}

func TestDigestWarnsOnPartiallyUnknownEnzymes(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "plasmid", "AAAAAGAATTCAAAAA")
	res, err := e.Apply("run-1", &DigestOp{Input: "plasmid", Enzymes: []string{"EcoRI", "GhostEnzyme"}})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Warnings)
}

func TestLigationBluntProducesBothOrderings(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "a", "ACGTACGT")
	putLinear(e, "b", "TTTTGGGG")

	res, err := e.Apply("run-1", &LigationOp{Inputs: []string{"a", "b"}, Protocol: ProtocolBlunt})
	require.NoError(t, err)
	assert.Len(t, res.Created, 2)
}

func TestLigationUniqueRejectsMultipleProducts(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "a", "ACGTACGT")
	putLinear(e, "b", "TTTTGGGG")

	_, err := e.Apply("run-1", &LigationOp{Inputs: []string{"a", "b"}, Protocol: ProtocolBlunt, Unique: true})
	assert.Error(t, err)
}

func TestLigationStickyRequiresCompatibleOverhangs(t *testing.T) {
	e := newTestEngine()
	s1 := seq.Sequence{ID: "a", Name: "a", Bases: []byte("ACGTACGT"), Topology: seq.Linear,
		Overhang: seq.Overhang{Forward3: []byte("AATT")}}
	s2 := seq.Sequence{ID: "b", Name: "b", Bases: []byte("TTTTGGGG"), Topology: seq.Linear,
		Overhang: seq.Overhang{Forward5: []byte("AATT")}}
	e.State.putSequence(s1)
	e.State.putSequence(s2)

	res, err := e.Apply("run-1", &LigationOp{Inputs: []string{"a", "b"}, Protocol: ProtocolSticky, OutputID: "joined", Unique: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"joined"}, res.Created)
}

func TestPcrAmplifiesBetweenPrimers(t *testing.T) {
	e := newTestEngine()
	// forward primer at the start, reverse primer's revcomp at the end
	template := "AAAACCCCGGGGTTTTCATGCATG"
	putLinear(e, "tmpl", template)

	res, err := e.Apply("run-1", &PcrOp{Template: "tmpl", Forward: "AAAACCCC", Reverse: "CATGCATG"})
	require.NoError(t, err)
	require.Len(t, res.Created, 1)

	product, err := e.State.getSequence(res.Created[0])
	require.NoError(t, err)
	assert.Equal(t, template, string(product.Bases))
}

func TestBranchCopiesWithoutMutatingSource(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "seed", "ACGTACGT")

	res, err := e.Apply("run-1", &BranchOp{Input: "seed", OutputID: "copy"})
	require.NoError(t, err)
	assert.Equal(t, []string{"copy"}, res.Created)

	original, err := e.State.getSequence("seed")
	require.NoError(t, err)
	clone, err := e.State.getSequence("copy")
	require.NoError(t, err)
	assert.Equal(t, string(original.Bases), string(clone.Bases))
}

func TestExtractRegionRejectsEqualBounds(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "seed", "ACGTACGT")
	_, err := e.Apply("run-1", &ExtractRegionOp{Input: "seed", From: 3, To: 3})
	assert.Error(t, err)
}

func TestExtractRegionSlicesBases(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "seed", "ACGTACGT")
	res, err := e.Apply("run-1", &ExtractRegionOp{Input: "seed", From: 2, To: 5, OutputID: "region"})
	require.NoError(t, err)
	assert.Equal(t, []string{"region"}, res.Created)

	region, err := e.State.getSequence("region")
	require.NoError(t, err)
	assert.Equal(t, "GTA", string(region.Bases))
}

func TestSetTopologyRejectsStickyEndsGoingCircular(t *testing.T) {
	e := newTestEngine()
	e.State.putSequence(seq.Sequence{
		ID: "seed", Name: "seed", Bases: []byte("ACGTACGT"), Topology: seq.Linear,
		Overhang: seq.Overhang{Forward5: []byte("AATT")},
	})
	_, err := e.Apply("run-1", &SetTopologyOp{Input: "seed", Circular: true})
	assert.Error(t, err)
}

func TestSetParameterRejectsNonPositive(t *testing.T) {
	e := newTestEngine()
	_, err := e.Apply("run-1", &SetParameterOp{Name: "max_fragments_per_container", Value: 0})
	assert.Error(t, err)

	_, err = e.Apply("run-1", &SetParameterOp{Name: "max_fragments_per_container", Value: 10})
	assert.NoError(t, err)
	assert.Equal(t, 10, e.State.Parameters.MaxFragmentsPerContainer)
}

func TestFailedOperationLeavesStateAndJournalUnchanged(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "seed", "ACGTACGT")
	before := e.Journal.Len()

	_, err := e.Apply("run-1", &ExtractRegionOp{Input: "seed", From: 0, To: 100})
	assert.Error(t, err)
	assert.Equal(t, before, e.Journal.Len())
	_, exists := e.State.Sequences["seed_region"]
	assert.False(t, exists)
}

func TestApplyWorkflowStopsAtFirstFailure(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "seed", "ACGTACGT")

	ops := []Operation{
		&BranchOp{Input: "seed", OutputID: "copy1"},
		&ExtractRegionOp{Input: "seed", From: 0, To: 0},
		&BranchOp{Input: "seed", OutputID: "copy2"},
	}
	results, err := e.ApplyWorkflow("run-1", ops)
	assert.Error(t, err)
	assert.Len(t, results, 1)
	_, exists := e.State.Sequences["copy2"]
	assert.False(t, exists)
}

func TestSaveAndLoadFileRoundTrip(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "seed", "ACGTACGTACGT")

	dir := t.TempDir()
	path := filepath.Join(dir, "seed.fasta")

	_, err := e.Apply("run-1", &SaveFileOp{SeqID: "seed", Path: path, Format: FormatFasta})
	require.NoError(t, err)

	res, err := e.Apply("run-1", &LoadFileOp{Path: path})
	require.NoError(t, err)
	require.Len(t, res.Created, 1)

	loaded, err := e.State.getSequence(res.Created[0])
	require.NoError(t, err)
	assert.Equal(t, "ACGTACGTACGT", string(loaded.Bases))
}

func TestPcrAdvancedRealizesMismatchTolerantHit(t *testing.T) {
	e := newTestEngine()
	template := "AAAACCCCGGGGTTTTCATGCATG"
	putLinear(e, "tmpl", template)

	forward := PrimerSpec{Sequence: "AAAACCCG", AnnealLen: 8, MaxMismatches: 1, LibraryMode: LibraryEnumerate, MaxVariants: 1}
	reverse := PrimerSpec{Sequence: "CATGCATG", AnnealLen: 8, MaxMismatches: 0, LibraryMode: LibraryEnumerate, MaxVariants: 1}

	res, err := e.Apply("run-1", &PcrAdvancedOp{Template: "tmpl", Forward: forward, Reverse: reverse})
	require.NoError(t, err)
	// The forward primer anneals with one mismatch at offset 0 (AAAACCCC) and
	// again at offset 1 (AAACCCCG), so two amplicons are produced; the
	// offset-0 one comes first.
	require.Len(t, res.Created, 2)

	product, err := e.State.getSequence(res.Created[0])
	require.NoError(t, err)
	assert.Equal(t, "AAAACCCGGGGGTTTTCATGCATG", string(product.Bases))
}

func TestPcrAdvancedRejectsVariantOverflow(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "tmpl", "AAAACCCCGGGGTTTTCATGCATG")

	forward := PrimerSpec{Sequence: "ANAACCCC", AnnealLen: 8, LibraryMode: LibraryEnumerate, MaxVariants: 1}
	reverse := PrimerSpec{Sequence: "CATGCATG", AnnealLen: 8, LibraryMode: LibraryEnumerate, MaxVariants: 1}

	_, err := e.Apply("run-1", &PcrAdvancedOp{Template: "tmpl", Forward: forward, Reverse: reverse})
	assert.Error(t, err)
}

func TestPcrMutagenesisRealizedMutationSucceeds(t *testing.T) {
	e := newTestEngine()
	template := "AAAACCCCGGGGTTTTCATGCATG"
	putLinear(e, "tmpl", template)

	forward := PrimerSpec{Sequence: "AAAACCCG", AnnealLen: 8, MaxMismatches: 1, LibraryMode: LibraryEnumerate, MaxVariants: 1}
	reverse := PrimerSpec{Sequence: "CATGCATG", AnnealLen: 8, MaxMismatches: 0, LibraryMode: LibraryEnumerate, MaxVariants: 1}
	mutation := Mutation{Position: 7, RefBase: 'C', AltBase: 'G'}

	res, err := e.Apply("run-1", &PcrMutagenesisOp{
		Template: "tmpl", Forward: forward, Reverse: reverse,
		Mutations: []Mutation{mutation}, RequireAllMutations: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Created, 1)

	product, err := e.State.getSequence(res.Created[0])
	require.NoError(t, err)
	assert.Equal(t, byte('G'), product.Bases[7])
}

func TestPcrMutagenesisRejectsMismatchedRefBase(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "tmpl", "AAAACCCCGGGGTTTTCATGCATG")

	forward := PrimerSpec{Sequence: "AAAACCCG", AnnealLen: 8, MaxMismatches: 1, LibraryMode: LibraryEnumerate, MaxVariants: 1}
	reverse := PrimerSpec{Sequence: "CATGCATG", AnnealLen: 8, LibraryMode: LibraryEnumerate, MaxVariants: 1}
	mutation := Mutation{Position: 7, RefBase: 'T', AltBase: 'G'}

	_, err := e.Apply("run-1", &PcrMutagenesisOp{Template: "tmpl", Forward: forward, Reverse: reverse, Mutations: []Mutation{mutation}})
	assert.Error(t, err)
}

func TestPcrMutagenesisRequireAllMutationsFiltersUnrealized(t *testing.T) {
	e := newTestEngine()
	template := "AAAACCCCGGGGTTTTCATGCATG"
	putLinear(e, "tmpl", template)

	forward := PrimerSpec{Sequence: "AAAACCCG", AnnealLen: 8, MaxMismatches: 1, LibraryMode: LibraryEnumerate, MaxVariants: 1}
	reverse := PrimerSpec{Sequence: "CATGCATG", AnnealLen: 8, MaxMismatches: 0, LibraryMode: LibraryEnumerate, MaxVariants: 1}
	realized := Mutation{Position: 7, RefBase: 'C', AltBase: 'G'}
	unrealized := Mutation{Position: 20, RefBase: 'C', AltBase: 'T'}

	_, err := e.Apply("run-1", &PcrMutagenesisOp{
		Template: "tmpl", Forward: forward, Reverse: reverse,
		Mutations: []Mutation{realized, unrealized}, RequireAllMutations: true,
	})
	assert.Error(t, err)
}

func TestMergeContainersCopiesInOrder(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "a", "AAAA")
	putLinear(e, "b", "TTTT")

	res, err := e.Apply("run-1", &MergeContainersOp{Inputs: []string{"a", "b"}})
	require.NoError(t, err)
	require.Len(t, res.Created, 2)

	first, err := e.State.getSequence(res.Created[0])
	require.NoError(t, err)
	assert.Equal(t, "AAAA", string(first.Bases))
	assert.Equal(t, 1, len(e.State.Containers.Containers))
}

func TestMergeContainersRejectsEmptyInputs(t *testing.T) {
	e := newTestEngine()
	_, err := e.Apply("run-1", &MergeContainersOp{Inputs: nil})
	assert.Error(t, err)
}

func TestFilterByMolecularWeightKeepsInRangeOnly(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "short", "AAAA")
	putLinear(e, "long", "AAAAAAAAAA")

	res, err := e.Apply("run-1", &FilterByMolecularWeightOp{
		Inputs: []string{"short", "long"}, MinBp: 8, MaxBp: 12, Error: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"long"}, res.Changed)
}

func TestFilterByMolecularWeightUniqueRejectsMultipleMatches(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "a", "AAAAAAAA")
	putLinear(e, "b", "TTTTTTTT")

	_, err := e.Apply("run-1", &FilterByMolecularWeightOp{
		Inputs: []string{"a", "b"}, MinBp: 4, MaxBp: 12, Error: 0, Unique: true,
	})
	assert.Error(t, err)
}

func TestSaveAndLoadProjectRoundTripIsStructurallyIdentical(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "seed", "ACGTACGTACGT")
	_, err := e.Apply("run-1", &BranchOp{Input: "seed", OutputID: "copy"})
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "project.json")
	require.NoError(t, e.State.SaveProject(path))

	loaded, err := LoadProject(path)
	require.NoError(t, err)

	if diff := cmp.Diff(e.State.Sequences, loaded.Sequences); diff != "" {
		t.Fatalf("sequences changed across round trip (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoadProjectPreservesUnknownKeys(t *testing.T) {
	state := NewProject()
	state.Sequences["seed"] = seq.Sequence{ID: "seed", Name: "seed", Bases: []byte("ACGT"), Topology: seq.Linear}

	dir := t.TempDir()
	path := filepath.Join(dir, "project.json")
	require.NoError(t, state.SaveProject(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	fields["futureToolData"] = json.RawMessage(`{"x":1}`)
	patched, err := json.Marshal(fields)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, patched, 0644))

	loaded, err := LoadProject(path)
	require.NoError(t, err)
	assert.Contains(t, loaded.Unknown, "futureToolData")

	require.NoError(t, loaded.SaveProject(path))
	reloaded, err := LoadProject(path)
	require.NoError(t, err)
	assert.Contains(t, reloaded.Unknown, "futureToolData")
	assert.Contains(t, reloaded.Sequences, "seed")
}

func TestReverseFlipsBaseOrder(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "seed", "ACGTT")

	res, err := e.Apply("run-1", &ReverseOp{Input: "seed", OutputID: "rev"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rev"}, res.Created)

	out, err := e.State.getSequence("rev")
	require.NoError(t, err)
	assert.Equal(t, "TTGCA", string(out.Bases))
}

func TestComplementSwapsBasesWithoutReversing(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "seed", "ACGT")

	res, err := e.Apply("run-1", &ComplementOp{Input: "seed", OutputID: "comp"})
	require.NoError(t, err)
	assert.Equal(t, []string{"comp"}, res.Created)

	out, err := e.State.getSequence("comp")
	require.NoError(t, err)
	assert.Equal(t, "TGCA", string(out.Bases))
}

func TestReverseComplementCombinesBothTransforms(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "seed", "AACCGGTT")

	res, err := e.Apply("run-1", &ReverseComplementOp{Input: "seed", OutputID: "rc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"rc"}, res.Created)

	out, err := e.State.getSequence("rc")
	require.NoError(t, err)
	assert.Equal(t, "AACCGGTT", string(out.Bases))
}

func TestSelectCandidateWarnsAndTagsLineage(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "seed", "ACGTACGT")

	res, err := e.Apply("run-1", &SelectCandidateOp{Input: "seed", OutputID: "candidate"})
	require.NoError(t, err)
	assert.Equal(t, []string{"candidate"}, res.Created)
	assert.NotEmpty(t, res.Warnings)

	out, err := e.State.getSequence("candidate")
	require.NoError(t, err)
	assert.Equal(t, "ACGTACGT", string(out.Bases))
}

func TestRecomputeFeaturesReturnsChangedSequence(t *testing.T) {
	e := newTestEngine()
	putLinear(e, "seed", "ATGACGTACGTACGTTAG")

	res, err := e.Apply("run-1", &RecomputeFeaturesOp{Input: "seed"})
	require.NoError(t, err)
	assert.Equal(t, []string{"seed"}, res.Changed)
}

func TestSetDisplayVisibilityTogglesFlag(t *testing.T) {
	e := newTestEngine()

	_, err := e.Apply("run-1", &SetDisplayVisibilityOp{Target: TargetGC, Visible: true})
	require.NoError(t, err)
	assert.True(t, e.State.Display.ShowGC)

	_, err = e.Apply("run-1", &SetDisplayVisibilityOp{Target: TargetGC, Visible: false})
	require.NoError(t, err)
	assert.False(t, e.State.Display.ShowGC)
}

func TestSetDisplayVisibilityRejectsUnknownTarget(t *testing.T) {
	e := newTestEngine()
	_, err := e.Apply("run-1", &SetDisplayVisibilityOp{Target: DisplayTarget("Bogus"), Visible: true})
	assert.Error(t, err)
}
