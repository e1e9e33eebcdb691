/*
Package engine implements GENtle's OperationEngine: validated, journaled
mutation of a ProjectState through a tagged-union Operation type.

Grounded on the teacher's clone.go (Digest/Ligation algorithms),
primers/pcr/pcr.go (PCR search), and checks/checks.go (palindrome/blunt-end
checks), generalized from the teacher's bare-string CloneSequence/Fragment
model to spec.md's richer Sequence/lineage/container/journal model.
*/
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/gentlelab/gentle/internal/container"
	"github.com/gentlelab/gentle/internal/enzyme"
	"github.com/gentlelab/gentle/internal/journal"
	"github.com/gentlelab/gentle/internal/lineage"
	"github.com/gentlelab/gentle/internal/seq"
)

// DisplaySettings holds the enumerated display booleans
// SetDisplayVisibility toggles. The set is intentionally small and closed:
// spec.md names no other visibility targets than these.
type DisplaySettings struct {
	ShowRestrictionSites bool `json:"showRestrictionSites"`
	ShowORFs             bool `json:"showORFs"`
	ShowFeatures         bool `json:"showFeatures"`
	ShowGC               bool `json:"showGC"`
}

// DisplayTarget names one of DisplaySettings' booleans.
type DisplayTarget string

const (
	TargetRestrictionSites DisplayTarget = "RestrictionSites"
	TargetORFs             DisplayTarget = "ORFs"
	TargetFeatures         DisplayTarget = "Features"
	TargetGC               DisplayTarget = "GC"
)

// EngineParameters carries the engine-wide bounds every pool-producing
// operation enforces.
type EngineParameters struct {
	MaxFragmentsPerContainer int `json:"maxFragmentsPerContainer"`
}

const defaultMaxFragmentsPerContainer = 80000

// DefaultEngineParameters returns the parameter set a brand new project
// starts with.
func DefaultEngineParameters() EngineParameters {
	return EngineParameters{MaxFragmentsPerContainer: defaultMaxFragmentsPerContainer}
}

// ProjectState is the entire persisted state of one GENtle project.
type ProjectState struct {
	Sequences  map[string]seq.Sequence `json:"sequences"`
	Display    DisplaySettings         `json:"display"`
	Lineage    *lineage.Graph          `json:"lineage"`
	Containers *container.State        `json:"containerState"`
	Parameters EngineParameters        `json:"parameters"`
	Metadata   map[string]string       `json:"metadata,omitempty"`

	// Unknown holds top-level project-file keys this version of the engine
	// doesn't recognize, round-tripped verbatim so an older save doesn't
	// lose a newer tool's data (spec.md §6's "unknown top-level keys are
	// preserved"). Populated by LoadProject and re-emitted by SaveProject
	// (project_io.go), not by Reconcile.
	Unknown map[string]json.RawMessage `json:"-"`
}

// NewProject returns an empty ProjectState, per spec.md §3's "created empty
// by new_project".
func NewProject() *ProjectState {
	return &ProjectState{
		Sequences:  make(map[string]seq.Sequence),
		Lineage:    lineage.New(),
		Containers: container.New(),
		Parameters: DefaultEngineParameters(),
		Metadata:   make(map[string]string),
	}
}

// Reconcile restores derived invariants after a project is loaded from
// disk: the container counter resumes past existing ids (spec.md §4.5), and
// every op_id that produced more than one child sequence gets an implicit
// pool container if one isn't already recorded.
func (p *ProjectState) Reconcile() {
	if p.Lineage == nil {
		p.Lineage = lineage.New()
	}
	if p.Containers == nil {
		p.Containers = container.New()
	}
	p.Containers.Reconcile()

	byOp := make(map[string][]string)
	for _, n := range p.Lineage.Nodes {
		if n.CreatedByOp == "" {
			continue
		}
		byOp[n.CreatedByOp] = append(byOp[n.CreatedByOp], n.SeqID)
	}
	existing := make(map[string]bool)
	for _, c := range p.Containers.Containers {
		if len(c.Members) == 0 {
			continue
		}
		existing[c.Members[0]] = true
	}
	for _, members := range byOp {
		if len(members) <= 1 {
			continue
		}
		if existing[members[0]] {
			continue
		}
		// Best-effort: if max_fragments_per_container would already be
		// violated the project was saved in a state that predates the
		// current bound; reconciliation never fails the load over it.
		_, _ = p.Containers.Create(container.KindMerge, members, p.Parameters.MaxFragmentsPerContainer)
	}
}

// Engine executes operations and workflows against a ProjectState, appending
// to a Journal as it goes.
type Engine struct {
	State   *ProjectState
	Journal *journal.Journal
	catalog enzyme.Catalog
}

// New returns an Engine over state, using catalog for enzyme lookups.
func New(state *ProjectState, catalog enzyme.Catalog) *Engine {
	return &Engine{State: state, Journal: journal.New(), catalog: catalog}
}

// disambiguate returns base if it is not already a key in Sequences,
// otherwise base_2, base_3, ... until a free id is found (spec.md §4.4).
func (p *ProjectState) disambiguate(base string) string {
	if _, exists := p.Sequences[base]; !exists {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if _, exists := p.Sequences[candidate]; !exists {
			return candidate
		}
	}
}

// getSequence fetches a sequence by id or returns a NotFound error.
func (p *ProjectState) getSequence(id string) (seq.Sequence, error) {
	s, ok := p.Sequences[id]
	if !ok {
		return seq.Sequence{}, notFound("unknown sequence id %q", id)
	}
	return s, nil
}

// putSequence inserts s under its own ID, which must already be unique.
func (p *ProjectState) putSequence(s seq.Sequence) {
	p.Sequences[s.ID] = s
}

// recordDerivation creates a lineage node for a newly created sequence and
// an edge from each parent, tagged with opID/runID. It is the single place
// every operation routes through so spec.md §4.4's "(1) records parents,
// (2) creates lineage node, (3) records edges" is always honored together.
func (p *ProjectState) recordDerivation(childSeqID string, origin lineage.Origin, opID, runID string, parentSeqIDs []string, createdAtMs int64) {
	nodeID := fmt.Sprintf("node-%s", childSeqID)
	p.Lineage.AddNode(lineage.Node{
		NodeID:      nodeID,
		SeqID:       childSeqID,
		Origin:      origin,
		CreatedByOp: opID,
		CreatedAtMs: createdAtMs,
	})
	for _, parentSeqID := range parentSeqIDs {
		parentNodeID, ok := p.Lineage.NodeForSeqID(parentSeqID)
		if !ok {
			continue
		}
		p.Lineage.AddEdge(lineage.Edge{FromNode: parentNodeID, ToNode: nodeID, OpID: opID, RunID: runID})
	}
}
