package engine

import (
	"github.com/gentlelab/gentle/internal/alphabet"
	"github.com/gentlelab/gentle/internal/lineage"
	"github.com/gentlelab/gentle/internal/seq"
)

// applyReverse, applyComplement, and applyReverseComplement all follow the
// same shape: clone the input, transform its bases, derive a new id, record
// lineage as Derived (spec.md §4.4).
func (e *Engine) applyReverse(runID string, op *ReverseOp) (OpResult, error) {
	return e.applySimpleTransform(runID, op.Input, op.OutputID, "reversed", lineage.Derived, func(bases []byte) []byte {
		out := make([]byte, len(bases))
		for i, b := range bases {
			out[len(bases)-1-i] = b
		}
		return out
	})
}

func (e *Engine) applyComplement(runID string, op *ComplementOp) (OpResult, error) {
	return e.applySimpleTransform(runID, op.Input, op.OutputID, "comp", lineage.Derived, func(bases []byte) []byte {
		out := make([]byte, len(bases))
		for i, b := range bases {
			out[i] = alphabet.Complement(b)
		}
		return out
	})
}

func (e *Engine) applyReverseComplement(runID string, op *ReverseComplementOp) (OpResult, error) {
	return e.applySimpleTransform(runID, op.Input, op.OutputID, "rc", lineage.Derived, alphabet.ReverseComplement)
}

func (e *Engine) applyBranch(runID string, op *BranchOp) (OpResult, error) {
	return e.applySimpleTransform(runID, op.Input, op.OutputID, "branch", lineage.Branch, func(bases []byte) []byte {
		out := make([]byte, len(bases))
		copy(out, bases)
		return out
	})
}

func (e *Engine) applySimpleTransform(runID, inputID, outputID, suffix string, origin lineage.Origin, transform func([]byte) []byte) (OpResult, error) {
	input, err := e.State.getSequence(inputID)
	if err != nil {
		return OpResult{}, err
	}

	newID := outputID
	if newID == "" {
		newID = e.State.disambiguate(inputID + "_" + suffix)
	} else if _, exists := e.State.Sequences[newID]; exists {
		return OpResult{}, invalidInput("output id %q already exists", newID)
	}

	out := input.Clone()
	out.ID = newID
	out.Name = newID
	out.Bases = transform(input.Bases)
	out.UpdateComputedFeatures()

	opID := e.Journal.NextOpID()
	e.State.putSequence(out)
	e.State.recordDerivation(newID, origin, opID, runID, []string{inputID}, clockFn())

	return OpResult{OpID: opID, Created: []string{newID}}, nil
}

// applyExtractRegion implements ExtractRegion: half-open on linear,
// modular on circular (spec.md §4.4), from==to is always an error.
func (e *Engine) applyExtractRegion(runID string, op *ExtractRegionOp) (OpResult, error) {
	if op.From == op.To {
		return OpResult{}, invalidInput("ExtractRegion: from == to (%d) is not a valid region", op.From)
	}
	input, err := e.State.getSequence(op.Input)
	if err != nil {
		return OpResult{}, err
	}
	bases, err := input.GetRange(op.From, op.To)
	if err != nil {
		return OpResult{}, invalidInput("%v", err)
	}

	newID := op.OutputID
	if newID == "" {
		newID = e.State.disambiguate(op.Input + "_region")
	} else if _, exists := e.State.Sequences[newID]; exists {
		return OpResult{}, invalidInput("output id %q already exists", newID)
	}

	out := seq.Sequence{ID: newID, Name: newID, Bases: bases, Topology: seq.Linear}
	out.UpdateComputedFeatures()

	opID := e.Journal.NextOpID()
	e.State.putSequence(out)
	e.State.recordDerivation(newID, lineage.Derived, opID, runID, []string{op.Input}, clockFn())

	return OpResult{OpID: opID, Created: []string{newID}}, nil
}

// applySelectCandidate copies input into a new InSilicoSelection-tagged
// sequence, always warning that this is not a wet-lab product (spec.md
// §4.4).
func (e *Engine) applySelectCandidate(runID string, op *SelectCandidateOp) (OpResult, error) {
	input, err := e.State.getSequence(op.Input)
	if err != nil {
		return OpResult{}, err
	}

	newID := op.OutputID
	if newID == "" {
		newID = e.State.disambiguate(op.Input + "_selected")
	} else if _, exists := e.State.Sequences[newID]; exists {
		return OpResult{}, invalidInput("output id %q already exists", newID)
	}

	out := input.Clone()
	out.ID = newID
	out.Name = newID

	opID := e.Journal.NextOpID()
	e.State.putSequence(out)
	e.State.recordDerivation(newID, lineage.InSilicoSelection, opID, runID, []string{op.Input}, clockFn())

	return OpResult{
		OpID:     opID,
		Created:  []string{newID},
		Warnings: []string{"SelectCandidate does not model a wet-lab product"},
	}, nil
}

// applySetTopology implements SetTopology, which (like RecomputeFeatures)
// triggers update_computed_features after mutating topology.
func (e *Engine) applySetTopology(runID string, op *SetTopologyOp) (OpResult, error) {
	s, err := e.State.getSequence(op.Input)
	if err != nil {
		return OpResult{}, err
	}
	if err := s.SetCircular(op.Circular); err != nil {
		return OpResult{}, invalidInput("%v", err)
	}
	s.UpdateComputedFeatures()
	e.State.putSequence(s)

	opID := e.Journal.NextOpID()
	return OpResult{OpID: opID, Changed: []string{op.Input}}, nil
}

func (e *Engine) applyRecomputeFeatures(runID string, op *RecomputeFeaturesOp) (OpResult, error) {
	s, err := e.State.getSequence(op.Input)
	if err != nil {
		return OpResult{}, err
	}
	s.UpdateComputedFeatures()
	e.State.putSequence(s)

	opID := e.Journal.NextOpID()
	return OpResult{OpID: opID, Changed: []string{op.Input}}, nil
}

// applySetDisplayVisibility is a pure state mutation with no lineage
// impact (spec.md §4.4).
func (e *Engine) applySetDisplayVisibility(runID string, op *SetDisplayVisibilityOp) (OpResult, error) {
	switch op.Target {
	case TargetRestrictionSites:
		e.State.Display.ShowRestrictionSites = op.Visible
	case TargetORFs:
		e.State.Display.ShowORFs = op.Visible
	case TargetFeatures:
		e.State.Display.ShowFeatures = op.Visible
	case TargetGC:
		e.State.Display.ShowGC = op.Visible
	default:
		return OpResult{}, invalidInput("unknown display target %q", op.Target)
	}
	opID := e.Journal.NextOpID()
	return OpResult{OpID: opID}, nil
}

// applySetParameter only recognises max_fragments_per_container (spec.md
// §4.4).
func (e *Engine) applySetParameter(runID string, op *SetParameterOp) (OpResult, error) {
	if op.Name != "max_fragments_per_container" {
		return OpResult{}, invalidInput("unknown parameter %q", op.Name)
	}
	if op.Value <= 0 {
		return OpResult{}, invalidInput("max_fragments_per_container must be a positive integer, got %d", op.Value)
	}
	e.State.Parameters.MaxFragmentsPerContainer = op.Value
	opID := e.Journal.NextOpID()
	return OpResult{OpID: opID}, nil
}
