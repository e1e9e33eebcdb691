package engine

import (
	"math"

	"github.com/gentlelab/gentle/internal/container"
)

// applyFilterByMolecularWeight keeps every input whose length (used as a
// molecular-weight proxy in base pairs, per spec.md §4.4) lies in
// [floor(min_bp*(1-error)), ceil(max_bp*(1+error))].
func (e *Engine) applyFilterByMolecularWeight(runID string, op *FilterByMolecularWeightOp) (OpResult, error) {
	if op.Error < 0 || op.Error > 1 {
		return OpResult{}, invalidInput("error must be in [0,1], got %v", op.Error)
	}
	if op.MinBp > op.MaxBp {
		return OpResult{}, invalidInput("min_bp (%d) must be <= max_bp (%d)", op.MinBp, op.MaxBp)
	}

	lower := int(math.Floor(float64(op.MinBp) * (1 - op.Error)))
	upper := int(math.Ceil(float64(op.MaxBp) * (1 + op.Error)))

	var matched []string
	for _, id := range op.Inputs {
		s, err := e.State.getSequence(id)
		if err != nil {
			return OpResult{}, err
		}
		if n := s.Len(); n >= lower && n <= upper {
			matched = append(matched, id)
		}
	}

	if op.Unique && len(matched) != 1 {
		return OpResult{}, invalidInput("unique=true requires exactly one match, got %d", len(matched))
	}

	if len(matched) > e.State.Parameters.MaxFragmentsPerContainer {
		return OpResult{}, invalidInput("filter result %d exceeds max_fragments_per_container (%d)", len(matched), e.State.Parameters.MaxFragmentsPerContainer)
	}

	opID := e.Journal.NextOpID()
	result := OpResult{OpID: opID}

	if len(matched) > 1 {
		if _, err := e.State.Containers.Create(container.KindMWFilter, matched, e.State.Parameters.MaxFragmentsPerContainer); err != nil {
			return OpResult{}, invalidInput("%v", err)
		}
	}
	result.Changed = matched
	return result, nil
}
