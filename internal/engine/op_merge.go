package engine

import (
	"github.com/gentlelab/gentle/internal/container"
	"github.com/gentlelab/gentle/internal/lineage"
	"github.com/gentlelab/gentle/internal/seq"
)

// applyMergeContainers copies each input sequence into a fresh pool
// preserving order (spec.md §4.4). The open question of whether copied
// sequences should inherit features verbatim is resolved in favour of
// verbatim copy (see DESIGN.md).
func (e *Engine) applyMergeContainers(runID string, op *MergeContainersOp) (OpResult, error) {
	if len(op.Inputs) == 0 {
		return OpResult{}, invalidInput("MergeContainers: inputs must not be empty")
	}
	if len(op.Inputs) > e.State.Parameters.MaxFragmentsPerContainer {
		return OpResult{}, invalidInput("MergeContainers: %d inputs exceeds max_fragments_per_container (%d)", len(op.Inputs), e.State.Parameters.MaxFragmentsPerContainer)
	}

	prefix := op.OutputPrefix
	if prefix == "" {
		prefix = "merged"
	}

	inputs := make([]seq.Sequence, len(op.Inputs))
	for i, inputID := range op.Inputs {
		input, err := e.State.getSequence(inputID)
		if err != nil {
			return OpResult{}, err
		}
		inputs[i] = input
	}

	opID := e.Journal.NextOpID()
	var created []string
	for i, inputID := range op.Inputs {
		newID := e.State.disambiguate(prefix)
		out := inputs[i].Clone()
		out.ID = newID
		out.Name = newID

		e.State.putSequence(out)
		e.State.recordDerivation(newID, lineage.Derived, opID, runID, []string{inputID}, clockFn())
		created = append(created, newID)
	}

	if _, err := e.State.Containers.Create(container.KindMerge, created, e.State.Parameters.MaxFragmentsPerContainer); err != nil {
		return OpResult{}, invalidInput("%v", err)
	}

	return OpResult{OpID: opID, Created: created}, nil
}
