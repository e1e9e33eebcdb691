package engine

import "time"

// clockFn is indirected so determinism tests can freeze time; production
// code always uses time.Now via the default.
var clockFn = func() int64 { return time.Now().UnixMilli() }

// Apply validates and executes a single operation under runID, appending a
// journal entry on success. Failed operations never mutate State and are
// never journaled (spec.md §7).
func (e *Engine) Apply(runID string, op Operation) (OpResult, error) {
	result, err := e.dispatch(runID, op)
	if err != nil {
		return OpResult{}, err
	}
	e.Journal.Append(runID, op, result)
	return result, nil
}

// ApplyWorkflow runs a batch of operations under one run_id, in submission
// order, stopping at the first failure; operations already committed stay
// committed (spec.md §5's "within one run_id, operations commit in
// submission order").
func (e *Engine) ApplyWorkflow(runID string, ops []Operation) ([]OpResult, error) {
	results := make([]OpResult, 0, len(ops))
	for _, op := range ops {
		r, err := e.Apply(runID, op)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (e *Engine) dispatch(runID string, op Operation) (OpResult, error) {
	switch o := op.(type) {
	case *LoadFileOp:
		return e.applyLoadFile(runID, o)
	case *SaveFileOp:
		return e.applySaveFile(runID, o)
	case *DigestOp:
		return e.applyDigest(runID, o)
	case *LigationOp:
		return e.applyLigation(runID, o)
	case *MergeContainersOp:
		return e.applyMergeContainers(runID, o)
	case *PcrOp:
		return e.applyPcr(runID, o)
	case *PcrAdvancedOp:
		return e.applyPcrAdvanced(runID, o)
	case *PcrMutagenesisOp:
		return e.applyPcrMutagenesis(runID, o)
	case *ExtractRegionOp:
		return e.applyExtractRegion(runID, o)
	case *ReverseOp:
		return e.applyReverse(runID, o)
	case *ComplementOp:
		return e.applyComplement(runID, o)
	case *ReverseComplementOp:
		return e.applyReverseComplement(runID, o)
	case *BranchOp:
		return e.applyBranch(runID, o)
	case *SelectCandidateOp:
		return e.applySelectCandidate(runID, o)
	case *FilterByMolecularWeightOp:
		return e.applyFilterByMolecularWeight(runID, o)
	case *SetTopologyOp:
		return e.applySetTopology(runID, o)
	case *RecomputeFeaturesOp:
		return e.applyRecomputeFeatures(runID, o)
	case *SetDisplayVisibilityOp:
		return e.applySetDisplayVisibility(runID, o)
	case *SetParameterOp:
		return e.applySetParameter(runID, o)
	default:
		return OpResult{}, internalErr("unhandled operation type %T", op)
	}
}
