package engine

import (
	"bytes"

	"github.com/gentlelab/gentle/internal/alphabet"
	"github.com/gentlelab/gentle/internal/container"
	"github.com/gentlelab/gentle/internal/lineage"
	"github.com/gentlelab/gentle/internal/seq"
)

// ligationAdmissible implements spec.md §4.4's pairwise end-compatibility
// test: Blunt requires both ends blunt; Sticky requires at least one
// right-end overhang of left to equal the reverse-complement or the
// straight (non-reversed) complement of at least one left-end overhang of
// right. The straight-complement branch covers rejoining two pieces that
// came from the same cut without flipping either one; the reverse-complement
// branch covers joining in flipped orientation, matching
// clone.recurseLigate's two equality tests generalized beyond a single
// seed-and-pool recursion.
func ligationAdmissible(protocol LigationProtocol, left, right seq.Overhang) bool {
	switch protocol {
	case ProtocolBlunt:
		return left.RightBlunt() && right.LeftBlunt()
	case ProtocolSticky:
		for _, l := range left.RightOverhangs() {
			for _, r := range right.LeftOverhangs() {
				if bytes.Equal(l, alphabet.ReverseComplement(r)) || bytes.Equal(l, complementBytes(r)) {
					return true
				}
			}
		}
		return false
	default:
		return false
	}
}

// applyLigation implements Ligation per spec.md §4.4: enumerates every
// ordered pair of distinct inputs, keeps the admissible ones, and joins each
// into a new sequence whose bases are the concatenation of the two inputs'
// forward strings. circularize_if_possible additionally closes the product
// into a circle when its own two remaining ends are mutually admissible.
func (e *Engine) applyLigation(runID string, op *LigationOp) (OpResult, error) {
	if len(op.Inputs) < 2 {
		return OpResult{}, invalidInput("Ligation: at least two inputs are required")
	}
	if op.Protocol != ProtocolBlunt && op.Protocol != ProtocolSticky {
		return OpResult{}, invalidInput("Ligation: unknown protocol %q", op.Protocol)
	}

	inputs := make([]seq.Sequence, len(op.Inputs))
	for i, id := range op.Inputs {
		s, err := e.State.getSequence(id)
		if err != nil {
			return OpResult{}, err
		}
		inputs[i] = s
	}

	type product struct {
		bases    []byte
		overhang seq.Overhang
		circular bool
		parents  []string
	}
	var products []product

	for i, left := range inputs {
		for j, right := range inputs {
			if i == j {
				continue
			}
			if !ligationAdmissible(op.Protocol, left.Overhang, right.Overhang) {
				continue
			}

			bases := append(append([]byte(nil), left.Bases...), right.Bases...)
			var overhang seq.Overhang
			overhang.Forward5 = left.Overhang.Forward5
			overhang.Reverse3 = left.Overhang.Reverse3
			overhang.Forward3 = right.Overhang.Forward3
			overhang.Reverse5 = right.Overhang.Reverse5

			circular := false
			if op.CircularizeIfPossible && ligationAdmissible(op.Protocol, overhang, overhang) {
				circular = true
				overhang = seq.Overhang{}
			}

			products = append(products, product{
				bases:    bases,
				overhang: overhang,
				circular: circular,
				parents:  []string{op.Inputs[i], op.Inputs[j]},
			})
		}
	}

	if op.Unique && len(products) != 1 {
		return OpResult{}, invalidInput("Ligation: unique=true requires exactly one accepted pair, got %d", len(products))
	}
	if op.OutputID != "" && len(products) != 1 {
		return OpResult{}, invalidInput("Ligation: output_id is only valid with exactly one product, got %d", len(products))
	}
	if len(products) > e.State.Parameters.MaxFragmentsPerContainer {
		return OpResult{}, invalidInput("Ligation: %d products exceeds max_fragments_per_container (%d)", len(products), e.State.Parameters.MaxFragmentsPerContainer)
	}
	if len(products) == 0 {
		return OpResult{}, invalidInput("Ligation: no admissible pairs under protocol %q", op.Protocol)
	}

	prefix := op.OutputPrefix
	if prefix == "" {
		prefix = "ligated"
	}

	opID := e.Journal.NextOpID()
	var created []string
	for _, p := range products {
		newID := op.OutputID
		if newID == "" {
			newID = e.State.disambiguate(prefix)
		} else if _, exists := e.State.Sequences[newID]; exists {
			return OpResult{}, invalidInput("output id %q already exists", newID)
		}

		topology := seq.Linear
		if p.circular {
			topology = seq.Circular
		}
		out := seq.Sequence{ID: newID, Name: newID, Bases: p.bases, Topology: topology, Overhang: p.overhang}
		out.UpdateComputedFeatures()

		e.State.putSequence(out)
		e.State.recordDerivation(newID, lineage.Derived, opID, runID, p.parents, clockFn())
		created = append(created, newID)
	}

	result := OpResult{OpID: opID, Created: created}
	if len(created) > 1 {
		if _, err := e.State.Containers.Create(container.KindLigation, created, e.State.Parameters.MaxFragmentsPerContainer); err != nil {
			return OpResult{}, invalidInput("%v", err)
		}
	}
	return result, nil
}
