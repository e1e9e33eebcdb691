/*
Package seq defines the Sequence, Feature, and Location types GENtle's
engine operates over.

The shape is grounded on the teacher's richest sequence type,
io/genbank.Genbank (Meta/Features/Sequence), adapted: bases are a byte slice
rather than a bare string so normalization and in-place range extraction
don't re-allocate on every call, and Location is carried over from
io/genbank.Location (Start/End/Complement/Join/SubLocations) extended with
the Between/Order/Bond/OneOf/External/Gap kinds the distilled spec
requires.
*/
package seq

import (
	"encoding/json"
	"fmt"

	"github.com/gentlelab/gentle/internal/alphabet"
	"github.com/gentlelab/gentle/internal/computed"
	"github.com/gentlelab/gentle/internal/enzyme"
)

// Topology is whether a sequence's ends are joined.
type Topology int

const (
	Linear Topology = iota
	Circular
)

func (t Topology) String() string {
	if t == Circular {
		return "Circular"
	}
	return "Linear"
}

func (t Topology) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Topology) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Circular":
		*t = Circular
	case "Linear", "":
		*t = Linear
	default:
		return fmt.Errorf("seq: unknown topology %q", s)
	}
	return nil
}

// Overhang records the four single-stranded extensions a linear sequence's
// ends may carry. An empty byte string on a given side means that side is
// blunt (spec.md §3).
type Overhang struct {
	Forward5 []byte `json:"forward5,omitempty"`
	Forward3 []byte `json:"forward3,omitempty"`
	Reverse5 []byte `json:"reverse5,omitempty"`
	Reverse3 []byte `json:"reverse3,omitempty"`
}

// IsBlunt reports whether every overhang is empty.
func (o Overhang) IsBlunt() bool {
	return len(o.Forward5) == 0 && len(o.Forward3) == 0 && len(o.Reverse5) == 0 && len(o.Reverse3) == 0
}

// LeftBlunt reports whether the left end of the molecule is blunt. The
// left end is where the forward strand's 5' terminus and the reverse
// strand's 3' terminus meet, so a left-end overhang is carried in either
// Forward5 or Reverse3.
func (o Overhang) LeftBlunt() bool {
	return len(o.Forward5) == 0 && len(o.Reverse3) == 0
}

// RightBlunt reports whether the right end of the molecule is blunt. The
// right end is where the forward strand's 3' terminus and the reverse
// strand's 5' terminus meet, so a right-end overhang is carried in either
// Forward3 or Reverse5.
func (o Overhang) RightBlunt() bool {
	return len(o.Forward3) == 0 && len(o.Reverse5) == 0
}

// LeftOverhangs returns the non-empty overhang strings on the left end.
func (o Overhang) LeftOverhangs() [][]byte {
	var out [][]byte
	if len(o.Forward5) > 0 {
		out = append(out, o.Forward5)
	}
	if len(o.Reverse3) > 0 {
		out = append(out, o.Reverse3)
	}
	return out
}

// RightOverhangs returns the non-empty overhang strings on the right end.
func (o Overhang) RightOverhangs() [][]byte {
	var out [][]byte
	if len(o.Forward3) > 0 {
		out = append(out, o.Forward3)
	}
	if len(o.Reverse5) > 0 {
		out = append(out, o.Reverse5)
	}
	return out
}

// LocationKind is the discriminator of a Location's expression.
type LocationKind int

const (
	Range LocationKind = iota
	Between
	Join
	Order
	Bond
	OneOf
	ComplementLoc
	External
	Gap
)

// Location is a feature location expression, modelled on GenBank location
// grammar: a plain range, a zero-width point between two bases, a join or
// order or bond of sub-locations, a one-of ambiguity, a complement wrapper,
// a reference to another record (external), or a gap of known length.
type Location struct {
	Kind  LocationKind `json:"kind"`
	Start int          `json:"start,omitempty"`
	End   int          `json:"end,omitempty"`
	Sub   []Location   `json:"sub,omitempty"`

	External string `json:"external,omitempty"`
	GapLen   int    `json:"gapLen,omitempty"`

	FivePrimePartial  bool `json:"fivePrimePartial,omitempty"`
	ThreePrimePartial bool `json:"threePrimePartial,omitempty"`
}

// leafCount returns the number of Range leaves under loc, and how many of
// them are reached through an odd number of Complement ancestors — used by
// IsComplement's majority vote.
func (loc Location) leafCount(underComplement bool) (total, complemented int) {
	switch loc.Kind {
	case ComplementLoc:
		for _, s := range loc.Sub {
			t, c := s.leafCount(!underComplement)
			total += t
			complemented += c
		}
	case Join, Order, Bond, OneOf:
		for _, s := range loc.Sub {
			t, c := s.leafCount(underComplement)
			total += t
			complemented += c
		}
	case Range, Between, External, Gap:
		total = 1
		if underComplement {
			complemented = 1
		}
	}
	return total, complemented
}

// IsComplement reports whether this location is predominantly reverse
// strand, decided by majority vote over leaf elements under Complement
// ancestry (spec.md §3's "Reverse strand is determined by majority-vote on
// leaf elements under complement").
func (loc Location) IsComplement() bool {
	total, complemented := loc.leafCount(false)
	if total == 0 {
		return false
	}
	return complemented*2 > total
}

// Bounds returns the minimal [start, end) span covering every Range/Between
// leaf in loc, ignoring External/Gap elements which have no coordinate in
// this sequence's own base array.
func (loc Location) Bounds() (start, end int, ok bool) {
	switch loc.Kind {
	case Range, Between:
		return loc.Start, loc.End, true
	case ComplementLoc:
		if len(loc.Sub) == 1 {
			return loc.Sub[0].Bounds()
		}
	case Join, Order, Bond, OneOf:
		first := true
		for _, s := range loc.Sub {
			ss, se, sok := s.Bounds()
			if !sok {
				continue
			}
			if first || ss < start {
				start = ss
			}
			if first || se > end {
				end = se
			}
			first = false
		}
		return start, end, !first
	}
	return 0, 0, false
}

// Feature is a named, located, qualified annotation on a Sequence.
type Feature struct {
	Key        string              `json:"key"`
	Location   Location            `json:"location"`
	Qualifiers map[string][]string `json:"qualifiers,omitempty"`
}

// IsComputed reports whether this feature was produced by
// UpdateComputedFeatures rather than imported, per spec.md §3's
// "gentle_generated" qualifier.
func (f Feature) IsComputed() bool {
	_, ok := f.Qualifiers["gentle_generated"]
	return ok
}

// Sequence is a single annotated nucleic-acid molecule.
type Sequence struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Bases       []byte   `json:"bases"`
	Topology    Topology `json:"topology"`
	Overhang    Overhang `json:"overhang"`
	Features    []Feature `json:"features,omitempty"`

	RestrictionSites []enzyme.RestrictionEnzymeSite `json:"restrictionSites,omitempty"`
	ORFs             []computed.ORF                 `json:"orfs,omitempty"`
}

// FromText builds a Sequence from a bare identifier and raw text, normalizing
// the text through the alphabet.
func FromText(id, text string) Sequence {
	s := Sequence{ID: id, Name: id, Bases: alphabet.Normalize([]byte(text))}
	s.UpdateComputedFeatures()
	return s
}

// FastaRecord is the minimal shape internal/fileio hands to FromFastaRecord:
// a FASTA record is just an identifier line and raw sequence text. Kept
// local to seq (rather than importing internal/fileio's richer parse
// result) so fileio can depend on seq without a cycle.
type FastaRecord struct {
	ID          string
	Description string
	Sequence    string
}

// FromFastaRecord builds a Sequence from a parsed FASTA record. FASTA
// carries no topology or feature information, so the result is always
// linear with no features (spec.md §4.4's LoadFile infers origin
// separately, from the caller's knowledge that the source was FASTA).
func FromFastaRecord(rec FastaRecord) Sequence {
	s := Sequence{
		ID:          rec.ID,
		Name:        rec.ID,
		Description: rec.Description,
		Bases:       alphabet.Normalize([]byte(rec.Sequence)),
		Topology:    Linear,
	}
	s.UpdateComputedFeatures()
	return s
}

// GenBankRecord is the minimal shape internal/fileio hands to
// FromGenBankRecord.
type GenBankRecord struct {
	ID          string
	Name        string
	Description string
	Sequence    string
	Circular    bool
	MoleculeType string
	Source       string
	Features     []Feature
}

// FromGenBankRecord builds a Sequence from a parsed GenBank record,
// preserving its imported features and topology.
func FromGenBankRecord(rec GenBankRecord) Sequence {
	s := Sequence{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Bases:       alphabet.Normalize([]byte(rec.Sequence)),
		Features:    append([]Feature(nil), rec.Features...),
	}
	if rec.Circular {
		s.Topology = Circular
	}
	s.UpdateComputedFeatures()
	return s
}

// Len returns the number of bases in the sequence.
func (s *Sequence) Len() int { return len(s.Bases) }

// IsCircular reports whether the sequence's topology is Circular.
func (s *Sequence) IsCircular() bool { return s.Topology == Circular }

// SetCircular changes the sequence's topology. Setting Circular fails when
// either end carries a non-blunt overhang (spec.md §4.2), since a circular
// molecule has no ends to be sticky.
func (s *Sequence) SetCircular(circular bool) error {
	if circular {
		if !s.Overhang.IsBlunt() {
			return fmt.Errorf("seq: cannot circularize %s: non-blunt overhang present", s.ID)
		}
		s.Topology = Circular
	} else {
		s.Topology = Linear
	}
	return nil
}

// GetRange returns the bases in [from, to). On a linear sequence this is a
// plain half-open slice and from/to must satisfy 0 <= from <= to <=
// Len(). On a circular sequence indices are taken modulo Len() and the
// range may wrap the origin exactly once (from > to wraps; from == to
// yields the whole molecule read starting at from).
func (s *Sequence) GetRange(from, to int) ([]byte, error) {
	n := s.Len()
	if n == 0 {
		if from == 0 && to == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("seq: range [%d,%d) out of bounds on empty sequence", from, to)
	}

	if !s.IsCircular() {
		if from < 0 || to < from || to > n {
			return nil, fmt.Errorf("seq: range [%d,%d) out of bounds for linear sequence of length %d", from, to, n)
		}
		out := make([]byte, to-from)
		copy(out, s.Bases[from:to])
		return out, nil
	}

	from = ((from % n) + n) % n
	to = ((to % n) + n) % n
	if from == to {
		out := make([]byte, n)
		copy(out, s.Bases[from:])
		copy(out[n-from:], s.Bases[:from])
		return out, nil
	}
	if from < to {
		out := make([]byte, to-from)
		copy(out, s.Bases[from:to])
		return out, nil
	}
	out := make([]byte, 0, (n-from)+to)
	out = append(out, s.Bases[from:]...)
	out = append(out, s.Bases[:to]...)
	return out, nil
}

// SetOverhang replaces the sequence's overhang record.
func (s *Sequence) SetOverhang(o Overhang) {
	s.Overhang = o
}

// UpdateComputedFeatures recomputes ORFs from the current bases/topology
// and replaces any feature list entries tagged gentle_generated with one
// ORF feature per ORF. It does not rescan restriction sites:
// RestrictionSites keeps whatever SetRestrictionSites last stored. It is
// idempotent: calling it twice in a row with no
// intervening mutation produces identical results (spec.md §4.2).
func (s *Sequence) UpdateComputedFeatures() {
	orfs := computed.FindORFs(s.Bases, s.IsCircular())
	s.ORFs = orfs

	kept := s.Features[:0]
	for _, f := range s.Features {
		if !f.IsComputed() {
			kept = append(kept, f)
		}
	}
	s.Features = kept

	for _, orf := range orfs {
		s.Features = append(s.Features, Feature{
			Key:      "ORF",
			Location: Location{Kind: Range, Start: orf.Start, End: orf.End},
			Qualifiers: map[string][]string{
				"gentle_generated": {"true"},
				"frame":            {fmt.Sprintf("%d", orf.Frame)},
			},
		})
	}
}

// SetRestrictionSites stores the result of a catalog-driven enzyme scan
// (such as enzyme.FindAllSites). Nothing else in this package writes
// RestrictionSites, and no code in this repository calls it.
func (s *Sequence) SetRestrictionSites(sites []enzyme.RestrictionEnzymeSite) {
	s.RestrictionSites = sites
}

// Clone returns a deep copy of the sequence, used by operations that derive
// a new sequence from an existing one without aliasing its byte slice.
func (s *Sequence) Clone() Sequence {
	out := *s
	out.Bases = append([]byte(nil), s.Bases...)
	out.Features = append([]Feature(nil), s.Features...)
	out.RestrictionSites = append([]enzyme.RestrictionEnzymeSite(nil), s.RestrictionSites...)
	out.ORFs = append([]computed.ORF(nil), s.ORFs...)
	return out
}
