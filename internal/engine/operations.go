package engine

import (
	"encoding/json"
	"fmt"

	"github.com/gentlelab/gentle/internal/journal"
)

// Operation is the tagged sum spec.md §9 calls for: each variant carries
// exactly the fields it needs, dispatched via a Tag discriminator rather
// than runtime reflection. Every *Op type below implements Operation.
type Operation interface {
	opTag() string
}

// envelope is the wire shape of an Operation: {tag, ...fields}. Unmarshaling
// switches on tag to pick the concrete Go type. The op structs carry no tag
// field, so marshaling an Operation emits only its own fields.
type envelope struct {
	Tag string `json:"tag"`
}

// ParseOperation decodes a single tagged operation from JSON, per spec.md
// §6 ("Tag values are the operation names (PascalCase). Unknown variants
// fail with InvalidInput.").
func ParseOperation(data []byte) (Operation, error) {
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, invalidInput("malformed operation JSON: %v", err)
	}
	switch e.Tag {
	case "LoadFile":
		var op LoadFileOp
		return &op, decodeInto(data, &op)
	case "SaveFile":
		var op SaveFileOp
		return &op, decodeInto(data, &op)
	case "Digest":
		var op DigestOp
		return &op, decodeInto(data, &op)
	case "Ligation":
		var op LigationOp
		return &op, decodeInto(data, &op)
	case "MergeContainers":
		var op MergeContainersOp
		return &op, decodeInto(data, &op)
	case "Pcr":
		var op PcrOp
		return &op, decodeInto(data, &op)
	case "PcrAdvanced":
		var op PcrAdvancedOp
		return &op, decodeInto(data, &op)
	case "PcrMutagenesis":
		var op PcrMutagenesisOp
		return &op, decodeInto(data, &op)
	case "ExtractRegion":
		var op ExtractRegionOp
		return &op, decodeInto(data, &op)
	case "Reverse":
		var op ReverseOp
		return &op, decodeInto(data, &op)
	case "Complement":
		var op ComplementOp
		return &op, decodeInto(data, &op)
	case "ReverseComplement":
		var op ReverseComplementOp
		return &op, decodeInto(data, &op)
	case "Branch":
		var op BranchOp
		return &op, decodeInto(data, &op)
	case "SelectCandidate":
		var op SelectCandidateOp
		return &op, decodeInto(data, &op)
	case "FilterByMolecularWeight":
		var op FilterByMolecularWeightOp
		return &op, decodeInto(data, &op)
	case "SetTopology":
		var op SetTopologyOp
		return &op, decodeInto(data, &op)
	case "RecomputeFeatures":
		var op RecomputeFeaturesOp
		return &op, decodeInto(data, &op)
	case "SetDisplayVisibility":
		var op SetDisplayVisibilityOp
		return &op, decodeInto(data, &op)
	case "SetParameter":
		var op SetParameterOp
		return &op, decodeInto(data, &op)
	default:
		return nil, invalidInput("unknown operation tag %q", e.Tag)
	}
}

func decodeInto(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return invalidInput("malformed operation JSON: %v", err)
	}
	return nil
}

// --- operation variants ------------------------------------------------

type LoadFileOp struct {
	Path string `json:"path"`
	AsID string `json:"asId,omitempty"`
}

func (LoadFileOp) opTag() string { return "LoadFile" }

// FileFormat names the two file formats LoadFile/SaveFile understand.
type FileFormat string

const (
	FormatGenBank FileFormat = "GenBank"
	FormatFasta   FileFormat = "Fasta"
)

type SaveFileOp struct {
	SeqID  string     `json:"seqId"`
	Path   string     `json:"path"`
	Format FileFormat `json:"format"`
}

func (SaveFileOp) opTag() string { return "SaveFile" }

type DigestOp struct {
	Input         string   `json:"input"`
	Enzymes       []string `json:"enzymes"`
	OutputPrefix  string   `json:"outputPrefix,omitempty"`
}

func (DigestOp) opTag() string { return "Digest" }

// LigationProtocol selects which end-compatibility rule Ligation applies.
type LigationProtocol string

const (
	ProtocolBlunt  LigationProtocol = "Blunt"
	ProtocolSticky LigationProtocol = "Sticky"
)

type LigationOp struct {
	Inputs                []string         `json:"inputs"`
	Protocol              LigationProtocol `json:"protocol"`
	CircularizeIfPossible bool             `json:"circularizeIfPossible"`
	OutputPrefix          string           `json:"outputPrefix,omitempty"`
	OutputID              string           `json:"outputId,omitempty"`
	Unique                bool             `json:"unique,omitempty"`
}

func (LigationOp) opTag() string { return "Ligation" }

type MergeContainersOp struct {
	Inputs       []string `json:"inputs"`
	OutputPrefix string   `json:"outputPrefix,omitempty"`
}

func (MergeContainersOp) opTag() string { return "MergeContainers" }

type PcrOp struct {
	Template string `json:"template"`
	Forward  string `json:"forward"`
	Reverse  string `json:"reverse"`
	OutputID string `json:"outputId,omitempty"`
	Unique   bool   `json:"unique,omitempty"`
}

func (PcrOp) opTag() string { return "Pcr" }

// LibraryMode selects how PrimerSpec's degenerate positions are expanded.
type LibraryMode string

const (
	LibraryEnumerate LibraryMode = "Enumerate"
	LibrarySample    LibraryMode = "Sample"
)

// PrimerSpec is one primer in a PcrAdvanced/PcrMutagenesis call.
type PrimerSpec struct {
	Sequence               string      `json:"sequence"`
	AnnealLen              int         `json:"annealLen"`
	MaxMismatches          int         `json:"maxMismatches"`
	Require3PrimeExactBases int        `json:"require3PrimeExactBases"`
	LibraryMode            LibraryMode `json:"libraryMode"`
	MaxVariants            int         `json:"maxVariants"`
	SampleSeed             uint64      `json:"sampleSeed,omitempty"`
}

type PcrAdvancedOp struct {
	Template string     `json:"template"`
	Forward  PrimerSpec `json:"forward"`
	Reverse  PrimerSpec `json:"reverse"`
	OutputPrefix string `json:"outputPrefix,omitempty"`
	OutputID     string `json:"outputId,omitempty"`
	Unique       bool   `json:"unique,omitempty"`
}

func (PcrAdvancedOp) opTag() string { return "PcrAdvanced" }

// Mutation is a single requested base change: the template must currently
// carry RefBase at Position, and the engine checks whether a primer
// realizes AltBase there.
type Mutation struct {
	Position int  `json:"position"`
	RefBase  byte `json:"refBase"`
	AltBase  byte `json:"altBase"`
}

type PcrMutagenesisOp struct {
	Template              string     `json:"template"`
	Forward               PrimerSpec `json:"forward"`
	Reverse               PrimerSpec `json:"reverse"`
	Mutations             []Mutation `json:"mutations"`
	RequireAllMutations   bool       `json:"requireAllMutations,omitempty"`
	OutputPrefix          string     `json:"outputPrefix,omitempty"`
	OutputID              string     `json:"outputId,omitempty"`
	Unique                bool       `json:"unique,omitempty"`
}

func (PcrMutagenesisOp) opTag() string { return "PcrMutagenesis" }

type ExtractRegionOp struct {
	Input    string `json:"input"`
	From     int    `json:"from"`
	To       int    `json:"to"`
	OutputID string `json:"outputId,omitempty"`
}

func (ExtractRegionOp) opTag() string { return "ExtractRegion" }

type ReverseOp struct {
	Input    string `json:"input"`
	OutputID string `json:"outputId,omitempty"`
}

func (ReverseOp) opTag() string { return "Reverse" }

type ComplementOp struct {
	Input    string `json:"input"`
	OutputID string `json:"outputId,omitempty"`
}

func (ComplementOp) opTag() string { return "Complement" }

type ReverseComplementOp struct {
	Input    string `json:"input"`
	OutputID string `json:"outputId,omitempty"`
}

func (ReverseComplementOp) opTag() string { return "ReverseComplement" }

type BranchOp struct {
	Input    string `json:"input"`
	OutputID string `json:"outputId,omitempty"`
}

func (BranchOp) opTag() string { return "Branch" }

type SelectCandidateOp struct {
	Input     string `json:"input"`
	Criterion string `json:"criterion"`
	OutputID  string `json:"outputId,omitempty"`
}

func (SelectCandidateOp) opTag() string { return "SelectCandidate" }

type FilterByMolecularWeightOp struct {
	Inputs       []string `json:"inputs"`
	MinBp        int      `json:"minBp"`
	MaxBp        int      `json:"maxBp"`
	Error        float64  `json:"error"`
	Unique       bool     `json:"unique,omitempty"`
	OutputPrefix string   `json:"outputPrefix,omitempty"`
}

func (FilterByMolecularWeightOp) opTag() string { return "FilterByMolecularWeight" }

type SetTopologyOp struct {
	Input    string `json:"input"`
	Circular bool   `json:"circular"`
}

func (SetTopologyOp) opTag() string { return "SetTopology" }

type RecomputeFeaturesOp struct {
	Input string `json:"input"`
}

func (RecomputeFeaturesOp) opTag() string { return "RecomputeFeatures" }

type SetDisplayVisibilityOp struct {
	Target  DisplayTarget `json:"target"`
	Visible bool          `json:"visible"`
}

func (SetDisplayVisibilityOp) opTag() string { return "SetDisplayVisibility" }

type SetParameterOp struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func (SetParameterOp) opTag() string { return "SetParameter" }

// OpResult mirrors journal.OpResult; the engine package re-exports the type
// here so callers need not import internal/journal to read a result.
type OpResult = journal.OpResult

// describeOp renders a short label for error/warning messages.
func describeOp(op Operation) string {
	return fmt.Sprintf("%s", op.opTag())
}
