package shell

// operationTags lists every Operation variant engine.ParseOperation
// accepts, kept in sync by hand with internal/engine/operations.go's
// switch (spec.md §6: "exactly the variants listed in §4.4").
var operationTags = []string{
	"LoadFile", "SaveFile",
	"Digest", "Ligation", "MergeContainers",
	"Pcr", "PcrAdvanced", "PcrMutagenesis",
	"ExtractRegion", "Reverse", "Complement", "ReverseComplement", "Branch",
	"SelectCandidate", "FilterByMolecularWeight",
	"SetTopology", "RecomputeFeatures", "SetDisplayVisibility", "SetParameter",
}

// unsupportedCommands lists shell-grammar commands spec.md §4.6 names that
// this core doesn't implement itself, because spec.md §1 assigns them to
// external collaborators (GUI rendering, BLAST/genome prep, REBASE/JASPAR
// sync, agent bridge).
var unsupportedCommands = []string{
	"render-svg", "render-rna-svg", "render-lineage-svg", "render-pool-gel-svg",
	"ladders", "export-pool", "import-pool",
	"resources", "genomes", "helpers", "tracks",
}

// CapabilitiesInfo is the capabilities command's summary payload.
type CapabilitiesInfo struct {
	Operations    []string `json:"operations"`
	Commands      []string `json:"commands"`
	Unimplemented []string `json:"unimplementedByDesign"`
}

// Capabilities reports what operations and commands this shell accepts.
func Capabilities() CapabilitiesInfo {
	return CapabilitiesInfo{
		Operations:    operationTags,
		Commands:      []string{"help", "capabilities", "state-summary", "load-project", "save-project", "op", "workflow"},
		Unimplemented: unsupportedCommands,
	}
}
