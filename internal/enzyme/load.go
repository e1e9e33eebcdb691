package enzyme

import (
	"encoding/json"
	"fmt"
)

// assetEntry mirrors the tagged shape assets/enzymes.json entries take
// (spec.md §6: "a list whose entries are tagged {type: restriction|protease,
// ...}"). internal/rebase produces this same shape on export.
type assetEntry struct {
	Type            string `json:"type"`
	Name            string `json:"name"`
	RecognitionSite string `json:"recognitionSite"`
	CutOffset       int    `json:"cutOffset"`
	OverlapOffset   int    `json:"overlapOffset"`
}

// LoadCatalog parses a tagged enzyme/motif asset file into a Catalog. Per
// spec.md §6 the engine rejects any entry missing a type tag; entries tagged
// "protease" are recognized but dropped, since this engine has no protease
// digest operation to feed them to.
func LoadCatalog(data []byte) (Catalog, error) {
	var entries []assetEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return Catalog{}, fmt.Errorf("enzyme: malformed asset file: %w", err)
	}

	var restriction []RestrictionEnzyme
	for i, e := range entries {
		if e.Type == "" {
			return Catalog{}, fmt.Errorf("enzyme: asset entry %d (%q) missing required \"type\"", i, e.Name)
		}
		if e.Type != "restriction" {
			continue
		}
		restriction = append(restriction, RestrictionEnzyme{
			Name:            e.Name,
			RecognitionSite: e.RecognitionSite,
			CutOffset:       e.CutOffset,
			OverlapOffset:   e.OverlapOffset,
		})
	}
	return NewCatalog(restriction), nil
}
