/*
Package rebase parses REBASE data dump format #31 (the format bioperl and
the teacher's io/rebase package consume) into the tagged enzyme records
internal/enzyme.Catalog expects, and can export a catalog to the
assets/enzymes.json shape spec.md §6 describes.

REBASE itself is synced by an external collaborator tool (spec.md §1); this
package only consumes a dump file that collaborator already produced, or a
small bundled sample used to seed assets/enzymes.json.
*/
package rebase

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/gentlelab/gentle/internal/enzyme"
)

// indirection points for tests, matching the teacher's bio/rebase
// mockable-function style.
var (
	readAllFn = io.ReadAll
	marshalFn = json.MarshalIndent
)

// Record is a single REBASE entry prior to conversion into an
// enzyme.RestrictionEnzyme (which only needs name/site/cut offsets).
type Record struct {
	Name                string   `json:"name"`
	Isoschizomers       []string `json:"isoschizomers,omitempty"`
	RecognitionSequence string   `json:"recognitionSequence"`
	MicroOrganism       string   `json:"microorganism,omitempty"`
}

var cutSiteRe = regexp.MustCompile(`\((-?\d+)/(-?\d+)\)`)

// Parse reads a REBASE #31 dump and returns the enzyme records it contains,
// keyed by enzyme name.
func Parse(r io.Reader) (map[string]Record, error) {
	raw, err := readAllFn(r)
	if err != nil {
		return nil, err
	}

	records := make(map[string]Record)
	var current Record
	haveCurrent := false
	flush := func() {
		if haveCurrent && current.Name != "" {
			records[current.Name] = current
		}
	}

	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(line, "<1>"):
			flush()
			current = Record{Name: strings.TrimPrefix(line, "<1>")}
			haveCurrent = true
		case strings.HasPrefix(line, "<2>"):
			if rest := strings.TrimPrefix(line, "<2>"); rest != "" {
				current.Isoschizomers = strings.Split(rest, ",")
			}
		case strings.HasPrefix(line, "<3>"):
			current.RecognitionSequence = strings.TrimPrefix(line, "<3>")
		case strings.HasPrefix(line, "<5>"):
			current.MicroOrganism = strings.TrimPrefix(line, "<5>")
		}
	}
	flush()

	if len(records) == 0 {
		return nil, fmt.Errorf("rebase: no enzyme entries found")
	}
	return records, nil
}

// Read opens path and parses it as a REBASE dump.
func Read(path string) (map[string]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// ToRestrictionEnzyme converts a REBASE record's recognition-sequence
// notation (e.g. "G^GATCC" or "GACGC(5/10)") into an
// enzyme.RestrictionEnzyme. Enzymes with ambiguous or missing cut
// coordinates (no caret, no parenthesised offset) are skipped, since
// spec.md's engine only models enzymes with a known cut/overlap offset.
func ToRestrictionEnzyme(r Record) (enzyme.RestrictionEnzyme, bool) {
	seq := r.RecognitionSequence
	if seq == "" {
		return enzyme.RestrictionEnzyme{}, false
	}

	if idx := strings.IndexByte(seq, '^'); idx >= 0 {
		site := strings.Replace(seq, "^", "", 1)
		overlap := len(site) - 2*idx
		if overlap < 0 {
			overlap = -overlap
		}
		return enzyme.RestrictionEnzyme{
			Name:            r.Name,
			RecognitionSite: site,
			CutOffset:       idx,
			OverlapOffset:   overlap,
		}, true
	}

	if m := cutSiteRe.FindStringSubmatch(seq); m != nil {
		site := strings.TrimSpace(cutSiteRe.ReplaceAllString(seq, ""))
		top, _ := strconv.Atoi(m[1])
		bottom, _ := strconv.Atoi(m[2])
		return enzyme.RestrictionEnzyme{
			Name:            r.Name,
			RecognitionSite: site,
			CutOffset:       len(site) + top,
			OverlapOffset:   abs(bottom - top),
		}, true
	}

	return enzyme.RestrictionEnzyme{}, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// assetEntry is the tagged shape assets/enzymes.json entries take, per
// spec.md §6 ("a list whose entries are tagged {type: ...}").
type assetEntry struct {
	Type            string `json:"type"`
	Name            string `json:"name"`
	RecognitionSite string `json:"recognitionSite"`
	CutOffset       int    `json:"cutOffset"`
	OverlapOffset   int    `json:"overlapOffset"`
}

// Export renders a set of restriction enzymes in the assets/enzymes.json
// tagged-entry shape.
func Export(enzymes []enzyme.RestrictionEnzyme) ([]byte, error) {
	entries := make([]assetEntry, 0, len(enzymes))
	for _, e := range enzymes {
		entries = append(entries, assetEntry{
			Type:            "restriction",
			Name:            e.Name,
			RecognitionSite: e.RecognitionSite,
			CutOffset:       e.CutOffset,
			OverlapOffset:   e.OverlapOffset,
		})
	}
	return marshalFn(entries, "", "  ")
}

// ConvertAll converts every parseable record from a REBASE dump into
// restriction enzymes, dropping (not erroring on) records whose cut site
// could not be determined.
func ConvertAll(records map[string]Record) []enzyme.RestrictionEnzyme {
	out := make([]enzyme.RestrictionEnzyme, 0, len(records))
	for _, r := range records {
		if e, ok := ToRestrictionEnzyme(r); ok {
			out = append(out, e)
		}
	}
	return out
}
