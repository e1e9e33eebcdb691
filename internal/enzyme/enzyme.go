/*
Package enzyme models restriction enzymes and finds their recognition sites
in a sequence, including degenerate (IUPAC) recognition patterns.

The scanning approach is grounded on the teacher's clone.CutWithEnzyme, which
precompiles a forward and (for non-palindromic enzymes) a reverse regexp
per enzyme and scans both. Because REBASE recognition sequences routinely
contain IUPAC ambiguity codes (R, Y, W, ...), a literal regexp can't express
them, so here each recognition pattern is matched position-by-position
against the alphabet mask instead of compiled to a regexp.
*/
package enzyme

import (
	"sort"

	"github.com/gentlelab/gentle/internal/alphabet"
)

// RestrictionEnzyme is a single named restriction enzyme: its recognition
// pattern (possibly degenerate), where it cuts relative to the start of the
// recognition site on the top strand, how far the two cut points are offset
// from each other (the overhang length), and whether its site is
// palindromic (pattern == reverse-complement(pattern)).
type RestrictionEnzyme struct {
	Name            string `json:"name"`
	RecognitionSite string `json:"recognitionSite"`
	CutOffset       int    `json:"cutOffset"`
	OverlapOffset   int    `json:"overlapOffset"`
}

// IsPalindromic reports whether the enzyme's recognition site equals its
// own reverse complement.
func (e RestrictionEnzyme) IsPalindromic() bool {
	site := []byte(e.RecognitionSite)
	return string(alphabet.ReverseComplement(site)) == e.RecognitionSite
}

// Strand identifies which strand a restriction site was found on.
type Strand int

const (
	Forward Strand = iota
	Reverse
)

// RestrictionEnzymeSite is a single hit: the recognition site's start offset
// on the (possibly doubled, for circular search) top-strand coordinate
// space, the enzyme that produced it, and the strand it was found on.
type RestrictionEnzymeSite struct {
	Offset int               `json:"offset"`
	Enzyme string            `json:"enzyme"`
	Strand Strand            `json:"strand"`
	Cut    int               `json:"cut"`
}

// RestrictionEnzymeKey groups sites whose recognition sites start at the same
// offset, for display purposes (spec.md §3); CutCount is how many sites share
// that offset. Cut positions and overhang lengths are not compared.
type RestrictionEnzymeKey struct {
	Position  int      `json:"position"`
	CutCount  int      `json:"cutCount"`
	Enzymes   []string `json:"enzymes"`
}

// Catalog is an immutable, process-wide lookup table of known enzymes,
// keyed by name. Catalogs are read-only once built (spec.md §5's "immutable
// process-wide singleton").
type Catalog struct {
	byName map[string]RestrictionEnzyme
}

// NewCatalog builds a Catalog from a slice of enzymes.
func NewCatalog(enzymes []RestrictionEnzyme) Catalog {
	byName := make(map[string]RestrictionEnzyme, len(enzymes))
	for _, e := range enzymes {
		byName[e.Name] = e
	}
	return Catalog{byName: byName}
}

// ByName returns the subset of names present in the catalog, in the same
// relative order they were requested, along with the names that were not
// found. Lookups are case-sensitive, per spec.md §4.3.
func (c Catalog) ByName(names []string) (found []RestrictionEnzyme, missing []string) {
	for _, name := range names {
		if e, ok := c.byName[name]; ok {
			found = append(found, e)
		} else {
			missing = append(missing, name)
		}
	}
	return found, missing
}

// Get returns a single enzyme by name.
func (c Catalog) Get(name string) (RestrictionEnzyme, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// Len reports how many enzymes the catalog holds.
func (c Catalog) Len() int { return len(c.byName) }

// matchesAt reports whether pattern matches bases starting at position pos,
// honoring IUPAC degeneracy on both sides (a degenerate base in either the
// pattern or the template is a match if their masks intersect).
func matchesAt(bases, pattern []byte, pos int) bool {
	if pos < 0 || pos+len(pattern) > len(bases) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		if !alphabet.Intersects(bases[pos+i], pattern[i]) {
			return false
		}
	}
	return true
}

// scan finds every start offset in bases where pattern matches, linear scan
// (bases is expected to already be the doubled-over circular search space
// when topology is circular, as in the teacher's clone.CutWithEnzyme).
func scan(bases, pattern []byte) []int {
	var hits []int
	for pos := 0; pos+len(pattern) <= len(bases); pos++ {
		if matchesAt(bases, pattern, pos) {
			hits = append(hits, pos)
		}
	}
	return hits
}

// FindSites returns at most max hits for a single enzyme against bases. If
// the true hit count exceeds max, the enzyme's contribution is dropped
// entirely (spec.md §4.3: "not truncated, to avoid biasing displays").
// Palindromic enzymes are only scanned on the forward strand since a
// reverse-strand hit would coincide with a forward-strand hit at the same
// position; non-palindromic enzymes are scanned on both strands.
func FindSites(bases []byte, circular bool, e RestrictionEnzyme, max int) []RestrictionEnzymeSite {
	searchSpace := bases
	if circular {
		searchSpace = append(append([]byte{}, bases...), bases...)
	}

	pattern := []byte(e.RecognitionSite)
	palindromic := e.IsPalindromic()

	var sites []RestrictionEnzymeSite
	for _, offset := range scan(searchSpace, pattern) {
		// A hit starting in the duplicated tail (circular search only) is a
		// rotation of one already found starting in [0, len(bases)).
		if offset >= len(bases) {
			continue
		}
		sites = append(sites, RestrictionEnzymeSite{
			Offset: offset,
			Enzyme: e.Name,
			Strand: Forward,
			Cut:    offset + e.CutOffset,
		})
	}

	if !palindromic {
		revPattern := alphabet.ReverseComplement(pattern)
		for _, offset := range scan(searchSpace, revPattern) {
			if offset >= len(bases) {
				continue
			}
			cut := offset + len(pattern) - e.CutOffset
			sites = append(sites, RestrictionEnzymeSite{
				Offset: offset,
				Enzyme: e.Name,
				Strand: Reverse,
				Cut:    cut,
			})
		}
	}

	sort.SliceStable(sites, func(i, j int) bool { return sites[i].Offset < sites[j].Offset })

	if len(sites) > max {
		return nil
	}
	return sites
}

// FindAllSites runs FindSites for every enzyme in enzymes against bases and
// concatenates the results, sorted by offset. It scans one enzyme after
// another and is deterministic. The digest in internal/engine does not call
// it; it calls FindSites once per enzyme itself, also sequentially.
func FindAllSites(bases []byte, circular bool, enzymes []RestrictionEnzyme, max int) []RestrictionEnzymeSite {
	var all []RestrictionEnzymeSite
	for _, e := range enzymes {
		all = append(all, FindSites(bases, circular, e, max)...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Offset < all[j].Offset })
	return all
}

// GroupKeys collapses sites sharing a recognition-site offset into one
// RestrictionEnzymeKey per offset, ordered by offset, with the enzyme names
// sorted and counted, for compact display (spec.md §3).
func GroupKeys(sites []RestrictionEnzymeSite) []RestrictionEnzymeKey {
	byPos := make(map[int][]string)
	var order []int
	for _, s := range sites {
		if _, ok := byPos[s.Offset]; !ok {
			order = append(order, s.Offset)
		}
		byPos[s.Offset] = append(byPos[s.Offset], s.Enzyme)
	}
	sort.Ints(order)
	keys := make([]RestrictionEnzymeKey, 0, len(order))
	for _, pos := range order {
		names := byPos[pos]
		sort.Strings(names)
		keys = append(keys, RestrictionEnzymeKey{
			Position: pos,
			CutCount: len(names),
			Enzymes:  names,
		})
	}
	return keys
}
