package enzyme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func bamHI() RestrictionEnzyme {
	return RestrictionEnzyme{Name: "BamHI", RecognitionSite: "GGATCC", CutOffset: 1, OverlapOffset: 4}
}

func TestIsPalindromic(t *testing.T) {
	assert.True(t, bamHI().IsPalindromic())
	assert.False(t, RestrictionEnzyme{Name: "BsaI", RecognitionSite: "GGTCTC"}.IsPalindromic())
}

func TestFindSitesLinear(t *testing.T) {
	bases := []byte("ATGGATCCGCATGGATCCGCATGGATCCGC")
	sites := FindSites(bases, false, bamHI(), 10)
	assert.Len(t, sites, 3)
	assert.Equal(t, 2, sites[0].Offset)
	assert.Equal(t, 12, sites[1].Offset)
	assert.Equal(t, 22, sites[2].Offset)
}

func TestFindSitesDroppedWhenOverMax(t *testing.T) {
	bases := []byte("ATGGATCCGCATGGATCCGCATGGATCCGC")
	assert.Nil(t, FindSites(bases, false, bamHI(), 2))
}

func TestFindSitesNonPalindromicBothStrands(t *testing.T) {
	// GAAGAC (BbsI) is not palindromic; its reverse complement is GTCTTC.
	enz := RestrictionEnzyme{Name: "BbsI", RecognitionSite: "GAAGAC", CutOffset: 8, OverlapOffset: 4}
	bases := []byte("AAAAGAAGACAAAAAAAAGTCTTCAAAA")
	sites := FindSites(bases, false, enz, 10)
	assert.Len(t, sites, 2)
	var strands []Strand
	for _, s := range sites {
		strands = append(strands, s.Strand)
	}
	assert.Contains(t, strands, Forward)
	assert.Contains(t, strands, Reverse)
}

func TestFindSitesCircularWrap(t *testing.T) {
	// "GGATCC" straddles the circular origin: tail "GG" + head "ATCC".
	bases := []byte("ATCCGCGG")
	sites := FindSites(bases, true, bamHI(), 10)
	assert.Len(t, sites, 1)
	assert.Equal(t, len(bases)-2, sites[0].Offset)
}

func TestDegenerateRecognitionSite(t *testing.T) {
	// AvaII-like: G G W C C (W = A or T)
	enz := RestrictionEnzyme{Name: "Test", RecognitionSite: "GGWCC", CutOffset: 1}
	bases := []byte("NNGGACCNNGGTCCNN")
	sites := FindSites(bases, false, enz, 10)
	assert.Len(t, sites, 2)
}

func TestCatalogByName(t *testing.T) {
	cat := NewCatalog([]RestrictionEnzyme{bamHI()})
	found, missing := cat.ByName([]string{"BamHI", "Imaginary"})
	assert.Len(t, found, 1)
	assert.Equal(t, []string{"Imaginary"}, missing)
}

func TestGroupKeys(t *testing.T) {
	sites := []RestrictionEnzymeSite{
		{Offset: 5, Enzyme: "BamHI"},
		{Offset: 5, Enzyme: "BglII"},
		{Offset: 9, Enzyme: "EcoRI"},
	}
	keys := GroupKeys(sites)
	assert.Len(t, keys, 2)
	assert.Equal(t, 2, keys[0].CutCount)
	assert.Equal(t, []string{"BamHI", "BglII"}, keys[0].Enzymes)
}
