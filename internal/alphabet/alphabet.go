/*
Package alphabet implements the IUPAC nucleic-acid alphabet.

Every concrete base is represented as a 4-bit mask over {A,C,G,T}, with U
folded onto T. Degenerate letters (R, Y, W, S, K, M, B, D, H, V, N) are the
union of two or more concrete-base masks. Complementing a letter is a
bitwise operation over that mask, which is what makes reverse-complement an
involution regardless of how degenerate the input is.
*/
package alphabet

import "sort"

// Letter is a single IUPAC nucleic-acid symbol, always stored upper-case.
type Letter = byte

// mask bits, one per concrete base.
const (
	bitA uint8 = 1 << iota
	bitC
	bitG
	bitT
)

var maskOf = buildMaskTable()
var letterOfMask = buildReverseTable()

func buildMaskTable() [256]uint8 {
	var t [256]uint8
	set := func(letters string, mask uint8) {
		for i := 0; i < len(letters); i++ {
			t[letters[i]] = mask
			t[letters[i]+32] = mask // lower-case alias
		}
	}
	set("A", bitA)
	set("C", bitC)
	set("G", bitG)
	set("T", bitT)
	set("U", bitT)
	set("W", bitA|bitT)
	set("S", bitC|bitG)
	set("M", bitA|bitC)
	set("K", bitG|bitT)
	set("R", bitA|bitG)
	set("Y", bitC|bitT)
	set("B", bitC|bitG|bitT)
	set("D", bitA|bitG|bitT)
	set("H", bitA|bitC|bitT)
	set("V", bitA|bitC|bitG)
	set("N", bitA|bitC|bitG|bitT)
	return t
}

// buildReverseTable maps every mask value back to its canonical upper-case
// IUPAC letter. Masks that correspond to more than one conventional symbol
// (there are none in the standard table) would collide; the IUPAC table is
// exactly invertible so this is safe.
func buildReverseTable() map[uint8]Letter {
	canon := []Letter{'A', 'C', 'G', 'T', 'W', 'S', 'M', 'K', 'R', 'Y', 'B', 'D', 'H', 'V', 'N'}
	m := make(map[uint8]Letter, len(canon))
	for _, l := range canon {
		m[maskOf[l]] = l
	}
	return m
}

// IsValid reports whether letter is a member of the IUPAC nucleic-acid
// alphabet (concrete or degenerate), case-insensitive.
func IsValid(letter byte) bool {
	return maskOf[letter] != 0
}

// complementMask flips A<->T and C<->G bits, leaving the rest of the mask
// untouched; this single operation reproduces every pairing spec.md names
// (A<->T, C<->G, R<->Y, K<->M, B<->V, D<->H, S<->S, W<->W, N<->N) because
// each of those is just the bitwise complement-of-bases applied to a union.
func complementMask(mask uint8) uint8 {
	var out uint8
	if mask&bitA != 0 {
		out |= bitT
	}
	if mask&bitT != 0 {
		out |= bitA
	}
	if mask&bitC != 0 {
		out |= bitG
	}
	if mask&bitG != 0 {
		out |= bitC
	}
	return out
}

// Complement returns the complementary IUPAC letter for letter. Invalid
// input bytes are returned unchanged.
func Complement(letter byte) byte {
	mask := maskOf[letter]
	if mask == 0 {
		return letter
	}
	comp := letterOfMask[complementMask(mask)]
	if letter >= 'a' && letter <= 'z' {
		return comp + 32
	}
	return comp
}

// ReverseComplement returns the reverse complement of bases. It is an
// involution: ReverseComplement(ReverseComplement(b)) == b byte-for-byte.
func ReverseComplement(bases []byte) []byte {
	out := make([]byte, len(bases))
	n := len(bases)
	for i, b := range bases {
		out[n-1-i] = Complement(b)
	}
	return out
}

// concreteLetters maps each mask bit back to its base letter, in a fixed
// A,C,G,T order so Expand is deterministic.
var concreteLetters = []struct {
	bit    uint8
	letter Letter
}{
	{bitA, 'A'},
	{bitC, 'C'},
	{bitG, 'G'},
	{bitT, 'T'},
}

// Expand returns the ordered set of concrete bases (A, C, G, or T) that
// letter can stand for. Invalid letters expand to nothing.
func Expand(letter byte) []Letter {
	mask := maskOf[letter]
	var out []Letter
	for _, cl := range concreteLetters {
		if mask&cl.bit != 0 {
			out = append(out, cl.letter)
		}
	}
	return out
}

// Intersects reports whether two IUPAC letters can ever refer to the same
// concrete base — the core test used when matching a degenerate
// restriction-enzyme recognition site against a concrete template position.
func Intersects(a, b byte) bool {
	return maskOf[a]&maskOf[b] != 0
}

// Normalize upper-cases text, strips ASCII whitespace, and replaces any
// byte that is not a member of the IUPAC alphabet with 'N'. U is left as U
// here; callers that want DNA semantics call NormalizeDNA instead.
func Normalize(text []byte) []byte {
	out := make([]byte, 0, len(text))
	for _, b := range text {
		switch b {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			continue
		}
		if b >= 'a' && b <= 'z' {
			b -= 32
		}
		if !IsValid(b) {
			b = 'N'
		}
		out = append(out, b)
	}
	return out
}

// NormalizeDNA is Normalize with the additional DNA-intent rule U -> T.
func NormalizeDNA(text []byte) []byte {
	out := Normalize(text)
	for i, b := range out {
		if b == 'U' {
			out[i] = 'T'
		}
	}
	return out
}

// ExpandPrimer returns the Cartesian product of Expand applied to every
// position of a (possibly degenerate) primer sequence, i.e. every concrete
// oligo the degenerate primer could represent. Results are returned in
// lexicographic order for determinism.
func ExpandPrimer(primer []byte) [][]byte {
	options := make([][]Letter, len(primer))
	total := 1
	for i, letter := range primer {
		opts := Expand(letter)
		if len(opts) == 0 {
			opts = []Letter{letter}
		}
		options[i] = opts
		total *= len(opts)
	}

	variants := make([][]byte, 0, total)
	idx := make([]int, len(primer))
	for {
		variant := make([]byte, len(primer))
		for i, opts := range options {
			variant[i] = opts[idx[i]]
		}
		variants = append(variants, variant)

		pos := len(idx) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(options[pos]) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}
	sort.Slice(variants, func(i, j int) bool {
		return string(variants[i]) < string(variants[j])
	})
	return variants
}

// VariantCount returns the size of the Cartesian product ExpandPrimer would
// build, without materialising it — used to cheaply enforce max_variants
// caps before expansion.
func VariantCount(primer []byte) int {
	total := 1
	for _, letter := range primer {
		n := len(Expand(letter))
		if n == 0 {
			n = 1
		}
		total *= n
	}
	return total
}
