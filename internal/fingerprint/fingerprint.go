/*
Package fingerprint computes content hashes of a sequence's bases, rotated
to a canonical start point when the sequence is circular so that two
representations of the same circular molecule starting at different offsets
hash identically.

Grounded on the teacher's GenericSequenceHash/Blake3SequenceHash (hash.go):
same crypto.Hash registry dispatch and rotate-before-hash behavior for
circular topology, generalized to take a bare base slice instead of an
AnnotatedSequence and to expose the algorithm as a name (for gentle hash's
-a flag) instead of a crypto.Hash constant.
*/
package fingerprint

import (
	"crypto"
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	_ "golang.org/x/crypto/blake2b"
	_ "golang.org/x/crypto/blake2s"
	_ "golang.org/x/crypto/ripemd160"
	_ "golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

var byName = map[string]crypto.Hash{
	"md5":         crypto.MD5,
	"sha1":        crypto.SHA1,
	"sha224":      crypto.SHA224,
	"sha256":      crypto.SHA256,
	"sha384":      crypto.SHA384,
	"sha512":      crypto.SHA512,
	"sha512_224":  crypto.SHA512_224,
	"sha512_256":  crypto.SHA512_256,
	"ripemd160":   crypto.RIPEMD160,
	"sha3_224":    crypto.SHA3_224,
	"sha3_256":    crypto.SHA3_256,
	"sha3_384":    crypto.SHA3_384,
	"sha3_512":    crypto.SHA3_512,
	"blake2s_256": crypto.BLAKE2s_256,
	"blake2b_256": crypto.BLAKE2b_256,
	"blake2b_384": crypto.BLAKE2b_384,
	"blake2b_512": crypto.BLAKE2b_512,
}

// BoothLeastRotation returns the starting offset of bases' lexicographically
// least rotation (Booth's algorithm).
func BoothLeastRotation(bases []byte) int {
	s := append(append([]byte{}, bases...), bases...)
	least := 0
	failure := make([]int, len(s))
	for i := range failure {
		failure[i] = -1
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		f := failure[i-least-1]
		for f != -1 && c != s[least+f+1] {
			if c < s[least+f+1] {
				least = i - f - 1
			}
			f = failure[f]
		}
		if c != s[least+f+1] {
			if c < s[least] {
				least = i
			}
			failure[i-least] = -1
		} else {
			failure[i-least] = f + 1
		}
	}
	return least
}

// Rotate returns bases rotated to its canonical (lexicographically least)
// starting point.
func Rotate(bases []byte) []byte {
	if len(bases) == 0 {
		return bases
	}
	offset := BoothLeastRotation(bases)
	doubled := append(append([]byte{}, bases...), bases...)
	return doubled[offset : offset+len(bases)]
}

// Hash hashes bases with the named algorithm, rotating to the canonical
// start first when circular is true so rotation alone never changes the
// digest. Algorithm names are case-insensitive; "blake3" is handled
// separately since lukechampine.com/blake3 predates the hash.Hash registry.
func Hash(bases []byte, circular bool, algorithm string) (string, error) {
	if circular {
		bases = Rotate(bases)
	}
	upper := strings.ToUpper(string(bases))

	if strings.EqualFold(algorithm, "blake3") {
		sum := blake3.Sum256([]byte(upper))
		return hex.EncodeToString(sum[:]), nil
	}

	h, ok := byName[strings.ToLower(algorithm)]
	if !ok {
		return "", fmt.Errorf("fingerprint: unknown algorithm %q", algorithm)
	}
	if !h.Available() {
		return "", fmt.Errorf("fingerprint: algorithm %q not linked", algorithm)
	}
	digest := h.New()
	io.WriteString(digest, upper)
	return hex.EncodeToString(digest.Sum(nil)), nil
}
