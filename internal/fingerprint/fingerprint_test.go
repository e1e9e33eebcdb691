package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRotateIsCanonical(t *testing.T) {
	a := []byte("TTAACGT")
	b := []byte("AACGTTT") // a rotation of a
	assert.Equal(t, string(Rotate(a)), string(Rotate(b)))
}

func TestHashLinearIgnoresCase(t *testing.T) {
	h1, err := Hash([]byte("acgtacgt"), false, "sha256")
	assert.NoError(t, err)
	h2, err := Hash([]byte("ACGTACGT"), false, "sha256")
	assert.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestHashCircularRotationInvariant(t *testing.T) {
	h1, err := Hash([]byte("TTAACGT"), true, "blake3")
	assert.NoError(t, err)
	h2, err := Hash([]byte("AACGTTT"), true, "blake3")
	assert.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestHashUnknownAlgorithm(t *testing.T) {
	_, err := Hash([]byte("ACGT"), false, "does-not-exist")
	assert.Error(t, err)
}
