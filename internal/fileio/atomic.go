package fileio

import (
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to path by writing to a sibling temp file
// first and renaming it into place, so a crash or concurrent reader never
// observes a partially written file. Grounded on io/genbank and io/fasta's
// plain ioutil.WriteFile, hardened per spec.md §3's "saved atomically" for
// the project file (and reused here for GenBank/FASTA export, where the
// same guarantee is just as cheap to keep).
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return ioErr("%v", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return ioErr("%v", err)
	}
	if err := tmp.Close(); err != nil {
		return ioErr("%v", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return ioErr("%v", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return ioErr("%v", err)
	}
	return nil
}

// ReadFile reads path, wrapping any error as fileio's Io-kind error.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErr("%v", err)
	}
	return data, nil
}
