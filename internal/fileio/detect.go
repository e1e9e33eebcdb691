package fileio

import (
	"path/filepath"
	"strings"

	"github.com/gentlelab/gentle/internal/seq"
)

// Detected is the outcome of auto-detecting and parsing a sequence file:
// the records found plus which format matched.
type Detected struct {
	Format  string // "GenBank" or "Fasta"
	Fasta   []seq.FastaRecord
	GenBank []seq.GenBankRecord
}

// LoadAuto auto-detects GenBank vs FASTA from extension first (grounded on
// poly/commands.go's filepath.Ext dispatch), falling back to content
// sniffing (a LOCUS line, or a leading '>') when the extension is absent or
// unrecognized, per spec.md §4.4's "auto-detect GenBank or FASTA ... fails
// if the file parses as neither format".
func LoadAuto(path string, data []byte) (Detected, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gbk", ".gb", ".genbank":
		recs, err := ParseGenBank(data)
		if err != nil {
			return Detected{}, err
		}
		return Detected{Format: "GenBank", GenBank: recs}, nil
	case ".fasta", ".fa", ".fna":
		recs, err := ParseFasta(data)
		if err != nil {
			return Detected{}, err
		}
		return Detected{Format: "Fasta", Fasta: recs}, nil
	}

	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	switch {
	case strings.HasPrefix(trimmed, "LOCUS"):
		recs, err := ParseGenBank(data)
		if err != nil {
			return Detected{}, err
		}
		return Detected{Format: "GenBank", GenBank: recs}, nil
	case strings.HasPrefix(trimmed, ">"):
		recs, err := ParseFasta(data)
		if err != nil {
			return Detected{}, err
		}
		return Detected{Format: "Fasta", Fasta: recs}, nil
	}
	return Detected{}, ioErr("unrecognized file format: neither GenBank (no LOCUS line) nor FASTA (no leading '>')")
}
