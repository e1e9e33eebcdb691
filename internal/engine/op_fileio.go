package engine

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gentlelab/gentle/internal/fileio"
	"github.com/gentlelab/gentle/internal/lineage"
	"github.com/gentlelab/gentle/internal/seq"
)

// applyLoadFile implements LoadFile per spec.md §4.4: auto-detects GenBank
// vs FASTA, creates one sequence per record named from the file stem
// (disambiguated, or overridden by AsID when there is exactly one record),
// and tags each with an inferred import Origin.
func (e *Engine) applyLoadFile(runID string, op *LoadFileOp) (OpResult, error) {
	data, err := fileio.ReadFile(op.Path)
	if err != nil {
		return OpResult{}, ioErrFrom(err)
	}

	detected, err := fileio.LoadAuto(op.Path, data)
	if err != nil {
		return OpResult{}, ioErrFrom(err)
	}

	stem := fileStem(op.Path)
	opID := e.Journal.NextOpID()
	var created []string

	switch detected.Format {
	case "Fasta":
		for i, rec := range detected.Fasta {
			if rec.ID == "" {
				rec.ID = stem
			}
			s := seq.FromFastaRecord(rec)
			newID := e.nextLoadID(op.AsID, stem, i, len(detected.Fasta))
			s.ID, s.Name = newID, newID
			e.State.putSequence(s)
			e.State.recordDerivation(newID, lineage.ImportedSynthetic, opID, runID, nil, clockFn())
			created = append(created, newID)
		}
	case "GenBank":
		for i, rec := range detected.GenBank {
			if rec.ID == "" {
				rec.ID = stem
			}
			s := seq.FromGenBankRecord(rec)
			newID := e.nextLoadID(op.AsID, stem, i, len(detected.GenBank))
			s.ID, s.Name = newID, newID
			e.State.putSequence(s)
			e.State.recordDerivation(newID, inferOrigin(rec), opID, runID, nil, clockFn())
			created = append(created, newID)
		}
	default:
		return OpResult{}, internalErr("LoadFile: unreachable format %q", detected.Format)
	}

	if len(created) == 0 {
		return OpResult{}, newErr(Io, "LoadFile: file parsed but contained no records")
	}
	return OpResult{OpID: opID, Created: created}, nil
}

// nextLoadID honors AsID only when the file holds exactly one record (a
// caller-supplied id can't sensibly apply to more than one); otherwise ids
// come from the file stem, index-suffixed past the first when there are
// multiple records, and disambiguated against existing ids either way.
func (e *Engine) nextLoadID(asID, stem string, index, total int) string {
	if asID != "" && total == 1 {
		return e.State.disambiguate(asID)
	}
	base := stem
	if index > 0 {
		base = stem + "_" + strconv.Itoa(index+1)
	}
	return e.State.disambiguate(base)
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// inferOrigin maps a parsed GenBank record's SOURCE/molecule-type fields
// onto spec.md §4.4's {Genomic, Cdna, Synthetic, Unknown} import
// classification.
func inferOrigin(rec seq.GenBankRecord) lineage.Origin {
	mol := strings.ToLower(rec.MoleculeType)
	source := strings.ToLower(rec.Source)
	switch {
	case strings.Contains(mol, "mrna") || strings.Contains(mol, "cdna"):
		return lineage.ImportedCdna
	case strings.Contains(source, "synthetic") || strings.Contains(mol, "synthetic"):
		return lineage.ImportedSynthetic
	case strings.Contains(mol, "genomic") || mol == "dna":
		return lineage.ImportedGenomic
	default:
		return lineage.ImportedUnknown
	}
}

// applySaveFile implements SaveFile per spec.md §4.4: writes seq_id to path
// in the requested format. SaveFile reads state but commits no lineage
// change, so it produces an OpResult with no Created ids.
func (e *Engine) applySaveFile(runID string, op *SaveFileOp) (OpResult, error) {
	s, err := e.State.getSequence(op.SeqID)
	if err != nil {
		return OpResult{}, err
	}

	var data []byte
	switch op.Format {
	case FormatFasta:
		data = fileio.BuildFasta(s)
	case FormatGenBank:
		built, err := fileio.BuildGenBank(s)
		if err != nil {
			return OpResult{}, ioErrFrom(err)
		}
		data = built
	default:
		return OpResult{}, invalidInput("SaveFile: unknown format %q", op.Format)
	}

	if err := fileio.WriteFileAtomic(op.Path, data, 0644); err != nil {
		return OpResult{}, ioErrFrom(err)
	}
	return OpResult{}, nil
}
