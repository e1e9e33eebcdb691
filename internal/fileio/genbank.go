package fileio

import (
	"strconv"
	"strings"

	"github.com/gentlelab/gentle/internal/seq"
	"github.com/gentlelab/gentle/io/genbank"
)

// ParseGenBank parses a GenBank flatfile (possibly holding several LOCUS
// entries) into records, converting io/genbank's Genbank/Feature/Location
// shapes into seq.GenBankRecord/seq.Feature/seq.Location.
func ParseGenBank(data []byte) ([]seq.GenBankRecord, error) {
	entries := genbank.ParseMulti(data)
	if len(entries) == 0 {
		return nil, ioErr("genbank: no LOCUS entries found")
	}
	out := make([]seq.GenBankRecord, len(entries))
	for i, gb := range entries {
		out[i] = fromGenbank(gb)
	}
	return out, nil
}

func fromGenbank(gb genbank.Genbank) seq.GenBankRecord {
	rec := seq.GenBankRecord{
		ID:           gb.Meta.Locus.Name,
		Name:         gb.Meta.Locus.Name,
		Description:  gb.Meta.Definition,
		Sequence:     gb.Sequence,
		Circular:     gb.Meta.Locus.Circular,
		MoleculeType: gb.Meta.Locus.MoleculeType,
		Source:       gb.Meta.Source,
	}
	rec.Features = make([]seq.Feature, len(gb.Features))
	for i, f := range gb.Features {
		rec.Features[i] = fromGenbankFeature(f)
	}
	return rec
}

func fromGenbankFeature(f genbank.Feature) seq.Feature {
	qualifiers := make(map[string][]string, len(f.Attributes))
	for k, v := range f.Attributes {
		qualifiers[k] = []string{v}
	}
	return seq.Feature{
		Key:        f.Type,
		Location:   fromGenbankLocation(f.Location),
		Qualifiers: qualifiers,
	}
}

// fromGenbankLocation converts a GenBank location tree into seq.Location.
// io/genbank models complement and join as nested single/multi-child
// SubLocations; seq.Location keeps Join and ComplementLoc as distinct
// explicit kinds, so a complement-wrapped join collapses to one
// ComplementLoc node whose single Sub is the Join node (complement wraps
// the whole joined location in GenBank location grammar, never each part
// individually when written as complement(join(...))).
func fromGenbankLocation(loc genbank.Location) seq.Location {
	if loc.Complement {
		inner := loc
		inner.Complement = false
		return seq.Location{
			Kind: seq.ComplementLoc,
			Sub:  []seq.Location{fromGenbankLocation(inner)},
		}
	}
	if loc.Join {
		sub := make([]seq.Location, len(loc.SubLocations))
		for i, s := range loc.SubLocations {
			sub[i] = fromGenbankLocation(s)
		}
		return seq.Location{Kind: seq.Join, Sub: sub}
	}
	return seq.Location{
		Kind:              seq.Range,
		Start:             loc.Start,
		End:               loc.End,
		FivePrimePartial:  loc.FivePrimePartial,
		ThreePrimePartial: loc.ThreePrimePartial,
	}
}

// BuildGenBank renders a sequence as a GenBank flatfile, converting
// seq.Feature/seq.Location back into io/genbank's shape before delegating
// to genbank.Build.
func BuildGenBank(s seq.Sequence) ([]byte, error) {
	gb := genbank.Genbank{Sequence: strings.ToLower(string(s.Bases))}
	gb.Meta.Locus.Name = s.ID
	gb.Meta.Locus.SequenceLength = strconv.Itoa(len(s.Bases))
	gb.Meta.Locus.SequenceCoding = "bp"
	gb.Meta.Locus.MoleculeType = "DNA"
	gb.Meta.Locus.GenbankDivision = "UNA"
	gb.Meta.Locus.ModificationDate = genbankNoDate
	if s.IsCircular() {
		gb.Meta.Locus.Circular = true
	} else {
		gb.Meta.Locus.Linear = true
	}
	gb.Meta.Definition = s.Description
	gb.Meta.Other = map[string]string{}

	for _, f := range s.Features {
		feature := toGenbankFeature(f)
		if err := gb.AddFeature(&feature); err != nil {
			return nil, internalErr("genbank: %v", err)
		}
	}

	built, err := genbank.Build(gb)
	if err != nil {
		return nil, ioErr("genbank: %v", err)
	}
	return built, nil
}

// genbankNoDate fills the LOCUS line's modification-date field when a
// sequence carries none; GenBank requires the field to be present and
// fixed-width.
const genbankNoDate = "01-JAN-1980"

func toGenbankFeature(f seq.Feature) genbank.Feature {
	attrs := make(map[string]string, len(f.Qualifiers))
	for k, vs := range f.Qualifiers {
		if len(vs) > 0 {
			attrs[k] = vs[0]
		}
	}
	return genbank.Feature{
		Type:       f.Key,
		Attributes: attrs,
		Location:   toGenbankLocation(f.Location),
	}
}

// toGenbankLocation is fromGenbankLocation's inverse for the subset of
// seq.Location kinds GenBank's grammar expresses (Range and Join, optionally
// complement-wrapped); Between/Order/Bond/OneOf/External/Gap have no GenBank
// flatfile representation and are flattened to their covering Range via
// Bounds, since a location computed in GENtle is still worth exporting even
// when its exact grammar has no GenBank spelling.
func toGenbankLocation(loc seq.Location) genbank.Location {
	switch loc.Kind {
	case seq.ComplementLoc:
		if len(loc.Sub) == 1 {
			inner := toGenbankLocation(loc.Sub[0])
			inner.Complement = true
			return inner
		}
	case seq.Join:
		sub := make([]genbank.Location, len(loc.Sub))
		for i, s := range loc.Sub {
			sub[i] = toGenbankLocation(s)
		}
		return genbank.Location{Join: true, SubLocations: sub}
	case seq.Range:
		return genbank.Location{
			Start:             loc.Start,
			End:               loc.End,
			FivePrimePartial:  loc.FivePrimePartial,
			ThreePrimePartial: loc.ThreePrimePartial,
		}
	}
	start, end, _ := loc.Bounds()
	return genbank.Location{Start: start, End: end}
}
