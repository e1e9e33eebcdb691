package engine

import (
	"encoding/json"

	"github.com/gentlelab/gentle/internal/fileio"
)

// knownProjectKeys are ProjectState's own top-level JSON keys; anything
// else present on load is stashed in Unknown and re-emitted on save
// (spec.md §6's forward-compatibility rule).
var knownProjectKeys = map[string]bool{
	"sequences":      true,
	"display":        true,
	"lineage":        true,
	"containerState": true,
	"parameters":     true,
	"metadata":       true,
}

// SaveProject serializes p to path as the single UTF-8 JSON document
// spec.md §6 describes, written atomically.
func (p *ProjectState) SaveProject(path string) error {
	known, err := json.Marshal(*p)
	if err != nil {
		return internalErr("SaveFile: %v", err)
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return internalErr("SaveFile: %v", err)
	}
	for k, v := range p.Unknown {
		if !knownProjectKeys[k] {
			merged[k] = v
		}
	}
	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return internalErr("SaveFile: %v", err)
	}
	if err := fileio.WriteFileAtomic(path, out, 0644); err != nil {
		return ioErrFrom(err)
	}
	return nil
}

// LoadProject reads a project file from path, tolerating missing keys
// (defaulted by NewProject's zero-value equivalents) and preserving any
// key this version of the engine doesn't recognize.
func LoadProject(path string) (*ProjectState, error) {
	data, err := fileio.ReadFile(path)
	if err != nil {
		return nil, ioErrFrom(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, invalidInput("LoadFile: malformed project JSON: %v", err)
	}

	p := NewProject()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, invalidInput("LoadFile: malformed project JSON: %v", err)
	}
	p.Unknown = make(map[string]json.RawMessage)
	for k, v := range raw {
		if !knownProjectKeys[k] {
			p.Unknown[k] = v
		}
	}
	p.Reconcile()
	return p, nil
}

// ioErrFrom adapts a fileio.FileError into an EngineError, preserving its
// Io/Internal kind; any other error (shouldn't happen, fileio always
// returns *FileError) is reported as Io.
func ioErrFrom(err error) *EngineError {
	if fe, ok := err.(*fileio.FileError); ok && fe.Kind == "Internal" {
		return internalErr("%s", fe.Message)
	}
	if fe, ok := err.(*fileio.FileError); ok {
		return newErr(Io, "%s", fe.Message)
	}
	return newErr(Io, "%v", err)
}
