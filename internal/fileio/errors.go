package fileio

import "fmt"

// FileError is fileio's own error type, kept separate from
// internal/engine's EngineError so this package has no dependency on
// engine (engine depends on fileio, not the reverse); callers that need
// spec.md §7's Io/Internal taxonomy map FileError.Kind themselves.
type FileError struct {
	Kind    string
	Message string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func ioErr(format string, args ...interface{}) error {
	return &FileError{Kind: "Io", Message: fmt.Sprintf(format, args...)}
}

func internalErr(format string, args ...interface{}) error {
	return &FileError{Kind: "Internal", Message: fmt.Sprintf(format, args...)}
}
