/*
Package journal implements GENtle's append-only operation log: the
(run_id, Operation, OpResult) triples spec.md §3/§4.5 describe, with a
monotone op_id counter.

Grounded on the teacher's flat, JSON-friendly structs (e.g. io/genbank's
Meta/Reference records) rather than any teacher log type, since the
teacher has no equivalent append-only audit log; the shape here is new
code in the teacher's idiom (small exported structs, encoding/json tags,
no hidden mutable global state beyond the counter a Journal owns itself).
*/
package journal

import "fmt"

// OpResult is the record of one committed operation: its op id, the
// sequence ids it created or changed, its warnings and message. The
// journal itself never rejects an entry, it only records what the engine
// already decided.
type OpResult struct {
	OpID      string   `json:"opId"`
	Created   []string `json:"created,omitempty"`
	Changed   []string `json:"changed,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
	Message   string   `json:"message,omitempty"`
}

// Entry is a single committed journal record.
type Entry struct {
	RunID     string      `json:"runId"`
	Operation interface{} `json:"operation"`
	Result    OpResult    `json:"result"`
}

// Journal is an append-only log with a monotone op_id counter. Entries are
// never rewritten once committed (spec.md §4.5).
type Journal struct {
	entries []Entry
	nextOp  int
}

// New returns an empty Journal.
func New() *Journal {
	return &Journal{}
}

// NextOpID reserves and returns the next "op-N" identifier without
// committing an entry; the engine calls this before it knows whether the
// operation will succeed, then only appends via Append on success.
func (j *Journal) NextOpID() string {
	j.nextOp++
	return fmt.Sprintf("op-%d", j.nextOp)
}

// Append commits a new entry to the log.
func (j *Journal) Append(runID string, operation interface{}, result OpResult) {
	j.entries = append(j.entries, Entry{RunID: runID, Operation: operation, Result: result})
}

// Entries returns the full, ordered log. The returned slice is a copy; it
// must not be mutated to uphold the append-only invariant from outside the
// package.
func (j *Journal) Entries() []Entry {
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len reports how many entries have been committed.
func (j *Journal) Len() int { return len(j.entries) }
