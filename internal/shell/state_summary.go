package shell

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// StateSummary is the state-summary command's payload: counts and ids
// enough to orient a caller without dumping the whole ProjectState.
type StateSummary struct {
	SequenceCount  int      `json:"sequenceCount"`
	SequenceIDs    []string `json:"sequenceIds"`
	ContainerCount int      `json:"containerCount"`
	JournalLength  int      `json:"journalLength"`
	MaxFragments   int      `json:"maxFragmentsPerContainer"`
}

func (s *Shell) stateSummary() StateSummary {
	st := s.Engine.State
	ids := make([]string, 0, len(st.Sequences))
	for id := range st.Sequences {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return StateSummary{
		SequenceCount:  len(st.Sequences),
		SequenceIDs:    ids,
		ContainerCount: len(st.Containers.Containers),
		JournalLength:  s.Engine.Journal.Len(),
		MaxFragments:   st.Parameters.MaxFragmentsPerContainer,
	}
}

// diffSummary renders a unified diff between a previously captured
// StateSummary (as JSON) and the shell's current one, for
// state-summary --diff's debug path: a quick "what changed since I last
// looked" view without re-deriving it from the journal by hand.
func diffSummary(prevJSON []byte, curr StateSummary) (string, error) {
	var prev StateSummary
	if err := json.Unmarshal(prevJSON, &prev); err != nil {
		return "", err
	}

	prevText, err := json.MarshalIndent(prev, "", "  ")
	if err != nil {
		return "", err
	}
	currText, err := json.MarshalIndent(curr, "", "  ")
	if err != nil {
		return "", err
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(prevText)),
		B:        difflib.SplitLines(string(currText)),
		FromFile: "previous",
		ToFile:   "current",
		Context:  3,
	}
	out, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "(no change)", nil
	}
	return out, nil
}
