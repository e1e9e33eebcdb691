package shell

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gentlelab/gentle/internal/engine"
)

// Shell holds the state one REPL/batch session runs against: the engine,
// plus a monotone run id counter (spec.md §5's "op_ids are monotone across
// all runs").
type Shell struct {
	Engine  *engine.Engine
	nextRun int
}

// New wraps eng for shell dispatch.
func New(eng *engine.Engine) *Shell {
	return &Shell{Engine: eng}
}

// Response is the JSON object Execute returns on success, shaped per
// spec.md §4.6: op sets Result, workflow sets Results, help and
// load/save set Message, capabilities and state-summary set Summary, and
// state-summary --diff sets both Summary and Message.
type Response struct {
	Result       *engine.OpResult  `json:"result,omitempty"`
	Results      []engine.OpResult `json:"results,omitempty"`
	Message      string            `json:"message,omitempty"`
	Summary      interface{}       `json:"summary,omitempty"`
	StateChanged bool              `json:"stateChanged"`
}

func (s *Shell) newRunID() string {
	s.nextRun++
	return fmt.Sprintf("run-%d", s.nextRun)
}

// Execute tokenizes and dispatches a single command line, returning the
// reply to print to stdout. Errors are returned as-is (typed
// engine.EngineError or a plain error); the caller renders them as
// spec.md §4.6's "CODE: message" string rather than as JSON.
func (s *Shell) Execute(line string) (*Response, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return &Response{Message: ""}, nil
	}

	cmd, args := tokens[0], tokens[1:]
	switch cmd {
	case "help":
		return &Response{Message: helpText}, nil
	case "capabilities":
		return &Response{Summary: Capabilities()}, nil
	case "state-summary":
		return s.stateSummaryCommand(args)
	case "load-project":
		return s.loadProject(args)
	case "save-project":
		return s.saveProject(args)
	case "op":
		return s.applyOp(args)
	case "workflow":
		return s.applyWorkflow(args)
	case "render-svg", "render-rna-svg", "render-lineage-svg", "render-pool-gel-svg":
		return nil, unsupportedCommand(cmd, "rendering is handled by an external GUI collaborator")
	case "ladders", "export-pool", "import-pool":
		return nil, unsupportedCommand(cmd, "pool/ladder interchange tooling is handled by an external collaborator")
	case "resources":
		return nil, unsupportedCommand(cmd, "REBASE/JASPAR sync is handled by an external collaborator")
	case "genomes", "helpers":
		return nil, unsupportedCommand(cmd, "genome preparation/BLAST is handled by an external background-worker collaborator")
	case "tracks":
		return nil, unsupportedCommand(cmd, "BED/BigWig track import is handled by an external GUI collaborator")
	default:
		return nil, fmt.Errorf("InvalidInput: unknown command %q", cmd)
	}
}

func unsupportedCommand(cmd, reason string) error {
	return fmt.Errorf("Unsupported: %s (%s)", cmd, reason)
}

const helpText = `GENtle core shell. Commands:
  help, capabilities, state-summary [--diff PREV_JSON]
  load-project PATH, save-project PATH
  op '<OP_JSON>'
  workflow '<WF_JSON>'
JSON payloads may be prefixed with @ to read from a file.
render-*, ladders, export-pool, import-pool, resources, genomes, helpers,
and tracks are surfaced by external collaborators and are not implemented
by this core.`

// resolveJSONArg returns raw JSON text, resolving a leading '@' into a file
// read per spec.md §4.6.
func resolveJSONArg(arg string) ([]byte, error) {
	if strings.HasPrefix(arg, "@") {
		data, err := os.ReadFile(arg[1:])
		if err != nil {
			return nil, fmt.Errorf("Io: %v", err)
		}
		return data, nil
	}
	return []byte(arg), nil
}

// stateSummaryCommand handles both `state-summary` and
// `state-summary --diff PREV_JSON`, the latter rendering a unified diff
// against a previously captured summary (spec.md §4.6's JSON-in/JSON-out
// shape extended with an @file-or-inline JSON argument, same as op/workflow).
func (s *Shell) stateSummaryCommand(args []string) (*Response, error) {
	curr := s.stateSummary()
	if len(args) == 0 {
		return &Response{Summary: curr}, nil
	}
	if len(args) != 2 || args[0] != "--diff" {
		return nil, fmt.Errorf("InvalidInput: state-summary accepts no arguments or --diff PREV_JSON")
	}
	prevJSON, err := resolveJSONArg(args[1])
	if err != nil {
		return nil, err
	}
	diff, err := diffSummary(prevJSON, curr)
	if err != nil {
		return nil, fmt.Errorf("InvalidInput: malformed previous state-summary JSON: %v", err)
	}
	return &Response{Summary: curr, Message: diff}, nil
}

func (s *Shell) loadProject(args []string) (*Response, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("InvalidInput: load-project requires exactly one PATH argument")
	}
	state, err := engine.LoadProject(args[0])
	if err != nil {
		return nil, err
	}
	s.Engine.State = state
	return &Response{Message: fmt.Sprintf("loaded project from %s", args[0]), StateChanged: true}, nil
}

func (s *Shell) saveProject(args []string) (*Response, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("InvalidInput: save-project requires exactly one PATH argument")
	}
	if err := s.Engine.State.SaveProject(args[0]); err != nil {
		return nil, err
	}
	return &Response{Message: fmt.Sprintf("saved project to %s", args[0])}, nil
}

func (s *Shell) applyOp(args []string) (*Response, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("InvalidInput: op requires exactly one JSON argument")
	}
	data, err := resolveJSONArg(args[0])
	if err != nil {
		return nil, err
	}
	op, err := engine.ParseOperation(data)
	if err != nil {
		return nil, err
	}
	result, err := s.Engine.Apply(s.newRunID(), op)
	if err != nil {
		return nil, err
	}
	return &Response{Result: &result, StateChanged: true}, nil
}

func (s *Shell) applyWorkflow(args []string) (*Response, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("InvalidInput: workflow requires exactly one JSON argument")
	}
	data, err := resolveJSONArg(args[0])
	if err != nil {
		return nil, err
	}
	var rawOps []json.RawMessage
	if err := json.Unmarshal(data, &rawOps); err != nil {
		return nil, fmt.Errorf("InvalidInput: malformed workflow JSON: %v", err)
	}
	ops := make([]engine.Operation, len(rawOps))
	for i, raw := range rawOps {
		op, err := engine.ParseOperation(raw)
		if err != nil {
			return nil, err
		}
		ops[i] = op
	}
	results, err := s.Engine.ApplyWorkflow(s.newRunID(), ops)
	if err != nil {
		return nil, err
	}
	return &Response{Results: results, StateChanged: true}, nil
}
