/*
Command gentle is a thin urfave/cli/v2 wrapper around internal/shell: it
either runs one line of the shell grammar (-e), replays a script file
(run), drops into an interactive REPL over stdin/stdout, or fingerprints a
sequence (hash). All engine logic lives in internal/; this file only wires
flags to it, the way poly/main.go separates argument parsing from
commands.go's actual command bodies.
*/
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/gentlelab/gentle/internal/engine"
	"github.com/gentlelab/gentle/internal/enzyme"
	"github.com/gentlelab/gentle/internal/fileio"
	"github.com/gentlelab/gentle/internal/fingerprint"
	"github.com/gentlelab/gentle/internal/shell"
)

func main() {
	os.Exit(run(os.Args))
}

// run is separated from main for debugging's sake, mirroring poly/main.go.
func run(args []string) int {
	app := application()
	if err := app.Run(args); err != nil {
		if coder, ok := err.(cli.ExitCoder); ok {
			fmt.Fprintln(os.Stderr, err)
			return coder.ExitCode()
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func application() *cli.App {
	return &cli.App{
		Name:  "gentle",
		Usage: "A deterministic, journaled DNA-cloning project engine.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "project",
				Usage: "Load this project file before running any commands.",
			},
			&cli.StringFlag{
				Name:  "enzymes",
				Value: "assets/enzymes.json",
				Usage: "Path to the tagged restriction-enzyme asset catalog.",
			},
			&cli.StringFlag{
				Name:    "exec",
				Aliases: []string{"e"},
				Usage:   "Run a single shell-grammar line and exit instead of entering the REPL.",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Replay a file of shell-grammar lines, one per line.",
				ArgsUsage: "SCRIPT",
				Action:    runScriptCommand,
			},
			{
				Name:  "hash",
				Usage: "Fingerprint a sequence's bases, rotated to a canonical start if circular.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "FASTA/GenBank file to hash (first record)."},
					&cli.StringFlag{Name: "bases", Usage: "Raw bases to hash instead of --file."},
					&cli.BoolFlag{Name: "circular", Usage: "Rotate to canonical start before hashing."},
					&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Value: "blake3", Usage: "md5, sha1, sha224, sha256, sha384, sha512, sha512_224, sha512_256, ripemd160, sha3_224/256/384/512, blake2s_256, blake2b_256/384/512, blake3."},
				},
				Action: hashCommand,
			},
		},
		Action: replCommand,
	}
}

func buildShell(c *cli.Context) (*shell.Shell, error) {
	data, err := fileio.ReadFile(c.String("enzymes"))
	if err != nil {
		return nil, fmt.Errorf("loading enzyme catalog: %w", err)
	}
	catalog, err := enzyme.LoadCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("loading enzyme catalog: %w", err)
	}

	state := engine.NewProject()
	if p := c.String("project"); p != "" {
		state, err = engine.LoadProject(p)
		if err != nil {
			return nil, fmt.Errorf("loading project: %w", err)
		}
	}

	return shell.New(engine.New(state, catalog)), nil
}

// exitCodeFor maps an Execute error onto spec.md §4.6's CLI exit codes: 0
// success, 1 any error, 2 unknown command.
func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if strings.HasPrefix(err.Error(), "InvalidInput: unknown command") {
		return 2
	}
	return 1
}

func printResponse(resp *shell.Response) {
	out, err := json.Marshal(resp)
	if err != nil {
		log.Fatalf("marshaling response: %v", err)
	}
	fmt.Println(string(out))
}

func replCommand(c *cli.Context) error {
	sh, err := buildShell(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if line := c.String("exec"); line != "" {
		resp, execErr := sh.Execute(line)
		if execErr != nil {
			return cli.Exit(execErr, exitCodeFor(execErr))
		}
		printResponse(resp)
		return nil
	}

	scanner := bufio.NewScanner(c.App.Reader)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		resp, execErr := sh.Execute(line)
		if execErr != nil {
			fmt.Fprintln(c.App.ErrWriter, execErr)
			continue
		}
		printResponse(resp)
	}
	if err := scanner.Err(); err != nil {
		return cli.Exit(fmt.Errorf("reading stdin: %w", err), 1)
	}
	return nil
}

func runScriptCommand(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit(fmt.Errorf("run requires exactly one SCRIPT path"), 1)
	}
	sh, err := buildShell(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		resp, execErr := sh.Execute(line)
		if execErr != nil {
			return cli.Exit(execErr, exitCodeFor(execErr))
		}
		printResponse(resp)
	}
	return nil
}

func hashCommand(c *cli.Context) error {
	var bases []byte
	circular := c.Bool("circular")

	switch {
	case c.String("bases") != "":
		bases = []byte(c.String("bases"))
	case c.String("file") != "":
		data, err := fileio.ReadFile(c.String("file"))
		if err != nil {
			return cli.Exit(err, 1)
		}
		detected, err := fileio.LoadAuto(c.String("file"), data)
		if err != nil {
			return cli.Exit(err, 1)
		}
		switch detected.Format {
		case "Fasta":
			if len(detected.Fasta) == 0 {
				return cli.Exit(fmt.Errorf("hash: file contained no records"), 1)
			}
			bases = []byte(detected.Fasta[0].Sequence)
		case "GenBank":
			if len(detected.GenBank) == 0 {
				return cli.Exit(fmt.Errorf("hash: file contained no records"), 1)
			}
			bases = []byte(detected.GenBank[0].Sequence)
			circular = circular || detected.GenBank[0].Circular
		}
	default:
		return cli.Exit(fmt.Errorf("hash requires --bases or --file"), 1)
	}

	digest, err := fingerprint.Hash(bases, circular, c.String("algorithm"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintln(c.App.Writer, digest)
	return nil
}
