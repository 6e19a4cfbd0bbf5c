// Command atlaskl is the thin line-oriented command interpreter of
// spec.md §6's "CLI surface (external collaborator)": one command per
// line from stdin, dispatched to a handler, exactly as the teacher's
// examples/*.go are flat, one-scenario-per-file demonstrations rather
// than a framework-driven tool (no cobra, no urfave/cli — see
// SPEC_FULL.md §B).
//
// Since constructing a block from real root-datum/KGB data is out of
// scope (SPEC_FULL.md §F), `block <name>` loads one of a handful of
// named demo fixtures (block.DemoSingleton/DemoA1Split/DemoA2Split)
// instead of computing one; `block <file>` (any other argument) falls
// back to the spec-literal persist.ReadBlockFile report-only path.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

func main() {
	s := newSession(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]
		if cmd == "quit" || cmd == "exit" {
			os.Exit(0)
		}
		if err := dispatch(s, cmd, args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(exitCode(err))
		}
	}
	os.Exit(0)
}

// exitCode maps a handler error to spec.md §6's exit-code taxonomy: 1
// for an InputError (usage, parsing, bad/missing file), 2 for any other
// engine error.
func exitCode(err error) int {
	if isInputError(err) {
		return 1
	}
	return 2
}
