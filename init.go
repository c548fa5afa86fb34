package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	sentinelStart = "<!-- algomint:start -->"
	sentinelEnd   = "<!-- algomint:end -->"
)

// runInit implements the `algomint init` subcommand, which writes (or updates)
// an algomint usage section in a CLAUDE.md file.
func runInit(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("algomint init", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var dryRun bool
	fs.BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying the file")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: algomint init [flags] [path-to-CLAUDE.md]

Write an algomint usage section to a CLAUDE.md file. The section is wrapped in
sentinel comments so it can be updated in place on subsequent runs without
touching surrounding content. Creates the file if it does not exist.

path-to-CLAUDE.md defaults to ./CLAUDE.md.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	section := generateSection()

	// --dry-run with no path: just print the section itself.
	if dryRun && fs.NArg() == 0 {
		_, _ = fmt.Fprintln(stdout, section)
		return nil
	}

	path := "CLAUDE.md"
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	existing, _ := os.ReadFile(path)
	updated := applySection(string(existing), section)

	if dryRun {
		_, _ = fmt.Fprint(stdout, updated)
		return nil
	}

	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(stderr, "wrote algomint section to %s\n", path)
	return nil
}

// generateSection returns the full sentinel-wrapped algomint documentation block.
func generateSection() string {
	body := `## algomint — Contract Structure Analysis

Run ` + "`algomint`" + ` via the Bash tool before modifying any algopy smart contract.
It produces the contract's state variables, methods, call graph, storage access
map, and security notes, which replaces the need to reconstruct the contract's
architecture by reading it top to bottom.

**Availability:** Check with ` + "`algomint --version`" + ` first; skip gracefully if
not found.

**Run it:**
` + "```" + `bash
algomint contract.py                         # single contract, JSON output
algomint -f toon contract.py                 # compact tabular output
algomint -spec application.json contract.py  # cross-reference an ARC-32 spec
algomint -solidity original.sol contract.py  # map Solidity concepts
algomint contracts/                          # multi-contract with relationships
algomint -manifest contracts.yaml            # explicit multi-contract manifest
algomint -gen-spec contract.py               # generate an ARC-32 app spec
` + "```" + `

**All flags:** ` + "`algomint --help`" + `

**How to use the output — follow these rules:**

1. **Check ` + "`security_notes`" + ` first.** Warnings flag methods with no assertion
   guards; dangers flag unguarded inner transactions. Address these before any
   other change.

2. **Use ` + "`storage_access_map`" + ` before editing state.** It lists which methods
   read and write each state variable, so you can see every site a state change
   affects without grepping.

3. **Use ` + "`call_graph`" + ` and ` + "`inner_txn_map`" + ` to trace effects.** Internal calls
   and inner transactions are where a contract's behavior leaves the method you
   are reading.

4. **In multi-contract mode, respect ` + "`deployment_order`" + `.** Contracts that
   reference others deploy after their dependencies.`

	return sentinelStart + "\n" + body + "\n" + sentinelEnd
}

// applySection inserts section into content, replacing an existing sentinel
// block if present or appending if not. It is a pure function for easy testing.
func applySection(content, section string) string {
	start := strings.Index(content, sentinelStart)
	end := strings.Index(content, sentinelEnd)

	if start >= 0 && end > start {
		return content[:start] + section + content[end+len(sentinelEnd):]
	}

	// Append, ensuring a blank line separator.
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + section + "\n"
}
