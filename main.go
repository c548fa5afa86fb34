// algomint analyses the structure of Algorand Python (algopy) smart
// contracts: state, methods, call graph, storage access, inner transactions,
// and heuristic security notes, as JSON or TOON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/SamyaDeb/AlgoMint/internal/analyzer"
	"github.com/SamyaDeb/AlgoMint/internal/arc32"
	"github.com/SamyaDeb/AlgoMint/internal/discover"
	"github.com/SamyaDeb/AlgoMint/internal/manifest"
	"github.com/SamyaDeb/AlgoMint/internal/model"
	"github.com/SamyaDeb/AlgoMint/internal/toon"
)

var version = "dev"

const defaultMaxFileSize = 1_000_000 // 1 MB

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "init" {
		if err := runInit(args[1:], os.Stdout, os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := run(args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("algomint", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		specPath     string
		solidityPath string
		manifestPath string
		format       string
		genSpec      bool
		maxFileSize  int
		showVersion  bool
	)

	fs.StringVar(&specPath, "spec", "", "ARC-32 application.json to cross-reference (single-contract mode)")
	fs.StringVar(&solidityPath, "solidity", "", "original Solidity source for concept mapping (single-contract mode)")
	fs.StringVar(&manifestPath, "manifest", "", "YAML manifest describing a multi-contract analysis")
	fs.StringVar(&format, "format", "json", "output format: json or toon")
	fs.StringVar(&format, "f", "json", "output format: json or toon")
	fs.BoolVar(&genSpec, "gen-spec", false, "emit a generated ARC-32 application spec instead of the analysis")
	fs.IntVar(&maxFileSize, "max-file-size", defaultMaxFileSize, "skip contract files larger than this many bytes")
	fs.BoolVar(&showVersion, "V", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: algomint [flags] <contract.py | directory>
       algomint -manifest <manifest.yaml> [flags]
       algomint init [flags] [path-to-CLAUDE.md]

Analyse the structure of algopy smart contracts. A single .py file runs the
single-contract pipeline; a directory or manifest runs the multi-contract
pipeline with relationship detection and a deployment order.

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return err
	}

	if showVersion {
		_, _ = fmt.Fprintf(stdout, "algomint %s\n", version)
		return nil
	}

	if format != "json" && format != "toon" {
		return fmt.Errorf("unsupported format %q (want json or toon)", format)
	}

	if manifestPath != "" {
		if fs.NArg() > 0 {
			return fmt.Errorf("-manifest and a positional path are mutually exclusive")
		}
		return runManifest(manifestPath, format, stdout, stderr)
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no contract path given")
	}
	target := fs.Arg(0)

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("contract path: %w", err)
	}

	if info.IsDir() {
		if specPath != "" || solidityPath != "" || genSpec {
			return fmt.Errorf("-spec, -solidity and -gen-spec apply to single-contract mode only")
		}
		return runDirectory(target, format, maxFileSize, stdout, stderr)
	}

	return runSingle(target, specPath, solidityPath, format, genSpec, stdout)
}

func runSingle(path, specPath, solidityPath, format string, genSpec bool, stdout io.Writer) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading contract: %w", err)
	}

	opts := analyzer.Options{}

	if specPath != "" {
		data, err := os.ReadFile(specPath)
		if err != nil {
			return fmt.Errorf("reading app spec: %w", err)
		}
		spec, err := arc32.Decode(data)
		if err != nil {
			return err
		}
		opts.AppSpec = spec
	}

	if solidityPath != "" {
		data, err := os.ReadFile(solidityPath)
		if err != nil {
			return fmt.Errorf("reading solidity source: %w", err)
		}
		opts.SolidityCode = string(data)
	}

	result := analyzer.Analyze(string(source), opts)

	if genSpec {
		if len(result.Errors) > 0 {
			return fmt.Errorf("cannot generate an app spec: %s", strings.Join(result.Errors, "; "))
		}
		return writeJSON(stdout, arc32.Generate(result))
	}

	return writeResult(stdout, format, result, nil)
}

func runDirectory(root, format string, maxFileSize int, stdout, stderr io.Writer) error {
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	files, err := discover.Contracts(root)
	if err != nil {
		return fmt.Errorf("discovering contracts: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no contract files found under %s", root)
	}

	var inputs []analyzer.ContractInput
	for _, f := range files {
		absPath := filepath.Join(root, f.Path)
		if fi, err := os.Stat(absPath); err == nil && fi.Size() > int64(maxFileSize) {
			_, _ = fmt.Fprintf(stderr, "Warning: %s: skipped (>%d bytes)\n", f.Path, maxFileSize)
			continue
		}
		source, err := os.ReadFile(absPath)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: %s: %v\n", f.Path, err)
			continue
		}
		inputs = append(inputs, analyzer.ContractInput{Source: string(source)})
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no contract files could be read under %s", root)
	}
	if len(inputs) > analyzer.MaxContracts {
		return fmt.Errorf("too many contracts: %d (limit %d)", len(inputs), analyzer.MaxContracts)
	}

	return writeResult(stdout, format, nil, analyzer.AnalyzeMulti(inputs))
}

func runManifest(path, format string, stdout, stderr io.Writer) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	if len(m.Contracts) > analyzer.MaxContracts {
		return fmt.Errorf("too many contracts: %d (limit %d)", len(m.Contracts), analyzer.MaxContracts)
	}

	inputs := make([]analyzer.ContractInput, 0, len(m.Contracts))
	for _, entry := range m.Contracts {
		source, err := os.ReadFile(entry.Source)
		if err != nil {
			return fmt.Errorf("reading contract %s: %w", entry.Source, err)
		}

		in := analyzer.ContractInput{Name: entry.Name, Source: string(source)}

		if entry.AppSpec != "" {
			data, err := os.ReadFile(entry.AppSpec)
			if err != nil {
				_, _ = fmt.Fprintf(stderr, "Warning: %s: %v\n", entry.AppSpec, err)
			} else if spec, err := arc32.Decode(data); err != nil {
				_, _ = fmt.Fprintf(stderr, "Warning: %s: %v\n", entry.AppSpec, err)
			} else {
				in.AppSpec = spec
			}
		}

		if entry.Solidity != "" {
			data, err := os.ReadFile(entry.Solidity)
			if err != nil {
				_, _ = fmt.Fprintf(stderr, "Warning: %s: %v\n", entry.Solidity, err)
			} else {
				in.SolidityCode = string(data)
			}
		}

		inputs = append(inputs, in)
	}

	return writeResult(stdout, format, nil, analyzer.AnalyzeMulti(inputs))
}

// writeResult renders either a single or a multi result. Exactly one of
// single and multi is non-nil.
func writeResult(stdout io.Writer, format string, single *model.ContractAnalysis, multi *model.MultiContractAnalysis) error {
	if format == "toon" {
		var out string
		if single != nil {
			out = toon.Encode(single)
		} else {
			out = toon.EncodeMulti(multi)
		}
		_, _ = fmt.Fprintln(stdout, out)
		return nil
	}
	if single != nil {
		return writeJSON(stdout, single)
	}
	return writeJSON(stdout, multi)
}

func writeJSON(stdout io.Writer, v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-spec": true, "--spec": true,
	"-solidity": true, "--solidity": true,
	"-manifest": true, "--manifest": true,
	"-format": true, "--format": true,
	"-f": true, "--f": true,
	"-max-file-size": true, "--max-file-size": true,
}

// reorderArgs moves positional arguments after all flags so Go's flag package
// can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
