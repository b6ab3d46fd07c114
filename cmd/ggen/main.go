/*
Ggen builds the SLR(1) parsing automaton for an annotated grammar and emits
per-action code fragments through the templates named in its config file.

Usage:

	ggen [flags] CONFIG

The flags are:

	--version
		Give the current version of the generator and then exit.

	--cache-dir DIR
		Directory holding cached builds. Defaults to the user's cache
		directory under "ggen".

	--no-cache
		Skip the build cache entirely: always reanalyze, never read or write
		a cached snapshot.

	--diagnostics-format text|json
		Format used to print diagnostics. Defaults to "text".

	-v, --verbose
		Print every diagnostic, including Info-severity ones, to stderr.
		Without this flag only Warning and Fatal diagnostics are printed.

CONFIG is the path to a JSON configuration file; see the config package for
its schema. Exit code 0 on success; non-zero on unreadable config, unreadable
grammar, or a template failure.
*/
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/ThePerkinrex/grammar-gen/internal/config"
	"github.com/ThePerkinrex/grammar-gen/internal/diag"
	"github.com/ThePerkinrex/grammar-gen/internal/emit"
	"github.com/ThePerkinrex/grammar-gen/internal/pipeline"
	"github.com/ThePerkinrex/grammar-gen/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInputError indicates an unreadable config or grammar file.
	ExitInputError

	// ExitBuildError indicates a fatal grammar syntax error.
	ExitBuildError

	// ExitTemplateError indicates a template that failed to parse or render.
	ExitTemplateError
)

var (
	returnCode     = ExitSuccess
	flagVersion    = pflag.Bool("version", false, "Gives the version info")
	flagCacheDir   = pflag.String("cache-dir", defaultCacheDir(), "Directory holding cached builds")
	flagNoCache    = pflag.Bool("no-cache", false, "Skip the build cache entirely")
	flagDiagFormat = pflag.String("diagnostics-format", "text", "Format used to print diagnostics: text or json")
	flagVerbose    = pflag.BoolP("verbose", "v", false, "Print Info-severity diagnostics as well as warnings")
)

func main() {
	defer func() {
		os.Exit(returnCode)
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if *flagDiagFormat != "text" && *flagDiagFormat != "json" {
		fmt.Fprintf(os.Stderr, "ERROR: --diagnostics-format must be \"text\" or \"json\", got %q\n", *flagDiagFormat)
		returnCode = ExitInputError
		return
	}

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ggen [flags] CONFIG")
		returnCode = ExitInputError
		return
	}
	configPath := pflag.Arg(0)

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitInputError
		return
	}

	result, err := pipeline.Build(cfg, pipeline.Options{CacheDir: *flagCacheDir, NoCache: *flagNoCache})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitBuildError
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			returnCode = ExitInputError
		}
		return
	}

	if result.Diag != nil {
		printDiagnostics(result.RunID, result.Diag, *flagVerbose, *flagDiagFormat)
	}

	renderer, err := emit.NewRenderer(result.Snapshot, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitTemplateError
		return
	}
	if err := renderer.RenderAll(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitTemplateError
		return
	}
}

func printDiagnostics(runID uuid.UUID, d *diag.Channel, verbose bool, format string) {
	entries := filterDiagnostics(d, verbose)
	if format == "json" {
		printDiagnosticsJSON(runID, entries)
		return
	}
	for _, e := range entries {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", runID, e.String())
	}
}

func filterDiagnostics(d *diag.Channel, verbose bool) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, e := range d.Entries() {
		if e.Severity == diag.Info && !verbose {
			continue
		}
		out = append(out, e)
	}
	return out
}

func printDiagnosticsJSON(runID uuid.UUID, entries []diag.Diagnostic) {
	doc := struct {
		RunID       string            `json:"run_id"`
		Diagnostics []diag.Diagnostic `json:"diagnostics"`
	}{RunID: runID.String(), Diagnostics: entries}

	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: encode diagnostics: %s\n", err)
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".ggen-cache"
	}
	return dir + "/ggen"
}
