// Package pipeline wires the grammar parser, FIRST/FOLLOW engine, automaton
// builder, and semantic resolver into the single monotonic pass the config
// loader and cache sit on either side of: grammar parse -> FOLLOW fixed
// point -> automaton BFS -> semantic resolution -> emission.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ThePerkinrex/grammar-gen/internal/automaton"
	"github.com/ThePerkinrex/grammar-gen/internal/cache"
	"github.com/ThePerkinrex/grammar-gen/internal/config"
	"github.com/ThePerkinrex/grammar-gen/internal/diag"
	"github.com/ThePerkinrex/grammar-gen/internal/emit"
	"github.com/ThePerkinrex/grammar-gen/internal/grammar"
	"github.com/ThePerkinrex/grammar-gen/internal/semantic"
)

// Result is everything a caller (the CLI, the explorer, the inspection
// server) needs after a build: the finished snapshot, the diagnostics
// channel it was built with, whether it came from the cache, and the id
// correlating this run's diagnostics with each other. On a cache hit Diag is
// a new, empty channel; the original build's messages are only in
// Snapshot.Diagnostics.
type Result struct {
	RunID     uuid.UUID
	Snapshot  *emit.AutomatonSnapshot
	Diag      *diag.Channel
	FromCache bool
}

// Options controls cache behavior; the zero value disables the cache.
type Options struct {
	CacheDir string
	NoCache  bool
}

// Build runs (or fetches from cache) the complete grammar-to-automaton
// pipeline for the grammar and config named by cfg.
func Build(cfg *config.Config, opts Options) (*Result, error) {
	runID := uuid.New()

	grammarLines, err := config.ReadGrammarLines(cfg.GrammarPath)
	if err != nil {
		return nil, err
	}

	var c *cache.Cache
	var digest string
	if !opts.NoCache && opts.CacheDir != "" {
		c = cache.New(opts.CacheDir)
		rawBytes := []byte(joinLines(grammarLines))
		digest, err = cache.Digest(rawBytes, cfg.TokenReplace)
		if err == nil {
			if snap, ok := c.Lookup(digest); ok {
				return &Result{RunID: runID, Snapshot: snap, Diag: diag.NewChannel(), FromCache: true}, nil
			}
		}
	}

	d := diag.NewChannel()

	g := grammar.Parse(grammarLines, d)
	if d.HasFatal() {
		return nil, fmt.Errorf("grammar parse failed (run %s): %s", runID, firstFatal(d))
	}

	ff := grammar.Compute(g)
	a := automaton.Build(g, ff, d)
	disp := semantic.Resolve(g, a, d)

	snap := emit.Snapshot(g, a, disp, d)

	if c != nil && digest != "" {
		// cache write failure is a warning, never fatal
		if err := c.Store(digest, snap); err != nil {
			d.Warnf("cache", "cache write failed: %s", err)
		}
	}

	return &Result{RunID: runID, Snapshot: snap, Diag: d}, nil
}

func firstFatal(d *diag.Channel) string {
	for _, e := range d.Entries() {
		if e.Severity == diag.Fatal {
			return e.String()
		}
	}
	return "unknown fatal error"
}

func joinLines(lines []string) string {
	out := make([]byte, 0, 64*len(lines))
	for _, l := range lines {
		out = append(out, l...)
		out = append(out, '\n')
	}
	return string(out)
}
