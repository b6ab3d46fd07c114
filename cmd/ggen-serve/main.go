/*
Ggen-serve starts a local, read-only HTTP server for browsing a grammar's
canonical LR(0) collection in a browser instead of at the ggen-explore
prompt.

Usage:

	ggen-serve CONFIG [flags]

CONFIG is the path to the same JSON configuration file ggen consumes; the
snapshot is built (or loaded from the cache) exactly as ggen would build it.
Once started, the server listens for HTTP requests and serves:

	/              index of every state, with item counts
	/state/{no}    item set and shift/goto/reduce tables for state {no}
	/dot           the automaton rendered as Graphviz dot

The flags are:

	--addr ADDRESS
		Listen on the given address. Defaults to :8080.
*/
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/pflag"

	"github.com/ThePerkinrex/grammar-gen/internal/config"
	"github.com/ThePerkinrex/grammar-gen/internal/emit"
	"github.com/ThePerkinrex/grammar-gen/internal/pipeline"
)

var flagAddr = pflag.String("addr", ":8080", "Listen on the given address.")

func main() {
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ggen-serve CONFIG [flags]")
		os.Exit(1)
	}

	cfg, err := config.Load(pflag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	result, err := pipeline.Build(cfg, pipeline.Options{CacheDir: defaultCacheDir()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
	for _, e := range result.Diag.Entries() {
		fmt.Fprintln(os.Stderr, e.String())
	}

	srv := &server{snap: result.Snapshot}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Get("/", srv.index)
	r.Get("/state/{no}", srv.state)
	r.Get("/dot", srv.dot)

	log.Printf("INFO  ggen-serve listening on %s", *flagAddr)
	if err := http.ListenAndServe(*flagAddr, r); err != nil {
		log.Fatalf("FATAL server stopped: %s", err)
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".ggen-cache"
	}
	return dir + "/ggen"
}

type server struct {
	snap *emit.AutomatonSnapshot
}

func (s *server) index(w http.ResponseWriter, r *http.Request) {
	var b strings.Builder
	b.WriteString("<html><body><h1>States</h1><ul>")
	for _, st := range s.snap.States {
		fmt.Fprintf(&b, `<li><a href="/state/%d">state %d</a> (%d items)</li>`, st.No, st.No, len(st.Items))
	}
	b.WriteString("</ul><p><a href=\"/dot\">dot</a></p></body></html>")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(b.String()))
}

func (s *server) state(w http.ResponseWriter, r *http.Request) {
	no, err := strconv.Atoi(chi.URLParam(r, "no"))
	if err != nil || no < 0 || no >= len(s.snap.States) {
		http.Error(w, "no such state", http.StatusNotFound)
		return
	}
	st := s.snap.States[no]

	var b strings.Builder
	fmt.Fprintf(&b, "<html><body><h1>State %d</h1><h2>Items</h2><ul>", st.No)
	for _, it := range st.Items {
		fmt.Fprintf(&b, "<li>%s</li>", it.Display)
	}
	b.WriteString("</ul><h2>Shift</h2><ul>")
	for tok, next := range st.Shift {
		fmt.Fprintf(&b, `<li>%s -> <a href="/state/%d">%d</a></li>`, s.snap.TokenNames[tok], next, next)
	}
	b.WriteString("</ul><h2>Goto</h2><ul>")
	for sym, next := range st.Goto {
		fmt.Fprintf(&b, `<li>%s -> <a href="/state/%d">%d</a></li>`, s.snap.SymbolNames[sym], next, next)
	}
	b.WriteString("</ul><h2>Reduce</h2><ul>")
	for tok, rule := range st.Reduce {
		fmt.Fprintf(&b, "<li>%s -> rule %d</li>", s.snap.TokenNames[tok], rule)
	}
	b.WriteString("</ul><p><a href=\"/\">back</a></p></body></html>")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(b.String()))
}

func (s *server) dot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.Write([]byte(s.snap.Dot()))
}
