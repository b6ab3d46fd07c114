/*
Ggen-explore is an interactive REPL over a grammar's canonical LR(0)
collection and FIRST/FOLLOW sets, for inspecting a grammar's automaton
without rendering any templates.

Usage:

	ggen-explore CONFIG

CONFIG is the path to the same JSON configuration file ggen consumes; the
snapshot is built (or loaded from the cache) exactly as ggen would build it.
Once started, the REPL accepts:

	state N         show item set, shift/goto/reduce tables for state N
	item R P        show rule R with the dot at position P
	goto N SYM      show the state state N transitions to on symbol SYM
	first SYM       show FIRST(SYM) for a nonterminal SYM
	follow SYM      show FOLLOW(SYM) for a nonterminal SYM
	quit            exit
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dekarrin/rosed"

	"github.com/ThePerkinrex/grammar-gen/internal/config"
	"github.com/ThePerkinrex/grammar-gen/internal/diag"
	"github.com/ThePerkinrex/grammar-gen/internal/emit"
	"github.com/ThePerkinrex/grammar-gen/internal/grammar"
	"github.com/ThePerkinrex/grammar-gen/internal/pipeline"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ggen-explore CONFIG")
		os.Exit(1)
	}

	cfg, err := config.Load(os.Args[1])
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

	// The snapshot carries everything the state/item/goto commands need, but
	// not FIRST/FOLLOW (template rendering never needs them, so the cache
	// never stores them) — reparse live, off the cache, just for those.
	ff, err := liveFirstFollow(cfg.GrammarPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}

	rl, err := readline.NewEx(&readline.Config{Prompt: "ggen> "})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: create readline: %s\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	e := &explorer{snap: result.Snapshot, ff: ff, out: os.Stdout}
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		e.dispatch(line)
	}
}

// liveFirstFollow reparses the grammar outside the cache to get the FIRST
// and FOLLOW sets, which AutomatonSnapshot never carries.
func liveFirstFollow(grammarPath string) (*grammar.FirstFollow, error) {
	lines, err := config.ReadGrammarLines(grammarPath)
	if err != nil {
		return nil, err
	}
	d := diag.NewChannel()
	g := grammar.Parse(lines, d)
	if d.HasFatal() {
		return nil, fmt.Errorf("grammar parse failed")
	}
	return grammar.Compute(g), nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".ggen-cache"
	}
	return dir + "/ggen"
}

type explorer struct {
	snap *emit.AutomatonSnapshot
	ff   *grammar.FirstFollow
	out  io.Writer
}

func (e *explorer) dispatch(line string) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "state":
		e.cmdState(fields[1:])
	case "item":
		e.cmdItem(fields[1:])
	case "goto":
		e.cmdGoto(fields[1:])
	case "first":
		e.cmdFirst(fields[1:])
	case "follow":
		e.cmdFollow(fields[1:])
	default:
		fmt.Fprintf(e.out, "unrecognized command %q\n", fields[0])
	}
}

func (e *explorer) cmdState(args []string) {
	no, ok := e.parseStateArg(args)
	if !ok {
		return
	}
	st := e.snap.States[no]

	var itemLines []string
	for _, it := range st.Items {
		itemLines = append(itemLines, it.Display)
	}
	rows := [][]string{{"action", "on", "target"}}
	for tok, next := range st.Shift {
		rows = append(rows, []string{"shift", e.snap.TokenNames[tok], strconv.Itoa(next)})
	}
	for sym, next := range st.Goto {
		rows = append(rows, []string{"goto", e.snap.SymbolNames[sym], strconv.Itoa(next)})
	}
	for tok, rule := range st.Reduce {
		rows = append(rows, []string{"reduce", e.snap.TokenNames[tok], fmt.Sprintf("rule %d", rule)})
	}

	fmt.Fprintf(e.out, "state %d\n", no)
	fmt.Fprintln(e.out, strings.Join(itemLines, "\n"))
	table := rosed.Edit("").
		InsertTableOpts(0, rows, 80, rosed.Options{TableBorders: true}).
		String()
	fmt.Fprintln(e.out, table)
}

func (e *explorer) cmdItem(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(e.out, "usage: item RULE POSITION")
		return
	}
	ruleNo, err1 := strconv.Atoi(args[0])
	pos, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || ruleNo < 0 || ruleNo >= len(e.snap.Rules) {
		fmt.Fprintln(e.out, "invalid rule or position")
		return
	}
	rv := e.snap.Rules[ruleNo]
	if pos < 0 || pos > len(rv.RHS) {
		fmt.Fprintln(e.out, "invalid rule or position")
		return
	}

	left := make([]string, 0, pos)
	for _, sym := range rv.RHS[:pos] {
		left = append(left, sym.Name)
	}
	right := make([]string, 0, len(rv.RHS)-pos)
	for _, sym := range rv.RHS[pos:] {
		right = append(right, sym.Name)
	}
	fmt.Fprintf(e.out, "%s -> %s . %s\n", rv.LHSName, strings.Join(left, " "), strings.Join(right, " "))
}

func (e *explorer) cmdGoto(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(e.out, "usage: goto STATE SYMBOL")
		return
	}
	no, ok := e.parseStateArg(args[:1])
	if !ok {
		return
	}
	st := e.snap.States[no]

	if sym, ok := indexOf(e.snap.SymbolNames, args[1]); ok {
		if target, ok := st.Goto[sym]; ok {
			fmt.Fprintf(e.out, "%d\n", target)
			return
		}
	}
	if tok, ok := indexOf(e.snap.TokenNames, args[1]); ok {
		if target, ok := st.Shift[tok]; ok {
			fmt.Fprintf(e.out, "%d\n", target)
			return
		}
	}
	fmt.Fprintln(e.out, "no transition")
}

func (e *explorer) cmdFirst(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(e.out, "usage: first SYMBOL")
		return
	}
	sym, ok := indexOf(e.snap.SymbolNames, args[0])
	if !ok {
		fmt.Fprintf(e.out, "unknown nonterminal %q\n", args[0])
		return
	}
	fmt.Fprintln(e.out, e.setString(e.ff.FirstOfSymbol(grammar.Symbol(sym))))
}

func (e *explorer) cmdFollow(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(e.out, "usage: follow SYMBOL")
		return
	}
	sym, ok := indexOf(e.snap.SymbolNames, args[0])
	if !ok {
		fmt.Fprintf(e.out, "unknown nonterminal %q\n", args[0])
		return
	}
	fmt.Fprintln(e.out, e.setString(e.ff.Follow(grammar.Symbol(sym))))
}

func (e *explorer) parseStateArg(args []string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintln(e.out, "usage: state N")
		return 0, false
	}
	no, err := strconv.Atoi(args[0])
	if err != nil || no < 0 || no >= len(e.snap.States) {
		fmt.Fprintf(e.out, "no such state %q\n", args[0])
		return 0, false
	}
	return no, true
}

func (e *explorer) setString(s interface{ Elements() []grammar.Token }) string {
	names := make([]string, 0)
	for _, t := range s.Elements() {
		if t == grammar.EndOfInput {
			names = append(names, "$")
			continue
		}
		names = append(names, e.snap.TokenNames[t])
	}
	return "{" + strings.Join(names, ", ") + "}"
}

func indexOf(names []string, name string) (int, bool) {
	for i, n := range names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}
