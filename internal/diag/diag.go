// Package diag implements the ordered diagnostics channel that the grammar
// parser, automaton builder, and semantic resolver all report through.
//
// It plays the role the scattered eprintln calls in the original grammar
// analyzer played, collected into one append-only, ordered sink so a caller
// can render them once, in discovery order, instead of having every stage
// write directly to stderr.
package diag

import (
	"encoding/json"
	"fmt"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Info Severity = iota
	Warning
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is one human-readable message produced by a pipeline stage.
type Diagnostic struct {
	Severity Severity
	Stage    string
	Message  string

	// State and Rule are optional; -1 means "not applicable".
	State int
	Rule  int
}

func (d Diagnostic) String() string {
	loc := ""
	if d.State >= 0 {
		loc += fmt.Sprintf(" state=%d", d.State)
	}
	if d.Rule >= 0 {
		loc += fmt.Sprintf(" rule=%d", d.Rule)
	}
	return fmt.Sprintf("[%s/%s]%s %s", d.Stage, d.Severity, loc, d.Message)
}

// MarshalJSON renders d for --diagnostics-format=json: state and rule are
// omitted (rather than emitted as -1) when not applicable.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	type wire struct {
		Severity string `json:"severity"`
		Stage    string `json:"stage"`
		Message  string `json:"message"`
		State    *int   `json:"state,omitempty"`
		Rule     *int   `json:"rule,omitempty"`
	}
	w := wire{Severity: d.Severity.String(), Stage: d.Stage, Message: d.Message}
	if d.State >= 0 {
		w.State = &d.State
	}
	if d.Rule >= 0 {
		w.Rule = &d.Rule
	}
	return json.Marshal(w)
}

// Channel is an append-only, ordered collection of Diagnostics.
type Channel struct {
	entries []Diagnostic
	fatal   bool
}

// NewChannel returns an empty diagnostics channel.
func NewChannel() *Channel {
	return &Channel{}
}

func (c *Channel) report(sev Severity, stage, msg string, state, rule int) {
	c.entries = append(c.entries, Diagnostic{
		Severity: sev, Stage: stage, Message: msg, State: state, Rule: rule,
	})
	if sev == Fatal {
		c.fatal = true
	}
}

// Infof records an Info diagnostic with no state/rule context.
func (c *Channel) Infof(stage, format string, args ...any) {
	c.report(Info, stage, fmt.Sprintf(format, args...), -1, -1)
}

// Warnf records a Warning diagnostic with no state/rule context.
func (c *Channel) Warnf(stage, format string, args ...any) {
	c.report(Warning, stage, fmt.Sprintf(format, args...), -1, -1)
}

// WarnAt records a Warning diagnostic scoped to a state and/or rule number;
// pass -1 for either to omit it.
func (c *Channel) WarnAt(stage string, state, rule int, format string, args ...any) {
	c.report(Warning, stage, fmt.Sprintf(format, args...), state, rule)
}

// Fatalf records a Fatal diagnostic. HasFatal will return true afterward.
func (c *Channel) Fatalf(stage, format string, args ...any) {
	c.report(Fatal, stage, fmt.Sprintf(format, args...), -1, -1)
}

// HasFatal returns whether any Fatal diagnostic has been recorded.
func (c *Channel) HasFatal() bool { return c.fatal }

// Entries returns every recorded diagnostic, in discovery order.
func (c *Channel) Entries() []Diagnostic {
	return c.entries
}

// Warnings returns only the Warning-severity diagnostics, in discovery order.
func (c *Channel) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, e := range c.entries {
		if e.Severity == Warning {
			out = append(out, e)
		}
	}
	return out
}
