// Package error collects and displays the diagnostics emitted by the
// scanner and the parser.
//
// Diagnostics carry a source position and are recorded in the innermost
// open error context. Contexts support speculative parses: a context can
// be committed, which hands its diagnostics to the enclosing context, or
// cleared, which discards them. Diagnostics recorded with no open
// context are displayed immediately.
package error

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"

	"github.com/alderlang/alder/position"
	"github.com/alderlang/alder/tree"
)

// Diagnostic is a single positioned error message.
type Diagnostic struct {
	Pos     position.Pos
	Message string
}

func (d *Diagnostic) Error() string {
	return d.Message
}

// Errors is the per-session diagnostic sink.
type Errors struct {
	registry *position.Registry
	out      io.Writer
	contexts []*Context
	emitted  []*Diagnostic
}

// NewErrors returns a sink resolving positions against registry and
// displaying top-level diagnostics on out. Both may be nil, in which
// case positions stay unresolved and display is suppressed.
func NewErrors(registry *position.Registry, out io.Writer) *Errors {
	return &Errors{registry: registry, out: out}
}

// Errorf records a diagnostic. The format accepts the standard fmt verbs
// plus %t, which renders a tree.Node argument in its source form.
func (e *Errors) Errorf(pos position.Pos, format string, args ...interface{}) {
	d := &Diagnostic{Pos: pos, Message: formatMessage(format, args...)}
	if n := len(e.contexts); n > 0 {
		ctx := e.contexts[n-1]
		ctx.pending = append(ctx.pending, d)
		return
	}
	e.emit(d)
}

// formatMessage substitutes %t verbs with the rendered form of tree
// arguments, then defers to fmt for everything else.
func formatMessage(format string, args ...interface{}) string {
	converted := make([]interface{}, len(args))
	for i, a := range args {
		if n, ok := a.(tree.Node); ok {
			converted[i] = tree.String(n)
		} else {
			converted[i] = a
		}
	}
	return fmt.Sprintf(strings.ReplaceAll(format, "%t", "%s"), converted...)
}

func (e *Errors) emit(d *Diagnostic) {
	e.emitted = append(e.emitted, d)
	if e.out == nil {
		return
	}
	if info, ok := e.resolve(d.Pos); ok {
		fmt.Fprintf(e.out, "%s:%d:%d: %s\n", info.File, info.Line, info.Column+1, d.Message)
		if line, ok := info.SourceLine(); ok {
			fmt.Fprintf(e.out, "%s\n%*s\n", line, info.Column+1, "^")
		}
		return
	}
	fmt.Fprintf(e.out, "error: %s\n", d.Message)
}

func (e *Errors) resolve(pos position.Pos) (*position.Info, bool) {
	if e.registry == nil {
		return nil, false
	}
	return e.registry.Info(pos)
}

// Count returns the number of diagnostics recorded so far, including
// those still pending in open contexts.
func (e *Errors) Count() int {
	n := len(e.emitted)
	for _, ctx := range e.contexts {
		n += len(ctx.pending)
	}
	return n
}

// Err folds the displayed diagnostics into a single error, nil when none
// was emitted.
func (e *Errors) Err() error {
	var err error
	for _, d := range e.emitted {
		err = multierr.Append(err, d)
	}
	return err
}

// Context is a nested error context for speculative parses.
type Context struct {
	owner   *Errors
	pending []*Diagnostic
	closed  bool
}

// Save opens a nested context. Until the context is committed or
// cleared, diagnostics accumulate in it instead of being displayed.
func (e *Errors) Save() *Context {
	ctx := &Context{owner: e}
	e.contexts = append(e.contexts, ctx)
	return ctx
}

func (c *Context) pop() {
	e := c.owner
	if c.closed || len(e.contexts) == 0 || e.contexts[len(e.contexts)-1] != c {
		panic("error: contexts must be committed or cleared innermost first")
	}
	e.contexts = e.contexts[:len(e.contexts)-1]
	c.closed = true
}

// Commit appends the context's diagnostics to the enclosing context, or
// displays them when the context was outermost.
func (c *Context) Commit() {
	c.pop()
	e := c.owner
	if n := len(e.contexts); n > 0 {
		outer := e.contexts[n-1]
		outer.pending = append(outer.pending, c.pending...)
		return
	}
	for _, d := range c.pending {
		e.emit(d)
	}
}

// Clear discards the context's diagnostics.
func (c *Context) Clear() {
	c.pop()
	c.pending = nil
}
