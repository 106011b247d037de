package render

import (
	"io"

	"github.com/alderlang/alder/syntax"
	"github.com/alderlang/alder/tree"
)

// Renderer writes trees through a sink under a style sheet. It tracks
// the indentation level and pending separators so that whitespace is
// emitted lazily: a pending newline materializes with the indentation
// of the next byte, a space requested by the style is written before the
// next byte unless that byte starts a line, and otherwise a space appears
// between two renderings only when they would fuse into one token.
type Renderer struct {
	style *Style
	w     io.Writer
	err   error

	indent         int
	pendingSpace   bool
	pendingNewline bool
	pendingSep     bool
	startOfLine    bool
	last           byte
}

// New returns a renderer writing through w under the given style.
func New(style *Style, w io.Writer) *Renderer {
	return &Renderer{style: style, w: w, startOfLine: true}
}

// Render writes one tree. It can be called repeatedly; state carries
// over so that successive top-level trees separate cleanly.
func (r *Renderer) Render(n tree.Node) error {
	r.node(n)
	return r.err
}

// Reset forgets pending separators and the indentation level.
func (r *Renderer) Reset() {
	r.indent = 0
	r.pendingSpace, r.pendingNewline, r.pendingSep = false, false, false
	r.startOfLine = true
	r.last = 0
}

// Print renders a tree to w under the builtin style.
func Print(w io.Writer, n tree.Node) error {
	return New(Builtin(), w).Render(n)
}

func (r *Renderer) node(n tree.Node) {
	if n == nil || r.err != nil {
		return
	}
	// An infix may have an entry under its own opcode, so that , and ;
	// can format differently from the generic infix.
	if infix, ok := n.(*tree.Infix); ok && infix.Opcode != nil {
		if items, ok := r.style.lookup(infix.Opcode.Value()); ok {
			r.items(items, n)
			return
		}
	}
	key := tree.NormalizeName([]byte(n.TypeName()))
	if items, ok := r.style.lookup(key); ok {
		r.items(items, n)
		return
	}
	r.builtin(n)
}

func (r *Renderer) items(items []item, n tree.Node) {
	for _, it := range items {
		if r.err != nil {
			return
		}
		switch it.kind {
		case literalItem:
			r.text(it.text, false)
		case keyItem:
			r.key(it.text, n)
		}
		r.pendingSep = true
	}
}

func (r *Renderer) key(key string, n tree.Node) {
	switch key {
	case "self":
		r.builtin(n)
	case "left":
		r.operand(n, left(n))
	case "right":
		r.operand(n, right(n))
	case "opcode":
		if infix, ok := n.(*tree.Infix); ok && infix.Opcode != nil {
			r.text(infix.Opcode.Value(), false)
		}
	case "child":
		r.children(n)
	case "block_opening", "blockopening":
		if b, ok := n.(*tree.Block); ok {
			r.blockOpening(b)
		}
	case "block_closing", "blockclosing":
		if b, ok := n.(*tree.Block); ok {
			r.blockClosing(b)
		}
	case "block_separator", "blockseparator":
		if b, ok := n.(*tree.Block); ok {
			r.blockSeparator(b)
		}
	case "indent":
		r.indent++
	case "unindent":
		if r.indent > 0 {
			r.indent--
		}
	case "indents":
		r.flushPending(0)
		for i := 0; i < r.indent; i++ {
			r.write("    ")
		}
	case "cr", "newline":
		r.pendingNewline = true
		r.pendingSpace = false
	case "space", "separator":
		r.pendingSpace = true
	default:
		if items, ok := r.style.lookup(key); ok {
			r.items(items, n)
			return
		}
		r.text(key, false)
	}
}

// operand renders an operator's child. An indentation block hanging off
// an infix, as after else, starts on its own line; one absorbed behind
// a prefix keeps its first child on the opening line.
func (r *Renderer) operand(parent, child tree.Node) {
	if _, isInfix := parent.(*tree.Infix); isInfix {
		if b, ok := child.(*tree.Block); ok && b.Opening.Eq(syntax.IndentName) {
			r.pendingNewline = true
			r.pendingSpace = false
		}
	}
	r.node(child)
}

// left and right map the style keys to the children of the operator
// variants, following their source order.
func left(n tree.Node) tree.Node {
	switch v := n.(type) {
	case *tree.Infix:
		return v.Left
	case *tree.Prefix:
		if v.Operator == nil {
			return nil
		}
		return v.Operator
	case *tree.Postfix:
		return v.Operand
	case *tree.Pfix:
		return v.Left
	}
	return nil
}

func right(n tree.Node) tree.Node {
	switch v := n.(type) {
	case *tree.Infix:
		return v.Right
	case *tree.Prefix:
		return v.Operand
	case *tree.Postfix:
		if v.Operator == nil {
			return nil
		}
		return v.Operator
	case *tree.Pfix:
		return v.Right
	}
	return nil
}

func (r *Renderer) children(n tree.Node) {
	b, ok := n.(*tree.Block)
	if !ok {
		if d, isDelim := n.(*tree.DelimitedText); isDelim && d.Value != nil {
			r.text(d.Value.Value(), true)
		}
		return
	}
	for i, c := range b.Children() {
		if i > 0 {
			r.blockSeparator(b)
		}
		r.node(c)
	}
}

func (r *Renderer) blockOpening(b *tree.Block) {
	if b.Opening.Eq(syntax.IndentName) {
		// The first child stays on the opening line; an if statement
		// renders its condition right after the if.
		r.indent++
		return
	}
	if b.Opening != nil {
		r.text(b.Opening.Value(), false)
	}
}

func (r *Renderer) blockClosing(b *tree.Block) {
	if b.Closing.Eq(syntax.UnindentName) {
		if r.indent > 0 {
			r.indent--
		}
		r.pendingNewline = true
		r.pendingSpace = false
		return
	}
	if b.Closing != nil {
		r.text(b.Closing.Value(), false)
	}
}

// blockSeparator writes the block's separator, a single space when none
// was configured.
func (r *Renderer) blockSeparator(b *tree.Block) {
	switch {
	case b.Separator == nil:
		r.pendingSpace = true
	case b.Separator.Eq(syntax.NewlineName):
		r.pendingNewline = true
		r.pendingSpace = false
	default:
		r.text(b.Separator.Value(), false)
		r.pendingSpace = true
	}
}

// builtin renders a node in its built-in source form. Texts pass
// through verbatim so that embedded line ends stay untouched.
func (r *Renderer) builtin(n tree.Node) {
	if r.err != nil {
		return
	}
	raw := false
	switch n.(type) {
	case *tree.Text, *tree.DelimitedText:
		raw = true
	}
	r.text(tree.String(n), raw)
}

// text writes a string through the pending-separator machinery. Unless
// raw, line ends translate into newline-plus-indentation.
func (r *Renderer) text(s string, raw bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' && !raw {
			r.pendingNewline = true
			r.pendingSpace = false
			continue
		}
		r.flushPending(c)
		r.write(string(c))
		r.last = c
		r.startOfLine = false
	}
}

// flushPending materializes a pending newline or space before the next
// byte. A pending separator becomes a space only when the previous and
// next byte belong to the same token class.
func (r *Renderer) flushPending(next byte) {
	switch {
	case r.pendingNewline:
		r.write("\n")
		for i := 0; i < r.indent; i++ {
			r.write("    ")
		}
		r.startOfLine = true
		r.last = 0
	case r.pendingSpace && !r.startOfLine:
		r.write(" ")
		r.last = ' '
	case r.pendingSep && next != 0 && fuses(r.last, next):
		r.write(" ")
		r.last = ' '
	}
	r.pendingNewline, r.pendingSpace, r.pendingSep = false, false, false
}

func (r *Renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

// fuses reports whether two adjacent bytes would scan as a single
// token: two alphanumerics or two punctuation characters.
func fuses(a, b byte) bool {
	if a == 0 {
		return false
	}
	alnum := func(c byte) bool {
		return c == '_' || c >= '0' && c <= '9' ||
			c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
	}
	punct := func(c byte) bool {
		switch c {
		case '"', '\'', '(', ')', '[', ']', '{', '}', ',', ';':
			return false
		}
		return c > ' ' && c < 0x7F && !alnum(c)
	}
	return alnum(a) && alnum(b) || punct(a) && punct(b)
}
