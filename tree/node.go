// Package tree implements the parse tree produced by the parser.
//
// A tree is one of a closed set of variants: four numeric and textual
// leaves (Natural, Real, Text, Name), uninterpreted data (Blob), text with
// explicit delimiters (DelimitedText), the four operator nodes (Prefix,
// Postfix, Pfix, Infix), and delimited sequences (Block).
//
// Every node carries a source position and a reference count. Constructors
// return a node holding one construction reference and adopt the
// construction reference of each child passed to them, so that building an
// expression bottom-up needs no explicit reference management: releasing
// the root with Unref releases the whole tree. Ref and Unref are atomic,
// allowing a finished tree to be shared across goroutines; mutating a
// shared tree is not supported.
//
// Operations that grow or shrink a node's payload (Append, Range, Push)
// follow a handle contract: they return the node to use afterwards, which
// is the receiver itself when it is uniquely owned and a fresh copy
// otherwise.
package tree

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/alderlang/alder/position"
)

// Node is the interface implemented by all tree variants. The interface
// is closed: only types of this package can implement it.
type Node interface {
	// Pos returns the source position the node was created at.
	Pos() position.Pos
	// TypeName returns the variant name used as the renderer format key.
	TypeName() string
	// Arity returns the number of child slots.
	Arity() int
	// Child returns the i-th child, nil when the slot is empty.
	Child(i int) Node
	// SetChild stores c in the i-th slot, adjusting reference counts.
	SetChild(i int, c Node)
	// Print writes the built-in source form of the node.
	Print(w io.Writer) error

	head() *header
	// shallow returns a fresh node sharing the children of the original,
	// each gaining a reference.
	shallow() Node
}

// header is the common part of every node.
type header struct {
	pos      position.Pos
	refcount int32
}

func newHeader(pos position.Pos) header {
	return header{pos: pos, refcount: 1}
}

func (h *header) Pos() position.Pos { return h.pos }
func (h *header) head() *header     { return h }

// Refcount returns the current reference count, for tests and debugging.
func (h *header) Refcount() int { return int(atomic.LoadInt32(&h.refcount)) }

// Ref acquires an additional reference on n and returns it.
func Ref(n Node) Node {
	if n == nil {
		return nil
	}
	atomic.AddInt32(&n.head().refcount, 1)
	return n
}

// Unref releases one reference on n. When the last reference goes away,
// the node releases all its children and is removed from the debug
// tracker. Releasing below zero is a programming error.
func Unref(n Node) {
	if n == nil {
		return
	}
	rc := atomic.AddInt32(&n.head().refcount, -1)
	if rc < 0 {
		panic(fmt.Sprintf("tree: refcount underflow on %s node", n.TypeName()))
	}
	if rc == 0 {
		for i, k := 0, n.Arity(); i < k; i++ {
			Unref(n.Child(i))
		}
		if b, ok := n.(*Block); ok {
			unrefName(b.Opening)
			unrefName(b.Closing)
			unrefName(b.Separator)
		}
		untrack(n)
	}
}

func refName(n *Name) *Name {
	if n != nil {
		Ref(n)
	}
	return n
}

func unrefName(n *Name) {
	if n != nil {
		Unref(n)
	}
}

// isUnique reports whether the caller holds the only reference.
func (h *header) isUnique() bool {
	return atomic.LoadInt32(&h.refcount) <= 1
}

// setSlot writes a child slot, adjusting reference counts. The new child
// gains a reference; the previous slot content loses one.
func setSlot(slot *Node, c Node) {
	old := *slot
	if c != nil {
		Ref(c)
	}
	*slot = c
	Unref(old)
}

// Copy returns a shallow copy of n: a fresh node sharing the children of
// the original, each gaining a reference.
func Copy(n Node) Node {
	return n.shallow()
}

// Clone returns a deep copy of n: every reachable node is duplicated.
func Clone(n Node) Node {
	if n == nil {
		return nil
	}
	c := n.shallow()
	for i, k := 0, c.Arity(); i < k; i++ {
		if child := c.Child(i); child != nil {
			cl := Clone(child)
			c.SetChild(i, cl)
			Unref(cl) // SetChild took its own reference
		}
	}
	if b, ok := c.(*Block); ok {
		b.Opening = cloneName(b.Opening)
		b.Closing = cloneName(b.Closing)
		b.Separator = cloneName(b.Separator)
	}
	return c
}

// cloneName deep-copies a delimiter name, releasing the shared reference
// the shallow copy took on the original.
func cloneName(n *Name) *Name {
	if n == nil {
		return nil
	}
	c := Clone(n).(*Name)
	Unref(n)
	return c
}

// Print writes the built-in source form of n to w.
func Print(w io.Writer, n Node) error {
	return n.Print(w)
}

// String renders n into a string using its built-in form.
func String(n Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	if err := n.Print(&b); err != nil {
		return "<error: " + err.Error() + ">"
	}
	return b.String()
}

// TextOf renders n into an in-memory Text node at the same position.
func TextOf(n Node) *Text {
	return NewTextString(n.Pos(), String(n))
}

// ErrNotImplemented is returned by the serialization stubs.
var ErrNotImplemented = errors.New("tree: not implemented")

// printer accumulates the first write error while rendering built-in
// forms, so that the per-variant Print methods stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) node(n Node) {
	if p.err != nil || n == nil {
		return
	}
	p.err = n.Print(p.w)
}
