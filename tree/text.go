package tree

import (
	"fmt"
	"io"

	"github.com/alderlang/alder/position"
)

// Text is a byte sequence literal. Quote records the quote character the
// literal was written with ('"' when zero), so that characters written as
// 'x' round-trip with their single quotes.
type Text struct {
	header
	data  []byte
	Quote byte
}

func NewText(pos position.Pos, data []byte) *Text {
	t := &Text{header: newHeader(pos), data: append([]byte(nil), data...)}
	track(t)
	return t
}

func NewTextString(pos position.Pos, s string) *Text {
	t := &Text{header: newHeader(pos), data: []byte(s)}
	track(t)
	return t
}

// NewTextf formats into a fresh text node.
func NewTextf(pos position.Pos, format string, args ...interface{}) *Text {
	return NewTextString(pos, fmt.Sprintf(format, args...))
}

// NewQuotedText records the quote character the text was delimited with.
func NewQuotedText(pos position.Pos, data []byte, quote byte) *Text {
	t := NewText(pos, data)
	t.Quote = quote
	return t
}

func (t *Text) TypeName() string   { return "text" }
func (t *Text) Arity() int         { return 0 }
func (t *Text) Child(i int) Node   { panic("tree: text has no children") }
func (t *Text) SetChild(int, Node) { panic("tree: text has no children") }

// Bytes returns the payload. The slice is owned by the node.
func (t *Text) Bytes() []byte { return t.data }

// Size returns the payload length in bytes.
func (t *Text) Size() int { return len(t.data) }

// Value returns the payload as a string.
func (t *Text) Value() string { return string(t.data) }

func (t *Text) shallow() Node {
	c := &Text{header: newHeader(t.pos), data: append([]byte(nil), t.data...), Quote: t.Quote}
	track(c)
	return c
}

// Append grows the payload, in place when the node is uniquely owned.
// It returns the handle to use afterwards.
func (t *Text) Append(data []byte) *Text {
	if t.isUnique() {
		t.data = append(t.data, data...)
		return t
	}
	c := t.shallow().(*Text)
	c.data = append(c.data, data...)
	Unref(t)
	return c
}

// AppendByte appends a single byte under the Append contract.
func (t *Text) AppendByte(b byte) *Text {
	return t.Append([]byte{b})
}

// Range keeps only the [first, first+length) slice of the payload, in
// place when uniquely owned. Bounds past the end of the payload are
// clipped; a negative first index is not.
func (t *Text) Range(first, length int) *Text {
	first, length = clipRange(len(t.data), first, length)
	if t.isUnique() {
		t.data = append(t.data[:0], t.data[first:first+length]...)
		return t
	}
	c := &Text{header: newHeader(t.pos), data: append([]byte(nil), t.data[first:first+length]...), Quote: t.Quote}
	track(c)
	Unref(t)
	return c
}

func clipRange(size, first, length int) (int, int) {
	if first > size {
		first = size
	}
	if first+length > size {
		length = size - first
	}
	if length < 0 {
		length = 0
	}
	return first, length
}

func (t *Text) quote() byte {
	if t.Quote == 0 {
		return '"'
	}
	return t.Quote
}

func (t *Text) Print(w io.Writer) error {
	p := &printer{w: w}
	q := string(t.quote())
	p.write(q)
	for _, b := range t.data {
		if b == t.quote() {
			p.write(q)
		}
		p.write(string(b))
	}
	p.write(q)
	return p.err
}
