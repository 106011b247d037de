package tree

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/alderlang/alder/position"
)

// Blob is an uninterpreted byte sequence. Base records the base the blob
// was written in (16 when zero) and selects the rendering: hexadecimal
// for the bit-packing bases, the standard alphabet for base 64.
type Blob struct {
	header
	data []byte
	Base uint
}

func NewBlob(pos position.Pos, data []byte, base uint) *Blob {
	b := &Blob{header: newHeader(pos), data: append([]byte(nil), data...), Base: base}
	track(b)
	return b
}

func (b *Blob) TypeName() string   { return "blob" }
func (b *Blob) Arity() int         { return 0 }
func (b *Blob) Child(i int) Node   { panic("tree: blob has no children") }
func (b *Blob) SetChild(int, Node) { panic("tree: blob has no children") }

// Bytes returns the payload. The slice is owned by the node.
func (b *Blob) Bytes() []byte { return b.data }

// Size returns the payload length in bytes.
func (b *Blob) Size() int { return len(b.data) }

func (b *Blob) shallow() Node {
	c := &Blob{header: newHeader(b.pos), data: append([]byte(nil), b.data...), Base: b.Base}
	track(c)
	return c
}

// Append grows the payload, in place when the node is uniquely owned.
// It returns the handle to use afterwards.
func (b *Blob) Append(data []byte) *Blob {
	if b.isUnique() {
		b.data = append(b.data, data...)
		return b
	}
	c := b.shallow().(*Blob)
	c.data = append(c.data, data...)
	Unref(b)
	return c
}

// Range keeps only the [first, first+length) slice of the payload, in
// place when uniquely owned. Bounds past the end of the payload are
// clipped; a negative first index is not.
func (b *Blob) Range(first, length int) *Blob {
	first, length = clipRange(len(b.data), first, length)
	if b.isUnique() {
		b.data = append(b.data[:0], b.data[first:first+length]...)
		return b
	}
	c := &Blob{header: newHeader(b.pos), data: append([]byte(nil), b.data[first:first+length]...), Base: b.Base}
	track(c)
	Unref(b)
	return c
}

func (b *Blob) Print(w io.Writer) error {
	p := &printer{w: w}
	p.write("$")
	if b.Base == 64 {
		p.write("64#")
		p.write(base64.StdEncoding.EncodeToString(b.data))
		p.write("$")
		return p.err
	}
	for _, c := range b.data {
		p.write(fmt.Sprintf("%02X", c))
	}
	return p.err
}
