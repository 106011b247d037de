package tree

import (
	"io"

	"github.com/alderlang/alder/position"
)

// DelimitedText is a text literal bracketed by explicit opening and
// closing names, e.g. << Hello >>.
type DelimitedText struct {
	header
	Value   *Text
	Opening *Name
	Closing *Name
}

// NewDelimitedText adopts the construction references of its children.
func NewDelimitedText(pos position.Pos, value *Text, opening, closing *Name) *DelimitedText {
	d := &DelimitedText{header: newHeader(pos), Value: value, Opening: opening, Closing: closing}
	track(d)
	return d
}

func (d *DelimitedText) TypeName() string { return "delimited_text" }
func (d *DelimitedText) Arity() int       { return 3 }

func (d *DelimitedText) Child(i int) Node {
	switch i {
	case 0:
		if d.Value == nil {
			return nil
		}
		return d.Value
	case 1:
		if d.Opening == nil {
			return nil
		}
		return d.Opening
	case 2:
		if d.Closing == nil {
			return nil
		}
		return d.Closing
	}
	panic("tree: delimited text child out of range")
}

func (d *DelimitedText) SetChild(i int, c Node) {
	switch i {
	case 0:
		old := d.Value
		d.Value = Ref(c).(*Text)
		Unref(old)
	case 1:
		old := d.Opening
		d.Opening = Ref(c).(*Name)
		Unref(old)
	case 2:
		old := d.Closing
		d.Closing = Ref(c).(*Name)
		Unref(old)
	default:
		panic("tree: delimited text child out of range")
	}
}

func (d *DelimitedText) shallow() Node {
	c := &DelimitedText{header: newHeader(d.pos), Value: d.Value, Opening: d.Opening, Closing: d.Closing}
	if c.Value != nil {
		Ref(c.Value)
	}
	refName(c.Opening)
	refName(c.Closing)
	track(c)
	return c
}

func (d *DelimitedText) Print(w io.Writer) error {
	p := &printer{w: w}
	p.node(d.Opening)
	if d.Value != nil {
		p.write(string(d.Value.Bytes()))
	}
	p.node(d.Closing)
	return p.err
}
