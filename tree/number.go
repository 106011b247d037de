package tree

import (
	"io"
	"strconv"

	"github.com/alderlang/alder/position"
	"github.com/alderlang/alder/utf8"
)

// Natural is an unsigned integer literal. Bases 0 and 10 render as plain
// decimal; any other base renders in the based form, e.g. 16#FF.
// Neg marks a literal produced by folding a unary minus.
type Natural struct {
	header
	Value uint64
	Base  uint
	Neg   bool
}

func NewNatural(pos position.Pos, value uint64) *Natural {
	n := &Natural{header: newHeader(pos), Value: value}
	track(n)
	return n
}

func NewBasedNatural(pos position.Pos, value uint64, base uint) *Natural {
	n := &Natural{header: newHeader(pos), Value: value, Base: base}
	track(n)
	return n
}

func (n *Natural) TypeName() string     { return "natural" }
func (n *Natural) Arity() int           { return 0 }
func (n *Natural) Child(i int) Node     { panic("tree: natural has no children") }
func (n *Natural) SetChild(int, Node)   { panic("tree: natural has no children") }

func (n *Natural) shallow() Node {
	c := &Natural{header: newHeader(n.pos), Value: n.Value, Base: n.Base, Neg: n.Neg}
	track(c)
	return c
}

// Negate folds a unary minus into the literal, in place when uniquely
// owned. It returns the handle to use afterwards.
func (n *Natural) Negate() *Natural {
	if n.isUnique() {
		n.Neg = !n.Neg
		return n
	}
	c := n.shallow().(*Natural)
	c.Neg = !c.Neg
	Unref(n)
	return c
}

func (n *Natural) Print(w io.Writer) error {
	p := &printer{w: w}
	if n.Neg {
		p.write("-")
	}
	if n.Base != 0 && n.Base != 10 {
		p.write(strconv.FormatUint(uint64(n.Base), 10))
		p.write("#")
		p.write(formatBased(n.Value, n.Base))
	} else {
		p.write(strconv.FormatUint(n.Value, 10))
	}
	return p.err
}

// formatBased formats a value in bases 2..36 and 64, uppercasing the
// letter digits the way the scanner accepts them.
func formatBased(value uint64, base uint) string {
	if base == 64 {
		const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
		if value == 0 {
			return "A"
		}
		var digits []byte
		for value > 0 {
			digits = append([]byte{alphabet[value%64]}, digits...)
			value /= 64
		}
		return string(digits)
	}
	s := strconv.FormatUint(value, int(base))
	b := []byte(s)
	for i := range b {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

// Real is a floating-point literal. Base records the base it was written
// in; the built-in rendering is decimal whatever the base.
type Real struct {
	header
	Value float64
	Base  uint
}

func NewReal(pos position.Pos, value float64) *Real {
	n := &Real{header: newHeader(pos), Value: value}
	track(n)
	return n
}

func NewBasedReal(pos position.Pos, value float64, base uint) *Real {
	n := &Real{header: newHeader(pos), Value: value, Base: base}
	track(n)
	return n
}

func (n *Real) TypeName() string   { return "real" }
func (n *Real) Arity() int         { return 0 }
func (n *Real) Child(i int) Node   { panic("tree: real has no children") }
func (n *Real) SetChild(int, Node) { panic("tree: real has no children") }

func (n *Real) shallow() Node {
	c := &Real{header: newHeader(n.pos), Value: n.Value, Base: n.Base}
	track(c)
	return c
}

// Negate folds a unary minus into the literal, in place when uniquely
// owned. It returns the handle to use afterwards.
func (n *Real) Negate() *Real {
	if n.isUnique() {
		n.Value = -n.Value
		return n
	}
	c := n.shallow().(*Real)
	c.Value = -c.Value
	Unref(n)
	return c
}

func (n *Real) Print(w io.Writer) error {
	s := strconv.FormatFloat(n.Value, 'g', -1, 64)
	// Keep the rendering recognizable as a real when the value is integral.
	if !hasRealMark(s) {
		s += ".0"
	}
	p := &printer{w: w}
	p.write(s)
	return p.err
}

func hasRealMark(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' || s[i] == 'e' || s[i] == 'E' ||
			utf8.IsLetter(s[i]) && s[i] != '-' && s[i] != '+' {
			return true
		}
	}
	return false
}
