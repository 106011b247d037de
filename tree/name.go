package tree

import (
	"io"

	"github.com/alderlang/alder/position"
	"github.com/alderlang/alder/utf8"
)

// Name is an identifier or operator symbol. Names produced by the
// scanner hold the normalized spelling: underscores stripped and ASCII
// letters lowercased. The reserved spellings "\n", "\t" and "\b" stand
// for line separators, indent and unindent.
type Name struct {
	header
	data []byte
}

func NewName(pos position.Pos, spelling string) *Name {
	n := &Name{header: newHeader(pos), data: []byte(spelling)}
	track(n)
	return n
}

func (n *Name) TypeName() string   { return "name" }
func (n *Name) Arity() int         { return 0 }
func (n *Name) Child(i int) Node   { panic("tree: name has no children") }
func (n *Name) SetChild(int, Node) { panic("tree: name has no children") }

// Value returns the spelling.
func (n *Name) Value() string { return string(n.data) }

// Bytes returns the spelling bytes. The slice is owned by the node.
func (n *Name) Bytes() []byte { return n.data }

// Eq compares the spelling against a string.
func (n *Name) Eq(s string) bool { return n != nil && string(n.data) == s }

// IsOperator reports whether the name is an operator symbol, such as +
// or -=, rather than an alphanumeric name.
func (n *Name) IsOperator() bool {
	return len(n.data) > 0 && utf8.IsPunct(n.data[0])
}

func (n *Name) shallow() Node {
	c := &Name{header: newHeader(n.pos), data: append([]byte(nil), n.data...)}
	track(c)
	return c
}

func (n *Name) Print(w io.Writer) error {
	if n == nil {
		return nil
	}
	p := &printer{w: w}
	p.write(string(n.data))
	return p.err
}

// IsValidName reports whether data obeys the name syntax: non-empty and
// either all punctuation, or a letter followed by letters and digits with
// single interior underscores only.
func IsValidName(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if utf8.IsPunct(data[0]) {
		for _, b := range data {
			if !utf8.IsPunct(b) {
				return false
			}
		}
		return true
	}
	if !utf8.IsLetter(data[0]) {
		return false
	}
	hadUnderscore := true
	for _, b := range data {
		if b == '_' {
			if hadUnderscore {
				return false
			}
			hadUnderscore = true
			continue
		}
		hadUnderscore = false
		if !utf8.IsAlnum(b) {
			return false
		}
	}
	return !hadUnderscore
}

// NormalizeName computes the spelling used for syntax-table lookups:
// underscores stripped, ASCII letters lowercased. Operator symbols are
// already canonical and pass through unchanged.
func NormalizeName(data []byte) string {
	if len(data) > 0 && utf8.IsPunct(data[0]) {
		return string(data)
	}
	out := make([]byte, 0, len(data))
	for _, b := range data {
		if b == '_' {
			continue
		}
		out = append(out, utf8.ToLower(b))
	}
	return string(out)
}
