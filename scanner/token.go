package scanner

import (
	"fmt"

	"github.com/alderlang/alder/position"
	"github.com/alderlang/alder/tree"
)

// Kind identifies the token classes produced by the scanner.
type Kind int

const (
	KindError Kind = iota

	KindEOF       // end of input
	KindInteger   // integer number
	KindReal      // real number
	KindText      // double-quoted text
	KindCharacter // single-quoted text
	KindLongText  // delimited text, e.g. << Hello >>
	KindName      // alphanumeric name
	KindSymbol    // punctuation symbol
	KindBlob      // binary object
	KindNewline   // end of line
	KindOpen      // block opening
	KindClose     // block closing
	KindIndent    // indentation
	KindUnindent  // unindentation, one per indent level
)

func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "eof"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindCharacter:
		return "character"
	case KindLongText:
		return "long text"
	case KindName:
		return "name"
	case KindSymbol:
		return "symbol"
	case KindBlob:
		return "blob"
	case KindNewline:
		return "newline"
	case KindOpen:
		return "open"
	case KindClose:
		return "close"
	case KindIndent:
		return "indent"
	case KindUnindent:
		return "unindent"
	}
	return "error"
}

// Token is one scanned element of the input.
type Token struct {
	Kind   Kind
	Source string       // source form, as written
	Pos    position.Pos // position of the first byte
	Value  tree.Node    // scanned value, one of the leaf variants

	// Spacing around the token, used by the parser to distinguish
	// prefix from infix uses of the same name.
	SpaceBefore bool
	SpaceAfter  bool
}

func (t *Token) String() string {
	if t.Source != "" {
		return fmt.Sprintf("%v %q", t.Kind, t.Source)
	}
	return t.Kind.String()
}

// Spelling returns the spelling of the token's name value: the
// normalized spelling of a NAME, SYMBOL, OPEN or CLOSE token, and the
// reserved name "\n", "\t" or "\b" of a NEWLINE, INDENT or UNINDENT
// token. It returns the empty string for the other kinds.
func (t *Token) Spelling() string {
	if n, ok := t.Value.(*tree.Name); ok {
		return n.Value()
	}
	return ""
}
