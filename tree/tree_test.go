package tree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alderlang/alder/position"
)

func TestArity(t *testing.T) {
	tests := []struct {
		caption string
		node    Node
		arity   int
	}{
		{"natural", NewNatural(1, 42), 0},
		{"real", NewReal(1, 3.25), 0},
		{"text", NewTextString(1, "abc"), 0},
		{"name", NewName(1, "abc"), 0},
		{"blob", NewBlob(1, []byte{0xFF}, 16), 0},
		{
			"delimited text",
			NewDelimitedText(1, NewTextString(1, "Hello"), NewName(1, "<<"), NewName(1, ">>")),
			3,
		},
		{"prefix", NewPrefix(1, NewName(1, "-"), NewNatural(1, 1)), 2},
		{"postfix", NewPostfix(1, NewNatural(1, 3), NewName(1, "%")), 2},
		{"pfix", NewPfix(1, NewTextString(1, "a"), NewTextString(1, "b")), 2},
		{"infix", NewInfix(1, NewName(1, "+"), NewNatural(1, 1), NewNatural(1, 2)), 3},
		{
			"block",
			NewBlock(1, NewName(1, "("), NewName(1, ")"), nil,
				NewNatural(1, 1), NewNatural(1, 2), NewNatural(1, 3)),
			3,
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.arity, tt.node.Arity(), tt.caption)
		assert.NotEmpty(t, String(tt.node), tt.caption)
	}
}

func TestBuiltinPrinting(t *testing.T) {
	tests := []struct {
		caption string
		node    Node
		want    string
	}{
		{"natural", NewNatural(0, 42), "42"},
		{"negative natural", NewNatural(0, 1).Negate(), "-1"},
		{"based natural", NewBasedNatural(0, 0xFF00, 16), "16#FF00"},
		{"real", NewReal(0, 1.5), "1.5"},
		{"integral real keeps its dot", NewReal(0, 2), "2.0"},
		{"text doubles embedded quotes", NewTextString(0, `He said "hi`), `"He said ""hi"`},
		{"character keeps single quotes", NewQuotedText(0, []byte("a"), '\''), "'a'"},
		{"name", NewName(0, "joedalton"), "joedalton"},
		{"operator name", NewName(0, "-="), "-="},
		{"blob", NewBlob(0, []byte{0xFF, 0x00}, 16), "$FF00"},
		{
			"delimited text",
			NewDelimitedText(0, NewTextString(0, "Hello"), NewName(0, "<<"), NewName(0, ">>")),
			"<<Hello>>",
		},
		{
			"infix",
			NewInfix(0, NewName(0, "+"), NewNatural(0, 42), NewNatural(0, 13)),
			"42 + 13",
		},
		{
			"prefix",
			NewPrefix(0, NewName(0, "write"), NewName(0, "a")),
			"write a",
		},
		{
			"line infix",
			NewInfix(0, NewName(0, "\n"), NewName(0, "a"), NewName(0, "b")),
			"a\nb",
		},
		{
			"block with separator",
			func() Node {
				b := NewBlock(0, NewName(0, "("), NewName(0, ")"), nil,
					NewNatural(0, 1), NewNatural(0, 2), NewNatural(0, 3))
				b.SetSeparator(NewName(0, ","))
				return b
			}(),
			"(1, 2, 3)",
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, String(tt.node), tt.caption)
	}
}

func TestCloneIsDeep(t *testing.T) {
	left := NewNatural(3, 42)
	right := NewNatural(5, 13)
	n := NewInfix(4, NewName(4, "+"), left, right)

	c := Clone(n).(*Infix)
	require.NotSame(t, n, c)
	assert.Equal(t, String(n), String(c))

	// Mutating the original child must not affect the clone.
	n.SetChild(0, NewNatural(3, 99))
	assert.Equal(t, "42 + 13", String(c))
	assert.Equal(t, "99 + 13", String(n))
}

func TestCopySharesChildren(t *testing.T) {
	child := NewNatural(1, 7)
	p := NewPrefix(1, NewName(1, "-"), child)
	c := Copy(p).(*Prefix)
	assert.Same(t, p.Operand, c.Operand)
	assert.Equal(t, 2, child.Refcount())
	Unref(c)
	assert.Equal(t, 1, child.Refcount())
}

func TestSetChildAdjustsRefcounts(t *testing.T) {
	old := NewNatural(1, 1)
	repl := NewNatural(1, 2)
	n := NewPfix(1, old, NewNatural(1, 3))
	require.Equal(t, 1, old.Refcount())

	n.SetChild(0, repl)
	assert.Equal(t, 0, old.Refcount())
	assert.Equal(t, 2, repl.Refcount())
	Unref(repl) // give the construction reference up; the parent keeps its own
	assert.Equal(t, 1, repl.Refcount())
}

func TestAppendHandleContract(t *testing.T) {
	t.Run("unique owner mutates in place", func(t *testing.T) {
		b := NewBlob(0, []byte{1, 2}, 16)
		nb := b.Append([]byte{3})
		assert.Same(t, b, nb)
		assert.Equal(t, []byte{1, 2, 3}, nb.Bytes())
	})

	t.Run("shared owner gets a fresh copy", func(t *testing.T) {
		b := NewBlob(0, []byte{1, 2}, 16)
		Ref(b) // second owner
		nb := b.Append([]byte{3})
		assert.NotSame(t, b, nb)
		assert.Equal(t, []byte{1, 2}, b.Bytes())
		assert.Equal(t, []byte{1, 2, 3}, nb.Bytes())
		assert.Equal(t, 1, b.Refcount())
		assert.Equal(t, 1, nb.Refcount())
	})

	t.Run("text range clips and copies when shared", func(t *testing.T) {
		x := NewTextString(0, "abcdef")
		Ref(x)
		y := x.Range(2, 100)
		assert.NotSame(t, x, y)
		assert.Equal(t, "cdef", y.Value())
		assert.Equal(t, "abcdef", x.Value())
	})
}

func TestBlockOperations(t *testing.T) {
	b := NewBlock(0, NewName(0, "("), NewName(0, ")"), nil)
	b = b.Push(NewNatural(0, 1))
	b = b.Push(NewNatural(0, 2))
	require.Equal(t, 2, b.Arity())
	assert.Equal(t, "2", String(b.Top()))

	b = b.Pop()
	assert.Equal(t, 1, b.Arity())

	other := NewBlock(0, NewName(0, "("), NewName(0, ")"), nil,
		NewNatural(0, 8), NewNatural(0, 9))
	b = b.Append(other)
	assert.Equal(t, 3, b.Arity())

	b = b.Range(1, 2)
	require.Equal(t, 2, b.Arity())
	assert.Equal(t, "8", String(b.Child(0)))
	assert.Equal(t, "9", String(b.Child(1)))
}

func TestNameValidity(t *testing.T) {
	valid := []string{"a", "abc", "r19", "big_number", "+", "-=", "<<", "état"}
	for _, s := range valid {
		assert.True(t, IsValidName([]byte(s)), s)
	}
	invalid := []string{"", "_a", "a__b", "a_", "1a", "a+b", "+a"}
	for _, s := range invalid {
		assert.False(t, IsValidName([]byte(s)), s)
	}
}

func TestNameNormalization(t *testing.T) {
	assert.Equal(t, "joedalton", NormalizeName([]byte("Joe_Dalton")))
	assert.Equal(t, "joedalton", NormalizeName([]byte("JOEDALTON")))
	assert.Equal(t, "+=", NormalizeName([]byte("+=")))
}

func TestTextOf(t *testing.T) {
	n := NewInfix(0, NewName(0, "+"), NewNatural(0, 1), NewNatural(0, 2))
	txt := TextOf(n)
	assert.Equal(t, "1 + 2", txt.Value())
	assert.Equal(t, position.Pos(0), txt.Pos())
}

func TestFreezeThawAreStubs(t *testing.T) {
	var b strings.Builder
	assert.ErrorIs(t, Freeze(&b, NewNatural(0, 1)), ErrNotImplemented)
	_, err := Thaw(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestMemoryCheckpoint(t *testing.T) {
	SetTracking(true)
	defer SetTracking(false)

	n := NewInfix(0, NewName(0, "+"), NewNatural(0, 1), NewNatural(0, 2))
	require.Equal(t, 4, LiveCount())

	var report strings.Builder
	live := Checkpoint(&report, 4)
	assert.Equal(t, 4, live)
	assert.Empty(t, report.String())

	Unref(n)
	live = Checkpoint(&report, 0)
	assert.Equal(t, 0, live)
	assert.Empty(t, report.String())
}

func TestRefcountUnderflowPanics(t *testing.T) {
	n := NewNatural(0, 1)
	Unref(n)
	assert.Panics(t, func() { Unref(n) })
}
