package syntax

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aerr "github.com/alderlang/alder/error"
	"github.com/alderlang/alder/position"
)

const sample = `
DEFAULT 0
STATEMENT 100
FUNCTION 800

BLOCK
	10	INDENT	UNINDENT
	400	(	)

COMMENT
	"//"	NEWLINE

TEXT
	"<<"	">>"

INFIX
	100	;	NEWLINE
	300	+	-
	400	*

PREFIX
	350	-	not

POSTFIX
	390	%
`

func load(t *testing.T, src string) *Table {
	t.Helper()
	tbl := NewTable()
	errs := aerr.NewErrors(nil, io.Discard)
	tbl.ReadString("test.syntax", src, position.NewRegistry(), errs)
	require.Equal(t, 0, errs.Count())
	return tbl
}

func TestPriorities(t *testing.T) {
	tbl := load(t, sample)

	assert.Equal(t, 0, tbl.Default)
	assert.Equal(t, 100, tbl.Statement)
	assert.Equal(t, 800, tbl.Function)

	prio, ok := tbl.InfixPriority("+")
	require.True(t, ok)
	assert.Equal(t, 300, prio)

	prio, ok = tbl.InfixPriority(NewlineName)
	require.True(t, ok, "the NEWLINE keyword maps to the newline name")
	assert.Equal(t, 100, prio)

	prio, ok = tbl.PrefixPriority("not")
	require.True(t, ok)
	assert.Equal(t, 350, prio)

	prio, ok = tbl.PostfixPriority("%")
	require.True(t, ok)
	assert.Equal(t, 390, prio)

	_, ok = tbl.InfixPriority("unknown")
	assert.False(t, ok)
}

func TestDelimiters(t *testing.T) {
	tbl := load(t, sample)

	closing, ok := tbl.BlockClosing("(")
	require.True(t, ok)
	assert.Equal(t, ")", closing)
	assert.True(t, tbl.IsBlockOpen("("))
	assert.True(t, tbl.IsBlockClose(")"))

	closing, ok = tbl.BlockClosing(IndentName)
	require.True(t, ok, "INDENT and UNINDENT map to the synthetic names")
	assert.Equal(t, UnindentName, closing)

	prio, ok := tbl.InfixPriority("(")
	require.True(t, ok, "a block opener carries the block priority")
	assert.Equal(t, 400, prio)

	closing, ok = tbl.CommentClosing("//")
	require.True(t, ok)
	assert.Equal(t, NewlineName, closing)

	closing, ok = tbl.TextClosing("<<")
	require.True(t, ok)
	assert.Equal(t, ">>", closing)
}

func TestOperatorPrefixes(t *testing.T) {
	tbl := load(t, `
INFIX
	300	"<="	"<<"
`)
	assert.True(t, tbl.IsOperatorOrPrefix("<"), "a strict prefix of a known operator")
	assert.True(t, tbl.IsOperatorOrPrefix("<="))
	assert.False(t, tbl.IsOperatorOrPrefix("<>"))
	assert.True(t, tbl.IsKnownOperator("<="))
	assert.False(t, tbl.IsKnownOperator("<"))
}

func TestCloneIsIndependent(t *testing.T) {
	tbl := load(t, sample)
	clone := tbl.Clone()
	errs := aerr.NewErrors(nil, io.Discard)
	clone.ReadString("extra.syntax", "INFIX\n\t500\tcross\n", position.NewRegistry(), errs)

	_, ok := clone.InfixPriority("cross")
	assert.True(t, ok)
	_, ok = tbl.InfixPriority("cross")
	assert.False(t, ok, "the original table must not see the clone's entries")
}

func TestChildSyntax(t *testing.T) {
	dir := t.TempDir()
	child := filepath.Join(dir, "child.syntax")
	require.NoError(t, os.WriteFile(child, []byte("INFIX\n\t300\tplus\n"), 0o644))
	main := filepath.Join(dir, "main.syntax")
	require.NoError(t, os.WriteFile(main,
		[]byte("SYNTAX \"child.syntax\" \"<<<\" \">>>\"\n"), 0o644))

	tbl := NewTable()
	errs := aerr.NewErrors(nil, io.Discard)
	require.NoError(t, tbl.ReadFile(main, position.NewRegistry(), errs))
	require.Equal(t, 0, errs.Count())

	closing, childTable, ok := tbl.ChildSyntax("<<<")
	require.True(t, ok)
	assert.Equal(t, ">>>", closing)
	require.NotNil(t, childTable)
	_, ok = childTable.InfixPriority("plus")
	assert.True(t, ok)
	assert.True(t, childTable.IsOperatorOrPrefix(">"),
		"the child table lexes its own closing")
}

func TestBuiltinLoads(t *testing.T) {
	tbl := Builtin()
	require.NotNil(t, tbl)
	assert.True(t, tbl.IsBlockOpen("("))
	_, ok := tbl.InfixPriority("+")
	assert.True(t, ok)
	_, ok = tbl.InfixPriority(NewlineName)
	assert.True(t, ok)
}
