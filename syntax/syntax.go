// Package syntax holds the table of operator priorities and delimiter
// pairs that configures the scanner and the parser.
//
// A table is loaded from a syntax description file, which is tokenized
// by the scanner using the very table being built. After loading, all
// lookups are binary searches over arrays sorted by opening name. The
// reserved spellings "\n", "\t" and "\b" stand for line separators,
// indent and unindent.
package syntax

import (
	"sort"
	"strings"
)

// Reserved spellings for the synthetic tokens.
const (
	NewlineName  = "\n"
	IndentName   = "\t"
	UnindentName = "\b"
)

type priorityEntry struct {
	name     string
	priority int
}

type delimiterEntry struct {
	open  string
	close string
}

type childEntry struct {
	open  string
	close string
	child *Table
}

// Table is an immutable syntax configuration. The only mutation after
// loading happens through Read, used by the in-source syntax directive;
// shared tables are cloned before that.
type Table struct {
	known []string

	infixes   []priorityEntry
	prefixes  []priorityEntry
	postfixes []priorityEntry

	comments []delimiterEntry
	texts    []delimiterEntry
	blocks   []delimiterEntry

	children []childEntry

	blockClosers []string

	// The distinguished priorities.
	Default   int
	Statement int
	Function  int
}

// NewTable returns an empty table with conventional priority defaults.
func NewTable() *Table {
	return &Table{Default: 0, Statement: 100, Function: 200}
}

// Clone returns a table that can be mutated without affecting the
// original. Child syntax tables are shared: they are never mutated in
// place.
func (t *Table) Clone() *Table {
	c := *t
	c.known = append([]string(nil), t.known...)
	c.infixes = append([]priorityEntry(nil), t.infixes...)
	c.prefixes = append([]priorityEntry(nil), t.prefixes...)
	c.postfixes = append([]priorityEntry(nil), t.postfixes...)
	c.comments = append([]delimiterEntry(nil), t.comments...)
	c.texts = append([]delimiterEntry(nil), t.texts...)
	c.blocks = append([]delimiterEntry(nil), t.blocks...)
	c.children = append([]childEntry(nil), t.children...)
	c.blockClosers = append([]string(nil), t.blockClosers...)
	return &c
}

func (t *Table) sortAll() {
	sort.Strings(t.known)
	t.known = dedup(t.known)
	byName := func(entries []priorityEntry) {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	}
	byName(t.infixes)
	byName(t.prefixes)
	byName(t.postfixes)
	byOpen := func(entries []delimiterEntry) {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].open < entries[j].open })
	}
	byOpen(t.comments)
	byOpen(t.texts)
	byOpen(t.blocks)
	sort.SliceStable(t.children, func(i, j int) bool { return t.children[i].open < t.children[j].open })

	t.blockClosers = t.blockClosers[:0]
	for _, b := range t.blocks {
		t.blockClosers = append(t.blockClosers, b.close)
	}
	sort.Strings(t.blockClosers)
}

// addKnown registers one more operator spelling, keeping the set sorted.
func (t *Table) addKnown(spelling string) {
	t.known = append(t.known, spelling)
	sort.Strings(t.known)
	t.known = dedup(t.known)
}

func dedup(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || sorted[i-1] != s {
			out = append(out, s)
		}
	}
	return out
}

func findPriority(entries []priorityEntry, name string) (int, bool) {
	i := sort.Search(len(entries), func(i int) bool { return entries[i].name >= name })
	if i < len(entries) && entries[i].name == name {
		return entries[i].priority, true
	}
	return 0, false
}

func findDelimiter(entries []delimiterEntry, open string) (string, bool) {
	i := sort.Search(len(entries), func(i int) bool { return entries[i].open >= open })
	if i < len(entries) && entries[i].open == open {
		return entries[i].close, true
	}
	return "", false
}

// InfixPriority returns the infix priority of a name. Block openers
// carry their block priority here.
func (t *Table) InfixPriority(name string) (int, bool) {
	return findPriority(t.infixes, name)
}

// PrefixPriority returns the prefix priority of a name.
func (t *Table) PrefixPriority(name string) (int, bool) {
	return findPriority(t.prefixes, name)
}

// PostfixPriority returns the postfix priority of a name.
func (t *Table) PostfixPriority(name string) (int, bool) {
	return findPriority(t.postfixes, name)
}

// IsOperatorOrPrefix reports whether spelling is a known operator or a
// strict prefix of one, which is what greedy symbol lexing needs.
func (t *Table) IsOperatorOrPrefix(spelling string) bool {
	i := sort.Search(len(t.known), func(i int) bool { return t.known[i] >= spelling })
	return i < len(t.known) && strings.HasPrefix(t.known[i], spelling)
}

// IsKnownOperator reports whether spelling is exactly a known operator.
func (t *Table) IsKnownOperator(spelling string) bool {
	i := sort.Search(len(t.known), func(i int) bool { return t.known[i] >= spelling })
	return i < len(t.known) && t.known[i] == spelling
}

// IsBlockOpen reports whether spelling opens a block.
func (t *Table) IsBlockOpen(spelling string) bool {
	_, ok := findDelimiter(t.blocks, spelling)
	return ok
}

// IsBlockClose reports whether spelling closes a block.
func (t *Table) IsBlockClose(spelling string) bool {
	i := sort.Search(len(t.blockClosers), func(i int) bool { return t.blockClosers[i] >= spelling })
	return i < len(t.blockClosers) && t.blockClosers[i] == spelling
}

// BlockClosing returns the closing delimiter matching a block opening.
func (t *Table) BlockClosing(open string) (string, bool) {
	return findDelimiter(t.blocks, open)
}

// CommentClosing returns the closing delimiter of a comment opening.
func (t *Table) CommentClosing(open string) (string, bool) {
	return findDelimiter(t.comments, open)
}

// TextClosing returns the closing delimiter of a delimited-text opening.
func (t *Table) TextClosing(open string) (string, bool) {
	return findDelimiter(t.texts, open)
}

// ChildSyntax returns the closing delimiter and table of a region
// parsed under a different syntax.
func (t *Table) ChildSyntax(open string) (string, *Table, bool) {
	i := sort.Search(len(t.children), func(i int) bool { return t.children[i].open >= open })
	if i < len(t.children) && t.children[i].open == open {
		return t.children[i].close, t.children[i].child, true
	}
	return "", nil, false
}
