// Package render prints parse trees back to source form under a
// configurable style sheet.
//
// A style sheet maps a format key, normally a tree type name, to a
// sequence of items. An item is either a quoted literal, written as-is,
// or another format key, rendered recursively. Types with no entry fall
// back to the node's built-in rendering.
package render

import (
	_ "embed"
	"sync"

	aerr "github.com/alderlang/alder/error"
	"github.com/alderlang/alder/position"
	"github.com/alderlang/alder/scanner"
	"github.com/alderlang/alder/tree"
)

type itemKind int

const (
	literalItem itemKind = iota
	keyItem
)

type item struct {
	kind itemKind
	text string
}

// Style is a loaded style sheet. Keys are stored normalized, the way
// the scanner reports names.
type Style struct {
	entries map[string][]item
}

func NewStyle() *Style {
	return &Style{entries: map[string][]item{}}
}

func (s *Style) lookup(key string) ([]item, bool) {
	items, ok := s.entries[key]
	return items, ok
}

// Set installs one entry, mostly for tests.
func (s *Style) Set(key string, items ...string) {
	var list []item
	for _, it := range items {
		list = append(list, item{kind: keyItem, text: it})
	}
	s.entries[tree.NormalizeName([]byte(key))] = list
}

// ReadFile loads a style description. Entries take the form
//
//	key = item1 item2 ...
//
// and are separated by line ends or unindents; quoted items are
// literals, bare names are format keys.
func (s *Style) ReadFile(name string, registry *position.Registry, errs *aerr.Errors) error {
	scan := scanner.New(registry, nil, errs)
	if err := scan.OpenFile(name); err != nil {
		return err
	}
	defer scan.Close()
	s.read(scan, errs)
	return nil
}

// ReadString loads a style description from an in-memory source.
func (s *Style) ReadString(name, src string, registry *position.Registry, errs *aerr.Errors) {
	scan := scanner.New(registry, nil, errs)
	scan.OpenString(name, src)
	s.read(scan, errs)
}

func (s *Style) read(scan *scanner.Scanner, errs *aerr.Errors) {
	var (
		key      string
		haveKey  bool
		assigned bool
		items    []item
	)
	flush := func() {
		if haveKey && assigned {
			s.entries[key] = items
		}
		key, haveKey, assigned = "", false, false
		items = nil
	}
	for {
		tok := scan.Read()
		switch tok.Kind {
		case scanner.KindEOF:
			flush()
			return

		case scanner.KindNewline, scanner.KindUnindent:
			flush()

		case scanner.KindIndent:
			// Indented lines continue the current entry.

		case scanner.KindSymbol:
			if tok.Spelling() == "=" {
				if assigned {
					errs.Errorf(tok.Pos, "duplicate = in style entry %q", key)
				}
				if !haveKey {
					errs.Errorf(tok.Pos, "style entry with no key")
				}
				assigned = true
				continue
			}
			s.add(tok, &key, &haveKey, assigned, &items, item{kind: keyItem, text: tok.Spelling()}, errs)

		case scanner.KindName:
			s.add(tok, &key, &haveKey, assigned, &items, item{kind: keyItem, text: tok.Spelling()}, errs)

		case scanner.KindText, scanner.KindCharacter:
			value := tok.Value.(*tree.Text).Value()
			s.add(tok, &key, &haveKey, assigned, &items, item{kind: literalItem, text: value}, errs)

		case scanner.KindInteger, scanner.KindReal, scanner.KindBlob:
			s.add(tok, &key, &haveKey, assigned, &items, item{kind: literalItem, text: tok.Source}, errs)

		case scanner.KindError:
			// Reported by the scanner.

		default:
			errs.Errorf(tok.Pos, "unexpected %v in style description", tok.Kind)
		}
	}
}

func (s *Style) add(tok *scanner.Token, key *string, haveKey *bool, assigned bool,
	items *[]item, it item, errs *aerr.Errors) {
	if !*haveKey {
		if it.kind == literalItem {
			errs.Errorf(tok.Pos, "style key must be a name, not a literal")
			return
		}
		*key = it.text
		*haveKey = true
		return
	}
	if !assigned {
		errs.Errorf(tok.Pos, "missing = after style key %q", *key)
		return
	}
	*items = append(*items, it)
}

//go:embed alder.style
var builtinStyle string

var builtin struct {
	once  sync.Once
	style *Style
}

// Builtin returns the default style sheet compiled into the binary.
func Builtin() *Style {
	builtin.once.Do(func() {
		s := NewStyle()
		errs := aerr.NewErrors(nil, nil)
		s.ReadString("<builtin>", builtinStyle, position.NewRegistry(), errs)
		builtin.style = s
	})
	return builtin.style
}
