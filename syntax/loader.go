package syntax

import (
	"path/filepath"

	aerr "github.com/alderlang/alder/error"
	"github.com/alderlang/alder/position"
	"github.com/alderlang/alder/scanner"
	"github.com/alderlang/alder/tree"
)

// The loader is a small state machine keyed by the section keywords of
// the syntax description format. An integer token sets the priority for
// the entries that follow; in the delimiter sections, spellings pair up
// as opening and closing.

type section int

const (
	sectionUnknown section = iota
	sectionInfix
	sectionPrefix
	sectionPostfix
	sectionBlock
	sectionComment
	sectionText
	sectionSyntax
	sectionStatement
	sectionFunction
	sectionDefault
)

var sectionKeywords = map[string]section{
	"infix":     sectionInfix,
	"prefix":    sectionPrefix,
	"postfix":   sectionPostfix,
	"block":     sectionBlock,
	"comment":   sectionComment,
	"text":      sectionText,
	"syntax":    sectionSyntax,
	"statement": sectionStatement,
	"function":  sectionFunction,
	"default":   sectionDefault,
}

// reservedSpellings maps the keyword forms of the synthetic tokens to
// their internal names. Quoting a spelling bypasses the mapping.
var reservedSpellings = map[string]string{
	"newline":  NewlineName,
	"indent":   IndentName,
	"unindent": UnindentName,
}

// ReadFile loads the named syntax description into the table. Child
// syntax files are resolved relative to the description's directory.
func (t *Table) ReadFile(name string, registry *position.Registry, errs *aerr.Errors) error {
	scan := scanner.New(registry, t, errs)
	if err := scan.OpenFile(name); err != nil {
		return err
	}
	defer scan.Close()
	t.read(scan, filepath.Dir(name), errs, false)
	return nil
}

// ReadString loads a syntax description from an in-memory source.
func (t *Table) ReadString(name, src string, registry *position.Registry, errs *aerr.Errors) {
	scan := scanner.New(registry, t, errs)
	scan.OpenString(name, src)
	t.read(scan, ".", errs, false)
}

// Read loads additional entries from an already-open scanner: this is
// the in-source syntax directive. The directive covers either the rest
// of its line or its own indented section. When the loader had to
// consume a token belonging to the enclosing block to detect the end,
// that token is returned for the caller to process.
func (t *Table) Read(scan *scanner.Scanner, errs *aerr.Errors) *scanner.Token {
	old := scan.SetSyntax(t)
	defer scan.SetSyntax(old)
	return t.read(scan, ".", errs, true)
}

func (t *Table) read(scan *scanner.Scanner, baseDir string, errs *aerr.Errors, directive bool) *scanner.Token {
	state := sectionUnknown
	priority := t.Default
	pendingOpen := ""
	havePending := false
	var childTable *Table

	depth := 0

	flushPending := func(pos position.Pos) {
		if havePending {
			errs.Errorf(pos, "syntax delimiter %q has no closing", pendingOpen)
			havePending = false
		}
	}

	addSpelling := func(pos position.Pos, spelling string) {
		switch state {
		case sectionInfix:
			t.infixes = append(t.infixes, priorityEntry{name: spelling, priority: priority})
			t.known = append(t.known, spelling)
		case sectionPrefix:
			t.prefixes = append(t.prefixes, priorityEntry{name: spelling, priority: priority})
			t.known = append(t.known, spelling)
		case sectionPostfix:
			t.postfixes = append(t.postfixes, priorityEntry{name: spelling, priority: priority})
			t.known = append(t.known, spelling)
		case sectionBlock:
			if !havePending {
				pendingOpen, havePending = spelling, true
				return
			}
			t.blocks = append(t.blocks, delimiterEntry{open: pendingOpen, close: spelling})
			t.infixes = append(t.infixes, priorityEntry{name: pendingOpen, priority: priority})
			t.known = append(t.known, pendingOpen, spelling)
			havePending = false
		case sectionComment:
			if !havePending {
				pendingOpen, havePending = spelling, true
				return
			}
			t.comments = append(t.comments, delimiterEntry{open: pendingOpen, close: spelling})
			t.known = append(t.known, pendingOpen, spelling)
			havePending = false
		case sectionText:
			if !havePending {
				pendingOpen, havePending = spelling, true
				return
			}
			t.texts = append(t.texts, delimiterEntry{open: pendingOpen, close: spelling})
			t.known = append(t.known, pendingOpen, spelling)
			havePending = false
		case sectionSyntax:
			if childTable == nil {
				errs.Errorf(pos, "syntax delimiter %q appears before its description file", spelling)
				return
			}
			if !havePending {
				pendingOpen, havePending = spelling, true
				return
			}
			t.children = append(t.children, childEntry{open: pendingOpen, close: spelling, child: childTable})
			t.known = append(t.known, pendingOpen, spelling)
			// The child must lex its own closing so the region can end.
			childTable.addKnown(spelling)
			havePending = false
		default:
			errs.Errorf(pos, "syntax entry %q belongs to no section", spelling)
		}
	}

	finish := func(pos position.Pos) {
		flushPending(pos)
		t.sortAll()
	}

	for {
		tok := scan.Read()
		switch tok.Kind {
		case scanner.KindEOF:
			finish(tok.Pos)
			return nil

		case scanner.KindIndent:
			depth++

		case scanner.KindUnindent:
			if directive && depth == 0 {
				// This unindent closes the enclosing block.
				finish(tok.Pos)
				return tok
			}
			depth--
			if directive && depth == 0 {
				finish(tok.Pos)
				return nil
			}

		case scanner.KindNewline:
			if directive && depth == 0 {
				finish(tok.Pos)
				return tok
			}

		case scanner.KindInteger:
			value := int(tok.Value.(*tree.Natural).Value)
			switch state {
			case sectionStatement:
				t.Statement = value
			case sectionFunction:
				t.Function = value
			case sectionDefault:
				t.Default = value
			default:
				priority = value
			}

		case scanner.KindName:
			spelling := tok.Spelling()
			if sec, ok := sectionKeywords[spelling]; ok {
				flushPending(tok.Pos)
				state = sec
				childTable = nil
				continue
			}
			if mapped, ok := reservedSpellings[spelling]; ok {
				spelling = mapped
			}
			addSpelling(tok.Pos, spelling)

		case scanner.KindSymbol, scanner.KindOpen, scanner.KindClose:
			addSpelling(tok.Pos, tok.Spelling())

		case scanner.KindText, scanner.KindCharacter:
			value := tok.Value.(*tree.Text).Value()
			if state == sectionSyntax && childTable == nil {
				childTable = NewTable()
				path := value
				if !filepath.IsAbs(path) {
					path = filepath.Join(baseDir, value)
				}
				registry := position.NewRegistry()
				if err := childTable.ReadFile(path, registry, errs); err != nil {
					errs.Errorf(tok.Pos, "cannot read syntax file %q: %v", value, err)
					childTable = nil
				}
				continue
			}
			addSpelling(tok.Pos, value)

		case scanner.KindError:
			// Already reported by the scanner.

		default:
			errs.Errorf(tok.Pos, "unexpected %v in syntax description", tok.Kind)
		}
	}
}
