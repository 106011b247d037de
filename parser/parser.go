// Package parser turns the scanner's token stream into a parse tree.
//
// Parsing is operator-precedence driven: an explicit pending stack holds
// partially-built infix and prefix applications, and is flushed whenever
// a lower-priority operator arrives. Even priorities associate left,
// odd priorities associate right. Newlines are infix operators unless
// the following token continues the statement, blocks open recursively,
// and a name carrying both a prefix and an infix priority is read as one
// or the other depending on the spacing around it.
package parser

import (
	aerr "github.com/alderlang/alder/error"
	"github.com/alderlang/alder/position"
	"github.com/alderlang/alder/scanner"
	"github.com/alderlang/alder/syntax"
	"github.com/alderlang/alder/tree"
)

// Parser drives one scanner with one syntax table.
type Parser struct {
	scan     *scanner.Scanner
	table    *syntax.Table
	errs     *aerr.Errors
	peeked   *scanner.Token
	comments []*tree.Text
}

// New returns a parser reading from scan under the given syntax.
func New(scan *scanner.Scanner, table *syntax.Table, errs *aerr.Errors) *Parser {
	return &Parser{scan: scan, table: table, errs: errs}
}

// Parse parses the whole input and returns the resulting tree, nil for
// an empty input. Diagnostics are recorded and parsing continues on a
// best effort basis; when any diagnostic was recorded the combined
// error is returned along with the tree.
func Parse(scan *scanner.Scanner, table *syntax.Table, errs *aerr.Errors) (tree.Node, error) {
	p := New(scan, table, errs)
	result := p.parseBlock("", "")
	if errs.Count() > 0 {
		return result, errs.Err()
	}
	return result, nil
}

// Comments returns the comment texts collected while parsing.
func (p *Parser) Comments() []*tree.Text {
	return p.comments
}

func (p *Parser) next() *scanner.Token {
	if tok := p.peeked; tok != nil {
		p.peeked = nil
		return tok
	}
	return p.scan.Read()
}

func (p *Parser) peek() *scanner.Token {
	if p.peeked == nil {
		p.peeked = p.scan.Read()
	}
	return p.peeked
}

// frame is one entry of the pending operator stack. A frame with an
// operator is a half-built infix; a frame without is a tree waiting to
// be applied to the upcoming operand as a prefix or juxtaposition.
type frame struct {
	op       *tree.Name
	tree     tree.Node
	priority int
}

// blockSeparators is the conventional separator of the standard block
// delimiters. Blocks opened by other delimiters adopt the first
// statement-level infix found at block level.
var blockSeparators = map[string]string{
	syntax.IndentName: syntax.NewlineName,
	"(":               ",",
	"[":               ",",
	"{":               ";",
}

// parseBlock parses the content of one block, or the whole input when
// opening is empty. It implements one level of the operator-precedence
// loop with its own pending stack; nested blocks recurse.
func (p *Parser) parseBlock(opening, closing string) tree.Node {
	var (
		result         tree.Node
		resultPriority = p.table.Default
		stack          []frame
		children       []tree.Node
		collected      bool
		separator      string
		adopted        bool
		newStatement   = true
		isExpression   = false
		blockPos       = p.scan.Pos()
	)
	realBlock := opening != ""
	if sep, ok := blockSeparators[opening]; ok {
		separator = sep
	}

	// flush reduces the pending stack while its top binds at least as
	// tightly as priority; the mask makes odd priorities right
	// associative.
	flush := func(priority int) {
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.priority&^1 < priority {
				break
			}
			stack = stack[:len(stack)-1]
			if top.op != nil {
				if result == nil {
					tree.Unref(top.op)
					result = top.tree
					continue
				}
				result = tree.NewInfix(top.tree.Pos(), top.op, top.tree, result)
				continue
			}
			if result == nil {
				result = top.tree
				continue
			}
			result = applyPrefix(top.tree, result)
		}
	}

	// operand installs a new operand, stacking whatever was already
	// built as a pending prefix application.
	operand := func(n tree.Node, priority int) {
		if result != nil {
			stack = append(stack, frame{tree: result, priority: resultPriority})
		}
		result = n
		resultPriority = priority
	}

	// collect closes the current sub-expression into the block's child
	// list, at a block-level separator or at the end of the block.
	collect := func() {
		if result != nil {
			flush(0)
			children = append(children, result)
			result = nil
			resultPriority = p.table.Default
		}
		collected = true
	}

	finish := func() tree.Node {
		flush(0)
		if !realBlock {
			return result
		}
		if collected || result != nil {
			collect()
		}
		pos := blockPos
		var sepName *tree.Name
		if separator != "" {
			sepName = tree.NewName(pos, separator)
		}
		return tree.NewBlock(pos, tree.NewName(pos, opening), tree.NewName(pos, closing),
			sepName, children...)
	}

	for {
		tok := p.next()
		switch tok.Kind {
		case scanner.KindEOF:
			if closing != "" && closing != syntax.UnindentName {
				p.errs.Errorf(tok.Pos, "end of input before %q closing the block opened by %q",
					closing, opening)
			}
			return finish()

		case scanner.KindError:
			// Reported by the scanner; resume with the next token.

		case scanner.KindInteger, scanner.KindReal, scanner.KindText,
			scanner.KindCharacter, scanner.KindBlob:
			operand(tok.Value, p.table.Function)
			if newStatement {
				isExpression = true
			}
			newStatement = false

		case scanner.KindNewline:
			if p.suppressNewline(result) {
				tree.Unref(tok.Value)
				continue
			}
			priority, ok := p.table.InfixPriority(syntax.NewlineName)
			if !ok {
				priority = p.table.Statement
			}
			flush(priority)
			if p.separates(realBlock, &separator, &adopted, len(stack), syntax.NewlineName, priority, tok.Pos) {
				tree.Unref(tok.Value)
				collect()
				newStatement = true
				continue
			}
			stack = append(stack, frame{op: tok.Value.(*tree.Name), tree: result, priority: priority})
			result = nil
			newStatement = true
			isExpression = false

		case scanner.KindIndent:
			p.parseIndent(tok, &result, &resultPriority)
			newStatement = false

		case scanner.KindUnindent:
			if closing == syntax.UnindentName {
				tree.Unref(tok.Value)
				return finish()
			}
			// An unindent back to a baseline set inside a parenthesized
			// block; the parenthesis is still the closing delimiter.
			tree.Unref(tok.Value)

		case scanner.KindOpen:
			p.parseOpen(tok, operand)
			newStatement = false

		case scanner.KindClose:
			spelling := tok.Spelling()
			tree.Unref(tok.Value)
			if spelling != closing {
				p.errs.Errorf(tok.Pos, "unmatched %q, expected %q", spelling, closingOrEnd(closing))
				continue
			}
			return finish()

		case scanner.KindName, scanner.KindSymbol:
			spelling := tok.Spelling()

			if closing != "" && spelling == closing {
				tree.Unref(tok.Value)
				return finish()
			}

			if end, ok := p.table.CommentClosing(spelling); ok {
				tree.Unref(tok.Value)
				p.comments = append(p.comments, p.scan.Skip(end))
				continue
			}

			if spelling == "syntax" && newStatement && result == nil && tok.Kind == scanner.KindName {
				tree.Unref(tok.Value)
				p.table = p.table.Clone()
				p.scan.SetSyntax(p.table)
				if leftover := p.table.Read(p.scan, p.errs); leftover != nil {
					p.peeked = leftover
				}
				continue
			}

			if end, ok := p.table.TextClosing(spelling); ok {
				text := p.scan.Skip(end)
				dt := tree.NewDelimitedText(tok.Pos, text,
					tok.Value.(*tree.Name), tree.NewName(tok.Pos, end))
				operand(dt, p.table.Function)
				newStatement = false
				continue
			}

			if end, child, ok := p.table.ChildSyntax(spelling); ok {
				tree.Unref(tok.Value)
				outer := p.table
				p.table = child
				oldSyntax := p.scan.SetSyntax(child)
				blk := p.parseBlock(spelling, end)
				p.table = outer
				p.scan.SetSyntax(oldSyntax)
				operand(blk, p.table.Function)
				newStatement = false
				continue
			}

			infixPriority, hasInfix := p.table.InfixPriority(spelling)
			prefixPriority, hasPrefix := p.table.PrefixPriority(spelling)
			postfixPriority, hasPostfix := p.table.PostfixPriority(spelling)

			// A name with both readings is infix unless the spacing
			// shows it sticks to its right operand, as in A -B.
			infixWins := result != nil && hasInfix &&
				(!hasPrefix || !tok.SpaceBefore || tok.SpaceAfter)

			switch {
			case infixWins:
				flush(infixPriority)
				if p.separates(realBlock, &separator, &adopted, len(stack), spelling, infixPriority, tok.Pos) {
					tree.Unref(tok.Value)
					collect()
					newStatement = true
					isExpression = false
					continue
				}
				stack = append(stack, frame{op: tok.Value.(*tree.Name), tree: result, priority: infixPriority})
				result = nil
				resultPriority = p.table.Default
				if infixPriority <= p.table.Statement {
					newStatement = true
					isExpression = false
				}

			case result != nil && hasPostfix:
				flush(postfixPriority)
				result = tree.NewPostfix(tok.Pos, result, tok.Value.(*tree.Name))
				resultPriority = postfixPriority

			default:
				priority := p.table.Function
				switch {
				case hasPrefix:
					priority = prefixPriority
				case tok.Kind == scanner.KindName && result == nil && newStatement && !isExpression:
					// The name leading a statement binds loosely, so
					// that write A, B applies write to the whole list.
					priority = p.table.Statement
				}
				operand(tok.Value, priority)
				if newStatement && tok.Kind != scanner.KindName {
					isExpression = true
				}
				newStatement = false
			}
		}
	}
}

// suppressNewline reports whether a line end should not separate
// statements: nothing precedes it, or the next token continues the
// statement, like else after an if block.
func (p *Parser) suppressNewline(result tree.Node) bool {
	if result == nil {
		return true
	}
	next := p.peek()
	switch next.Kind {
	case scanner.KindEOF, scanner.KindClose, scanner.KindUnindent, scanner.KindNewline:
		return true
	case scanner.KindName:
		if priority, ok := p.table.InfixPriority(next.Spelling()); ok {
			return priority < p.table.Statement
		}
	}
	return false
}

// separates decides whether an infix at block level acts as the block's
// separator. The standard delimiters come with a conventional
// separator; other blocks adopt the first statement-level infix seen at
// block level, and later mismatches are reported.
func (p *Parser) separates(realBlock bool, separator *string, adopted *bool,
	stackDepth int, spelling string, priority int, pos position.Pos) bool {
	if !realBlock || stackDepth != 0 {
		return false
	}
	if *separator != "" {
		if spelling == *separator {
			return true
		}
		if *adopted && priority <= p.table.Statement {
			p.errs.Errorf(pos, "the block separates with %q, not %q", *separator, spelling)
			return true
		}
		return false
	}
	if priority <= p.table.Statement {
		*separator = spelling
		*adopted = true
		return true
	}
	return false
}

// parseIndent opens an indentation block. A pending operand on the
// opening line is absorbed as the block's first child, so that
//
//	if a
//	    b
//
// applies if to the block holding a and b.
func (p *Parser) parseIndent(tok *scanner.Token, result *tree.Node, resultPriority *int) {
	blk := p.parseBlock(syntax.IndentName, syntax.UnindentName).(*tree.Block)
	tree.Unref(tok.Value)
	if *result != nil {
		blk = blk.Prepend(*result)
	}
	*result = blk
	*resultPriority = p.table.Function
}

// parseOpen opens an explicit block such as ( ) and installs the result
// as an operand.
func (p *Parser) parseOpen(tok *scanner.Token, operand func(tree.Node, int)) {
	spelling := tok.Spelling()
	closing, ok := p.table.BlockClosing(spelling)
	if !ok {
		p.errs.Errorf(tok.Pos, "unknown parenthesis type %q", spelling)
		tree.Unref(tok.Value)
		return
	}
	tree.Unref(tok.Value)

	saved := p.scan.OpenParen()
	blk := p.parseBlock(spelling, closing)
	p.scan.CloseParen(saved)
	operand(blk, p.table.Function)
}

// applyPrefix reduces a stacked tree over an operand. A name operator
// gives a prefix, anything else a juxtaposition; a minus over a numeric
// literal folds into a signed literal.
func applyPrefix(op, operand tree.Node) tree.Node {
	if name, ok := op.(*tree.Name); ok {
		if name.Eq("-") {
			switch lit := operand.(type) {
			case *tree.Natural:
				tree.Unref(name)
				return lit.Negate()
			case *tree.Real:
				tree.Unref(name)
				return lit.Negate()
			}
		}
		return tree.NewPrefix(name.Pos(), name, operand)
	}
	return tree.NewPfix(op.Pos(), op, operand)
}

func closingOrEnd(closing string) string {
	if closing == "" {
		return "end of input"
	}
	return closing
}
