package tree

import (
	"io"

	"github.com/alderlang/alder/position"
)

// Block is an ordered sequence of children bracketed by opening and
// closing names, with an optional separator, e.g. (A), [A, B, C] or an
// indented sequence of lines. The separator is nil when the block has
// none; the parser passes NewBlock the conventional separator of the
// delimiters, or the first statement-level infix found at block level.
type Block struct {
	header
	children  []Node
	Opening   *Name
	Closing   *Name
	Separator *Name
}

// NewBlock adopts the construction references of the delimiters and of
// every child.
func NewBlock(pos position.Pos, opening, closing, separator *Name, children ...Node) *Block {
	b := &Block{
		header:    newHeader(pos),
		children:  append([]Node(nil), children...),
		Opening:   opening,
		Closing:   closing,
		Separator: separator,
	}
	track(b)
	return b
}

func (b *Block) TypeName() string { return "block" }

// Arity of a block is the number of collected children.
func (b *Block) Arity() int { return len(b.children) }

func (b *Block) Child(i int) Node { return b.children[i] }

func (b *Block) SetChild(i int, c Node) {
	setSlot(&b.children[i], c)
}

// Children returns the child slice. The slice is owned by the node.
func (b *Block) Children() []Node { return b.children }

func (b *Block) shallow() Node {
	c := &Block{
		header:    newHeader(b.pos),
		children:  append([]Node(nil), b.children...),
		Opening:   refName(b.Opening),
		Closing:   refName(b.Closing),
		Separator: refName(b.Separator),
	}
	for _, child := range c.children {
		Ref(child)
	}
	track(c)
	return c
}

// SetSeparator replaces the block's separator, taking over the caller's
// reference and releasing the previous separator.
func (b *Block) SetSeparator(sep *Name) {
	old := b.Separator
	b.Separator = sep
	unrefName(old)
}

// Prepend inserts a child at the front under the handle contract. The
// parser uses this to absorb the operand preceding an indented block.
func (b *Block) Prepend(c Node) *Block {
	target := b
	if !b.isUnique() {
		target = Copy(b).(*Block)
		Unref(b)
	}
	target.children = append([]Node{c}, target.children...)
	return target
}

// Push appends a child under the handle contract: in place when the
// block is uniquely owned, on a fresh copy otherwise.
func (b *Block) Push(c Node) *Block {
	if b.isUnique() {
		b.children = append(b.children, c)
		return b
	}
	nb := Copy(b).(*Block)
	nb.children = append(nb.children, c)
	Unref(b)
	return nb
}

// Append concatenates the children of another block under the handle
// contract. The appended children each gain a reference.
func (b *Block) Append(other *Block) *Block {
	target := b
	if !b.isUnique() {
		target = Copy(b).(*Block)
		Unref(b)
	}
	for _, c := range other.children {
		target.children = append(target.children, Ref(c))
	}
	return target
}

// Top returns the last child, nil when the block is empty.
func (b *Block) Top() Node {
	if len(b.children) == 0 {
		return nil
	}
	return b.children[len(b.children)-1]
}

// Pop removes the last child under the handle contract, releasing the
// block's reference on it.
func (b *Block) Pop() *Block {
	if len(b.children) == 0 {
		return b
	}
	target := b
	if !b.isUnique() {
		target = Copy(b).(*Block)
		Unref(b)
	}
	last := target.children[len(target.children)-1]
	target.children = target.children[:len(target.children)-1]
	Unref(last)
	return target
}

// Range keeps only children [first, first+length), in place when the
// block is uniquely owned. Bounds past the last child are clipped; a
// negative first index is not.
func (b *Block) Range(first, length int) *Block {
	first, length = clipRange(len(b.children), first, length)
	target := b
	if !b.isUnique() {
		target = Copy(b).(*Block)
		Unref(b)
	}
	for i, c := range target.children {
		if i < first || i >= first+length {
			Unref(c)
		}
	}
	target.children = append(target.children[:0], target.children[first:first+length]...)
	return target
}

func (b *Block) Print(w io.Writer) error {
	p := &printer{w: w}
	indent := b.Opening.Eq("\t")
	if indent {
		p.write("\n")
	} else if b.Opening != nil {
		p.node(b.Opening)
	}
	sep := "; "
	if b.Separator != nil {
		if b.Separator.Eq("\n") {
			sep = "\n"
		} else {
			sep = b.Separator.Value() + " "
		}
	}
	if indent {
		sep = "\n"
	}
	for i, c := range b.children {
		if i > 0 {
			p.write(sep)
		}
		p.node(c)
	}
	if indent {
		p.write("\n")
	} else if b.Closing != nil {
		p.node(b.Closing)
	}
	return p.err
}
