package tree

import (
	"io"

	"github.com/alderlang/alder/position"
)

// Infix joins two children with a named operator, e.g. A+B or A and B.
// Line sequences are infixes with the "\n" opcode.
type Infix struct {
	header
	Left   Node
	Right  Node
	Opcode *Name
}

// NewInfix adopts the construction references of its children.
func NewInfix(pos position.Pos, opcode *Name, left, right Node) *Infix {
	n := &Infix{header: newHeader(pos), Opcode: opcode, Left: left, Right: right}
	track(n)
	return n
}

func (n *Infix) TypeName() string { return "infix" }
func (n *Infix) Arity() int       { return 3 }

func (n *Infix) Child(i int) Node {
	switch i {
	case 0:
		return n.Left
	case 1:
		return n.Right
	case 2:
		if n.Opcode == nil {
			return nil
		}
		return n.Opcode
	}
	panic("tree: infix child out of range")
}

func (n *Infix) SetChild(i int, c Node) {
	switch i {
	case 0:
		setSlot(&n.Left, c)
	case 1:
		setSlot(&n.Right, c)
	case 2:
		old := n.Opcode
		n.Opcode = Ref(c).(*Name)
		Unref(old)
	default:
		panic("tree: infix child out of range")
	}
}

func (n *Infix) shallow() Node {
	c := &Infix{header: newHeader(n.pos), Left: Ref(n.Left), Right: Ref(n.Right), Opcode: refName(n.Opcode)}
	track(c)
	return c
}

func (n *Infix) Print(w io.Writer) error {
	p := &printer{w: w}
	p.node(n.Left)
	if n.Opcode.Eq("\n") {
		p.write("\n")
	} else {
		p.write(" ")
		p.node(n.Opcode)
		p.write(" ")
	}
	p.node(n.Right)
	return p.err
}
