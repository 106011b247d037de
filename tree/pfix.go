package tree

import (
	"io"

	"github.com/alderlang/alder/position"
)

// Pfix is the generic juxtaposition of two trees, e.g. (X->1)(X). The
// parser builds one whenever the left side is not a name, whatever the
// right side is. Prefix and Postfix restrict one side to a name.
type Pfix struct {
	header
	Left  Node
	Right Node
}

// NewPfix adopts the construction references of its children.
func NewPfix(pos position.Pos, left, right Node) *Pfix {
	p := &Pfix{header: newHeader(pos), Left: left, Right: right}
	track(p)
	return p
}

func (p *Pfix) TypeName() string { return "pfix" }
func (p *Pfix) Arity() int       { return 2 }

func (p *Pfix) Child(i int) Node {
	switch i {
	case 0:
		return p.Left
	case 1:
		return p.Right
	}
	panic("tree: pfix child out of range")
}

func (p *Pfix) SetChild(i int, c Node) {
	switch i {
	case 0:
		setSlot(&p.Left, c)
	case 1:
		setSlot(&p.Right, c)
	default:
		panic("tree: pfix child out of range")
	}
}

func (p *Pfix) shallow() Node {
	c := &Pfix{header: newHeader(p.pos), Left: Ref(p.Left), Right: Ref(p.Right)}
	track(c)
	return c
}

func (p *Pfix) Print(w io.Writer) error {
	return printJuxtaposed(w, p.Left, p.Right)
}

// Prefix applies a name operator to an operand on its right, e.g. -A or
// sin X.
type Prefix struct {
	header
	Operator *Name
	Operand  Node
}

// NewPrefix adopts the construction references of its children.
func NewPrefix(pos position.Pos, operator *Name, operand Node) *Prefix {
	p := &Prefix{header: newHeader(pos), Operator: operator, Operand: operand}
	track(p)
	return p
}

func (p *Prefix) TypeName() string { return "prefix" }
func (p *Prefix) Arity() int       { return 2 }

func (p *Prefix) Child(i int) Node {
	switch i {
	case 0:
		if p.Operator == nil {
			return nil
		}
		return p.Operator
	case 1:
		return p.Operand
	}
	panic("tree: prefix child out of range")
}

func (p *Prefix) SetChild(i int, c Node) {
	switch i {
	case 0:
		old := p.Operator
		p.Operator = Ref(c).(*Name)
		Unref(old)
	case 1:
		setSlot(&p.Operand, c)
	default:
		panic("tree: prefix child out of range")
	}
}

func (p *Prefix) shallow() Node {
	c := &Prefix{header: newHeader(p.pos), Operator: refName(p.Operator), Operand: Ref(p.Operand)}
	track(c)
	return c
}

func (p *Prefix) Print(w io.Writer) error {
	return printJuxtaposed(w, p.Operator, p.Operand)
}

// Postfix applies a name operator to an operand on its left, e.g. A% or
// 3 km.
type Postfix struct {
	header
	Operand  Node
	Operator *Name
}

// NewPostfix adopts the construction references of its children.
func NewPostfix(pos position.Pos, operand Node, operator *Name) *Postfix {
	p := &Postfix{header: newHeader(pos), Operand: operand, Operator: operator}
	track(p)
	return p
}

func (p *Postfix) TypeName() string { return "postfix" }
func (p *Postfix) Arity() int       { return 2 }

func (p *Postfix) Child(i int) Node {
	switch i {
	case 0:
		return p.Operand
	case 1:
		if p.Operator == nil {
			return nil
		}
		return p.Operator
	}
	panic("tree: postfix child out of range")
}

func (p *Postfix) SetChild(i int, c Node) {
	switch i {
	case 0:
		setSlot(&p.Operand, c)
	case 1:
		old := p.Operator
		p.Operator = Ref(c).(*Name)
		Unref(old)
	default:
		panic("tree: postfix child out of range")
	}
}

func (p *Postfix) shallow() Node {
	c := &Postfix{header: newHeader(p.pos), Operand: Ref(p.Operand), Operator: refName(p.Operator)}
	track(c)
	return c
}

func (p *Postfix) Print(w io.Writer) error {
	return printJuxtaposed(w, p.Operand, p.Operator)
}

// printJuxtaposed writes two sides separated by a single space, the
// canonical built-in form for operator application.
func printJuxtaposed(w io.Writer, left, right Node) error {
	p := &printer{w: w}
	p.node(left)
	p.write(" ")
	p.node(right)
	return p.err
}
