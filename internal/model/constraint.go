package model

import "github.com/DeusData/viewcode/internal/widget"

// Operand is one side of a constraint. An empty Identity means the side is
// absent (a constant constraint). A non-empty Identity with Node == NoNode is
// outside the tree: a layout guide or a dangling reference.
type Operand struct {
	Node     NodeID
	Identity string
}

// Absent reports whether the operand is missing.
func (o Operand) Absent() bool { return o.Identity == "" }

// InTree reports whether the operand resolved to a node.
func (o Operand) InTree() bool { return o.Identity != "" && o.Node != NoNode }

// Constraint is first.FirstAttr <Relation> Multiplier * second.SecondAttr + Constant.
// It is a value; Reversed returns a new one.
type Constraint struct {
	First      Operand
	FirstAttr  widget.Attribute
	Second     Operand
	SecondAttr widget.Attribute
	Relation   widget.Relation
	Multiplier float64
	Constant   float64
	Active     bool
}

// Reversed swaps the operands and their attributes, inverts the relation and
// negates the constant. The multiplier is kept as is.
func (c Constraint) Reversed() Constraint {
	return Constraint{
		First:      c.Second,
		FirstAttr:  c.SecondAttr,
		Second:     c.First,
		SecondAttr: c.FirstAttr,
		Relation:   c.Relation.Inverse(),
		Multiplier: c.Multiplier,
		Constant:   -c.Constant,
		Active:     c.Active,
	}
}

// FromRaw resolves the operands of a raw constraint against t.
func FromRaw(t *Tree, rc widget.RawConstraint) Constraint {
	return Constraint{
		First:      t.operand(rc.First),
		FirstAttr:  rc.FirstAttr,
		Second:     t.operand(rc.Second),
		SecondAttr: rc.SecondAttr,
		Relation:   rc.Relation,
		Multiplier: rc.Multiplier,
		Constant:   rc.Constant,
		Active:     rc.Active,
	}
}

func (t *Tree) operand(identity string) Operand {
	if identity == "" {
		return Operand{Node: NoNode}
	}
	if id, ok := t.Lookup(identity); ok {
		return Operand{Node: id, Identity: identity}
	}
	return Operand{Node: NoNode, Identity: identity}
}

// Refers reports whether either side of c is the node id.
func (c Constraint) Refers(id NodeID) bool {
	return (c.First.InTree() && c.First.Node == id) || (c.Second.InTree() && c.Second.Node == id)
}
