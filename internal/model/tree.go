// Package model holds the canonical node tree a generation run works on.
// Nodes live in an arena and refer to each other by index.
package model

import "github.com/DeusData/viewcode/internal/widget"

// NodeID indexes Tree.Nodes.
type NodeID int

// NoNode marks an absent parent or an operand outside the tree.
const NoNode NodeID = -1

// Node is one widget instance in the reconstructed tree.
type Node struct {
	ID           NodeID
	Source       widget.Source
	Name         string
	TypeName     string
	Children     []NodeID
	SiblingIndex int
	Parent       NodeID
	Depth        int
	Order        int

	Constraints []Constraint
	Properties  []Property
	InitCalls   []Call
}

// Identity is the identity of the underlying widget.
func (n *Node) Identity() string {
	if n == nil || n.Source == nil {
		return ""
	}
	return n.Source.Identity()
}

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.Parent == NoNode }

// Tree is an arena of nodes. Nodes[0] is the root once the tree is non-empty.
type Tree struct {
	Nodes []Node

	byIdentity map[string]NodeID
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{byIdentity: make(map[string]NodeID)}
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Nodes)
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node {
	if t.Len() == 0 {
		return nil
	}
	return &t.Nodes[0]
}

// Node returns the node with the given id, or nil if id is out of range.
func (t *Tree) Node(id NodeID) *Node {
	if t == nil || id < 0 || int(id) >= len(t.Nodes) {
		return nil
	}
	return &t.Nodes[id]
}

// Add appends a node under parent and returns its id. Order is the next
// pre-order position, so callers must add nodes in pre-order.
func (t *Tree) Add(src widget.Source, parent NodeID, siblingIndex int) NodeID {
	if t.byIdentity == nil {
		t.byIdentity = make(map[string]NodeID)
	}
	id := NodeID(len(t.Nodes))
	depth := 0
	if p := t.Node(parent); p != nil {
		depth = p.Depth + 1
		p.Children = append(p.Children, id)
	} else {
		parent = NoNode
	}
	t.Nodes = append(t.Nodes, Node{
		ID:           id,
		Source:       src,
		TypeName:     src.TypeName(),
		SiblingIndex: siblingIndex,
		Parent:       parent,
		Depth:        depth,
		Order:        int(id),
	})
	if ident := src.Identity(); ident != "" {
		if _, dup := t.byIdentity[ident]; !dup {
			t.byIdentity[ident] = id
		}
	}
	return id
}

// Lookup resolves a widget identity to a node id.
func (t *Tree) Lookup(identity string) (NodeID, bool) {
	if t == nil || identity == "" {
		return NoNode, false
	}
	id, ok := t.byIdentity[identity]
	return id, ok
}

// Contains reports whether identity is a node of the tree.
func (t *Tree) Contains(identity string) bool {
	_, ok := t.Lookup(identity)
	return ok
}

// PreOrder lists node ids in pre-order using an explicit stack.
func (t *Tree) PreOrder() []NodeID {
	if t.Len() == 0 {
		return nil
	}
	out := make([]NodeID, 0, len(t.Nodes))
	stack := []NodeID{0}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, id)
		kids := t.Nodes[id].Children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}

// IsAncestor reports whether a is b or an ancestor of b.
func (t *Tree) IsAncestor(a, b NodeID) bool {
	for cur := b; cur != NoNode; {
		if cur == a {
			return true
		}
		n := t.Node(cur)
		if n == nil {
			return false
		}
		cur = n.Parent
	}
	return false
}

// CommonAncestor returns the deepest node that is an ancestor-or-self of both
// a and b, or NoNode when either is outside the tree.
func (t *Tree) CommonAncestor(a, b NodeID) NodeID {
	na, nb := t.Node(a), t.Node(b)
	if na == nil || nb == nil {
		return NoNode
	}
	for na.Depth > nb.Depth {
		na = t.Node(na.Parent)
	}
	for nb.Depth > na.Depth {
		nb = t.Node(nb.Parent)
	}
	for na.ID != nb.ID {
		na, nb = t.Node(na.Parent), t.Node(nb.Parent)
		if na == nil || nb == nil {
			return NoNode
		}
	}
	return na.ID
}
