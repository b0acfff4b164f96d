package model

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/DeusData/viewcode/internal/widget"
)

func sampleTree() *Tree {
	root := &widget.Widget{ID: "root", Children: []*widget.Widget{
		{ID: "a", Children: []*widget.Widget{{ID: "a0"}, {ID: "a1"}}},
		{ID: "b"},
	}}
	t := NewTree()
	r := t.Add(root, NoNode, 0)
	a := t.Add(root.Children[0], r, 0)
	t.Add(root.Children[0].Children[0], a, 0)
	t.Add(root.Children[0].Children[1], a, 1)
	t.Add(root.Children[1], r, 1)
	return t
}

func TestTreeAdd(t *testing.T) {
	tr := sampleTree()
	if tr.Len() != 5 {
		t.Fatalf("expected 5 nodes, got %d", tr.Len())
	}
	root := tr.Root()
	if root.Order != 0 || root.Depth != 0 || !root.IsRoot() {
		t.Errorf("bad root: %+v", root)
	}
	id, ok := tr.Lookup("a1")
	if !ok {
		t.Fatal("a1 not found")
	}
	n := tr.Node(id)
	if n.Depth != 2 || n.SiblingIndex != 1 || tr.Node(n.Parent).Identity() != "a" {
		t.Errorf("bad a1 node: %+v", n)
	}
	if _, ok := tr.Lookup("nope"); ok {
		t.Error("unexpected lookup hit")
	}
	if tr.Node(99) != nil || tr.Node(NoNode) != nil {
		t.Error("out of range ids should return nil")
	}
}

func TestPreOrder(t *testing.T) {
	tr := sampleTree()
	var got []string
	for _, id := range tr.PreOrder() {
		got = append(got, tr.Node(id).Identity())
	}
	want := []string{"root", "a", "a0", "a1", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if NewTree().PreOrder() != nil {
		t.Error("empty tree should have no pre-order")
	}
}

func TestCommonAncestor(t *testing.T) {
	tr := sampleTree()
	id := func(s string) NodeID {
		n, _ := tr.Lookup(s)
		return n
	}
	tests := []struct {
		a, b, want string
	}{
		{"a0", "a1", "a"},
		{"a0", "b", "root"},
		{"a", "a1", "a"},
		{"b", "b", "b"},
	}
	for _, tt := range tests {
		if got := tr.CommonAncestor(id(tt.a), id(tt.b)); got != id(tt.want) {
			t.Errorf("CommonAncestor(%s, %s) = %d, want %s", tt.a, tt.b, got, tt.want)
		}
	}
	if tr.CommonAncestor(id("a0"), NoNode) != NoNode {
		t.Error("outside operand should have no common ancestor")
	}
	if !tr.IsAncestor(id("root"), id("a1")) || tr.IsAncestor(id("b"), id("a1")) {
		t.Error("IsAncestor mismatch")
	}
}

func TestFromRaw(t *testing.T) {
	tr := sampleTree()
	c := FromRaw(tr, widget.RawConstraint{
		First: "a0", FirstAttr: widget.Top,
		Second: "guide", SecondAttr: widget.Bottom,
		Multiplier: 1, Constant: 8, Active: true,
	})
	if !c.First.InTree() || tr.Node(c.First.Node).Identity() != "a0" {
		t.Errorf("first operand not resolved: %+v", c.First)
	}
	if c.Second.InTree() || c.Second.Absent() {
		t.Errorf("guide operand should be outside the tree: %+v", c.Second)
	}
	w := FromRaw(tr, widget.RawConstraint{First: "b", FirstAttr: widget.Width, Multiplier: 1, Constant: 44})
	if !w.Second.Absent() {
		t.Errorf("expected absent second, got %+v", w.Second)
	}
}

func TestReversedRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("reversing twice restores the constraint", prop.ForAll(
		func(first, second, fa, sa, rel int, mult, constant float64, active bool) bool {
			c := Constraint{
				First:      Operand{Node: NodeID(first), Identity: "w"},
				FirstAttr:  widget.Attribute(fa),
				Second:     Operand{Node: NodeID(second), Identity: "v"},
				SecondAttr: widget.Attribute(sa),
				Relation:   widget.Relation(rel),
				Multiplier: mult,
				Constant:   constant,
				Active:     active,
			}
			return c.Reversed().Reversed() == c
		},
		gen.IntRange(-1, 50),
		gen.IntRange(-1, 50),
		gen.IntRange(0, int(widget.CenterYWithinMargins)),
		gen.IntRange(0, int(widget.CenterYWithinMargins)),
		gen.IntRange(-1, 1),
		gen.Float64Range(-10, 10),
		gen.Float64Range(-1000, 1000),
		gen.Bool(),
	))

	properties.Property("reversal inverts relation and negates constant", prop.ForAll(
		func(rel int, constant float64) bool {
			c := Constraint{Relation: widget.Relation(rel), Constant: constant, Multiplier: 2}
			r := c.Reversed()
			return r.Relation == -c.Relation && r.Constant == -constant && r.Multiplier == 2
		},
		gen.IntRange(-1, 1),
		gen.Float64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}
