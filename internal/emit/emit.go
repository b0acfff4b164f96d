// Package emit renders a resolved node tree as a hierarchy summary and as
// Swift code that builds the same views and constraints by hand.
package emit

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/DeusData/viewcode/internal/fqn"
	"github.com/DeusData/viewcode/internal/model"
	"github.com/DeusData/viewcode/internal/resolve"
	"github.com/DeusData/viewcode/internal/widget"
)

const (
	// DefaultContainer is the symbol for the host's view.
	DefaultContainer = "view"
	// DefaultHostRef is the expression for the view controller.
	DefaultHostRef = "self"

	// danglingToken replaces an operand that matched no node.
	danglingToken = "nil"
	indent        = "    "
)

// Options controls rendering.
type Options struct {
	Syntax             Syntax
	SkipConstraintless bool
	Container          string
	Host               widget.Host
}

func (o Options) container() string {
	if o.Container == "" {
		return DefaultContainer
	}
	return o.Container
}

func (o Options) hostRef() string {
	if o.Host.Ref == "" {
		return DefaultHostRef
	}
	return o.Host.Ref
}

// Emitter carries the state of one rendering pass. Renderers use it to name
// operands and to allocate binding names.
type Emitter struct {
	Tree     *model.Tree
	Opts     Options
	Resolver *resolve.Resolver

	bindings  map[string]int
	usedGuide map[string]bool
	dangling  int
}

// NewEmitter prepares a rendering pass over t.
func NewEmitter(t *model.Tree, opts Options) *Emitter {
	return &Emitter{
		Tree:      t,
		Opts:      opts,
		Resolver:  resolve.New(opts.Host),
		bindings:  make(map[string]int),
		usedGuide: make(map[string]bool),
	}
}

// Ref names a constraint operand: the node name, a guide token, the
// dangling token, or "" when absent.
func (e *Emitter) Ref(op model.Operand) string {
	if op.Absent() {
		return ""
	}
	if op.InTree() {
		return e.Tree.Node(op.Node).Name
	}
	if tok, ok := e.Resolver.Guide(op.Identity); ok {
		e.usedGuide[tok] = true
		return tok
	}
	e.dangling++
	slog.Debug("emit.dangling", "identity", op.Identity)
	return danglingToken
}

// HasSecond reports whether the constraint has a second operand to render.
func (e *Emitter) HasSecond(c model.Constraint) bool {
	return !c.Second.Absent()
}

// Binding returns a unique variable name derived from base.
func (e *Emitter) Binding(base string) string {
	e.bindings[base]++
	if n := e.bindings[base]; n > 1 {
		return fmt.Sprintf("%s%d", base, n)
	}
	return base
}

// TargetName names the container that receives constraint c of node n.
func (e *Emitter) TargetName(n *model.Node, c model.Constraint) string {
	tgt := e.Resolver.Target(e.Tree, n.ID, c)
	if tgt.Host {
		return e.Opts.container()
	}
	return e.Tree.Node(tgt.Node).Name
}

// Result is the output of one rendering pass.
type Result struct {
	Summary  string
	Code     string
	Nodes    int
	Dangling int
}

// Emit renders the summary and the code for t.
func Emit(t *model.Tree, opts Options) (summary, code string, err error) {
	res, err := Render(t, opts)
	if err != nil {
		return "", "", err
	}
	return res.Summary, res.Code, nil
}

// Render is Emit with counters.
func Render(t *model.Tree, opts Options) (*Result, error) {
	if opts.Syntax == "" {
		opts.Syntax = DefaultSyntax
	}
	r, err := Lookup(opts.Syntax)
	if err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return &Result{}, nil
	}
	e := NewEmitter(t, opts)
	code, nodes := e.code(r)
	return &Result{
		Summary:  Summary(t, opts.SkipConstraintless),
		Code:     code,
		Nodes:    nodes,
		Dangling: e.dangling,
	}, nil
}

// Summary renders one line per node in pre-order:
//
//	+ name (tag:N) - K constraints
//
// indented two spaces per level. With skip set, nodes owning no constraints
// are left out.
func Summary(t *model.Tree, skip bool) string {
	var b strings.Builder
	for _, id := range t.PreOrder() {
		n := t.Node(id)
		if skip && len(n.Constraints) == 0 {
			continue
		}
		b.WriteString(strings.Repeat("  ", n.Depth))
		b.WriteString("+ ")
		b.WriteString(n.Name)
		if tag := n.Source.Tag(); tag != 0 {
			fmt.Fprintf(&b, " (tag:%d)", tag)
		}
		fmt.Fprintf(&b, " - %d constraints\n", len(n.Constraints))
	}
	return b.String()
}

// emitted selects the nodes that get code. Without skipping that is every
// node. With skipping it is every node owning constraints, plus every node
// those constraints name, plus all their ancestors.
func (e *Emitter) emitted() []bool {
	t := e.Tree
	keep := make([]bool, t.Len())
	if !e.Opts.SkipConstraintless {
		for i := range keep {
			keep[i] = true
		}
		return keep
	}
	var seeds []model.NodeID
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if len(n.Constraints) == 0 {
			continue
		}
		seeds = append(seeds, n.ID)
		for _, c := range n.Constraints {
			if c.Second.InTree() {
				seeds = append(seeds, c.Second.Node)
			}
		}
	}
	for _, id := range seeds {
		for cur := id; cur != model.NoNode && !keep[cur]; cur = t.Node(cur).Parent {
			keep[cur] = true
		}
	}
	return keep
}

// code renders the statements for every emitted node in pre-order, preceded
// by the guide bindings any constraint needed.
func (e *Emitter) code(r Renderer) (string, int) {
	keep := e.emitted()
	var blocks []string
	count := 0
	for _, id := range e.Tree.PreOrder() {
		if !keep[id] {
			continue
		}
		count++
		blocks = append(blocks, strings.Join(e.node(r, e.Tree.Node(id)), "\n"))
	}

	var b strings.Builder
	for _, g := range []struct{ token, property string }{
		{"topGuide", "topLayoutGuide"},
		{"bottomGuide", "bottomLayoutGuide"},
	} {
		if e.usedGuide[g.token] {
			fmt.Fprintf(&b, "let %s = %s.%s\n", g.token, e.Opts.hostRef(), g.property)
		}
	}
	if b.Len() > 0 && len(blocks) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(blocks, "\n\n"))
	if len(blocks) > 0 {
		b.WriteString("\n")
	}
	return b.String(), count
}

// node renders one node's statements.
func (e *Emitter) node(r Renderer, n *model.Node) []string {
	var lines []string
	if n.IsRoot() && n.Name == fqn.RootName {
		lines = append(lines, fmt.Sprintf("let %s = %s", n.Name, e.Opts.container()))
	} else {
		lines = append(lines, fmt.Sprintf("let %s = %s()", n.Name, n.TypeName))
		parent, attach := e.Opts.container(), "addSubview"
		if !n.IsRoot() {
			p := e.Tree.Node(n.Parent)
			parent = p.Name
			if p.TypeName == "UIStackView" {
				attach = "addArrangedSubview"
			}
		}
		lines = append(lines, fmt.Sprintf("%s.%s(%s)", parent, attach, n.Name))
	}
	for _, p := range n.Properties {
		lines = append(lines, fmt.Sprintf("%s.%s = %s", n.Name, p.Key, Value(p.Value)))
	}
	for _, c := range n.InitCalls {
		lines = append(lines, CallExpr(n.Name, c))
	}
	if len(n.Constraints) > 0 {
		lines = append(lines, n.Name+".translatesAutoresizingMaskIntoConstraints = false")
		lines = append(lines, r.Constraints(e, n)...)
	}
	return lines
}
