// Package resolve decides which node declares each layout constraint and
// normalizes its direction so the declaring node is always the first operand.
package resolve

import (
	"log/slog"

	"github.com/DeusData/viewcode/internal/fqn"
	"github.com/DeusData/viewcode/internal/model"
	"github.com/DeusData/viewcode/internal/widget"
)

// Stats counts what happened to the discovered constraints.
type Stats struct {
	Discovered int
	Kept       int
	Stale      int
	Reversed   int
	Dangling   int
	Guides     int
}

// Resolver resolves constraints for trees built under one host.
type Resolver struct {
	host widget.Host

	// AliasRoot renames a root that owns no constraints to fqn.RootName so it
	// stands for the host's own view. Turn it off when the root is a subtree
	// of the host view.
	AliasRoot bool
}

// New creates a Resolver. Operands matching the host's guide identities are
// treated as guides rather than dangling references.
func New(host widget.Host) *Resolver {
	return &Resolver{host: host, AliasRoot: true}
}

// Resolve runs discovery and normalization with no host guides.
func Resolve(t *model.Tree) Stats {
	return New(widget.Host{}).Resolve(t)
}

// IsGuide reports whether identity names one of the host's layout guides.
func (r *Resolver) IsGuide(identity string) bool {
	return identity != "" && (identity == r.host.TopGuide || identity == r.host.BottomGuide)
}

// Guide returns the symbolic token for a host guide identity.
func (r *Resolver) Guide(identity string) (string, bool) {
	switch {
	case identity == "":
		return "", false
	case identity == r.host.TopGuide:
		return "topGuide", true
	case identity == r.host.BottomGuide:
		return "bottomGuide", true
	}
	return "", false
}

// discovered is one basic constraint found on a holder, with its position in
// scan order.
type discovered struct {
	raw widget.RawConstraint
	seq int
}

// constraintIndex maps a widget identity to the basic constraints naming it,
// in holder pre-order and then list order.
type constraintIndex map[string][]discovered

func buildIndex(t *model.Tree) (constraintIndex, int) {
	idx := make(constraintIndex)
	seq := 0
	for _, id := range t.PreOrder() {
		for _, rc := range t.Node(id).Source.Constraints() {
			if !widget.IsBasic(rc.Kind) {
				continue
			}
			d := discovered{raw: rc, seq: seq}
			seq++
			if rc.First != "" {
				idx[rc.First] = append(idx[rc.First], d)
			}
			if rc.Second != "" && rc.Second != rc.First {
				idx[rc.Second] = append(idx[rc.Second], d)
			}
		}
	}
	return idx, seq
}

// Resolve fills every node's Constraints. Discovery scans every node's
// attached constraints once; normalization then visits nodes in pre-order.
func (r *Resolver) Resolve(t *model.Tree) Stats {
	var st Stats
	if t.Len() == 0 {
		return st
	}
	idx, total := buildIndex(t)
	st.Discovered = total

	for _, id := range t.PreOrder() {
		n := t.Node(id)
		n.Constraints = n.Constraints[:0]
		for _, d := range idx[n.Identity()] {
			c := model.FromRaw(t, d.raw)
			if r.stale(t, n, c) {
				st.Stale++
				slog.Debug("resolve.stale", "node", n.Name, "first", c.First.Identity, "second", c.Second.Identity)
				continue
			}
			if !c.First.InTree() || c.First.Node != id {
				c = c.Reversed()
				st.Reversed++
			}
			r.noteOutside(n, c, &st)
			n.Constraints = append(n.Constraints, c)
			st.Kept++
		}
	}

	if root := t.Root(); r.AliasRoot && len(root.Constraints) == 0 {
		root.Name = fqn.RootName
	}
	return st
}

// stale reports whether c names a node declared after n.
func (r *Resolver) stale(t *model.Tree, n *model.Node, c model.Constraint) bool {
	for _, op := range []model.Operand{c.First, c.Second} {
		if !op.InTree() {
			continue
		}
		if t.Node(op.Node).Order > n.Order {
			return true
		}
	}
	return false
}

func (r *Resolver) noteOutside(n *model.Node, c model.Constraint, st *Stats) {
	op := c.Second
	if op.Absent() || op.InTree() {
		return
	}
	if r.IsGuide(op.Identity) {
		st.Guides++
		return
	}
	st.Dangling++
	slog.Warn("resolve.dangling", "node", n.Name, "identity", op.Identity, "attribute", c.SecondAttr.String())
}
