package resolve

import "github.com/DeusData/viewcode/internal/model"

// Target is the container that receives a constraint when it is added
// explicitly. Host means the host's own container view.
type Target struct {
	Node model.NodeID
	Host bool
}

// Target computes where constraint c, owned by node id, must be added.
//
// Size constraints go to the owner unless the second operand is a shallower
// node, in which case the shallower one wins. Everything else goes to the
// shallower of the two operands' parents. The candidate is then lifted to the
// nearest ancestor holding both operands. Guide seconds go to the host.
func (r *Resolver) Target(t *model.Tree, id model.NodeID, c model.Constraint) Target {
	n := t.Node(id)
	if n == nil {
		return Target{Node: model.NoNode, Host: true}
	}
	if r.IsGuide(c.Second.Identity) {
		return Target{Node: model.NoNode, Host: true}
	}

	sec := model.NoNode
	if c.Second.InTree() {
		sec = c.Second.Node
	}

	var cand model.NodeID
	if c.FirstAttr.IsSize() {
		cand = id
		if sec != model.NoNode && t.Node(sec).Depth < n.Depth {
			cand = sec
		}
	} else {
		cand = n.Parent
		if sec != model.NoNode {
			sp := t.Node(sec).Parent
			switch {
			case cand == model.NoNode:
				cand = sp
			case sp != model.NoNode && t.Node(sp).Depth < t.Node(cand).Depth:
				cand = sp
			}
		}
		if cand == model.NoNode {
			cand = id
		}
	}

	both := id
	if sec != model.NoNode {
		both = t.CommonAncestor(id, sec)
	}
	if lifted := t.CommonAncestor(cand, both); lifted != model.NoNode {
		cand = lifted
	}
	return Target{Node: cand}
}
