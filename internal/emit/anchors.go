package emit

import (
	"fmt"

	"github.com/DeusData/viewcode/internal/model"
)

func init() {
	Register(Anchors, anchorsRenderer{})
}

// anchorsRenderer writes one activation statement per constraint:
//
//	a.topAnchor.constraint(equalTo: b.bottomAnchor, constant: 8.0).isActive = true
//
// Margin attributes use the anchor of the plain edge or axis.
type anchorsRenderer struct{}

func (anchorsRenderer) Constraints(e *Emitter, n *model.Node) []string {
	lines := make([]string, 0, len(n.Constraints))
	for _, c := range n.Constraints {
		lines = append(lines, anchorsLine(e, n, c))
	}
	return lines
}

func anchorsLine(e *Emitter, n *model.Node, c model.Constraint) string {
	verb := relationVerb(c.Relation)
	var args string
	if !e.HasSecond(c) {
		args = fmt.Sprintf("%sConstant: %s", verb, FormatFloat(c.Constant))
	} else {
		args = fmt.Sprintf("%s: %s.%s", verb, e.Ref(c.Second), anchorName(c.SecondAttr))
		if c.Multiplier != 1 {
			args += ", multiplier: " + FormatFloat(c.Multiplier)
		}
		if c.Constant != 0 {
			args += ", constant: " + FormatFloat(c.Constant)
		}
	}
	return fmt.Sprintf("%s.%s.constraint(%s).isActive = %t", n.Name, anchorName(c.FirstAttr), args, c.Active)
}
