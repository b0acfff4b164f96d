package emit

import (
	"fmt"
	"strings"

	"github.com/DeusData/viewcode/internal/model"
	"github.com/DeusData/viewcode/internal/widget"
)

func init() {
	Register(NSLayout, nsLayoutRenderer{})
}

// nsLayoutRenderer binds every constraint to a variable and then adds the
// active ones to their receiving container, one addConstraints call per
// container in first-seen order. Inactive bindings are commented out.
type nsLayoutRenderer struct{}

func (nsLayoutRenderer) Constraints(e *Emitter, n *model.Node) []string {
	var lines []string
	var targets []string
	groups := map[string][]string{}
	for _, c := range n.Constraints {
		name := e.Binding(n.Name + bindingSuffix(c.FirstAttr) + "Constraint")
		line := fmt.Sprintf("let %s = %s", name, nsLayoutExpr(e, n, c))
		if !c.Active {
			lines = append(lines, "// "+line)
			continue
		}
		lines = append(lines, line)
		tgt := e.TargetName(n, c)
		if _, seen := groups[tgt]; !seen {
			targets = append(targets, tgt)
		}
		groups[tgt] = append(groups[tgt], name)
	}
	for _, tgt := range targets {
		lines = append(lines, fmt.Sprintf("%s.addConstraints([%s])", tgt, strings.Join(groups[tgt], ", ")))
	}
	return lines
}

func nsLayoutExpr(e *Emitter, n *model.Node, c model.Constraint) string {
	toItem := danglingToken
	secondAttr := widget.NotAnAttribute
	if e.HasSecond(c) {
		toItem = e.Ref(c.Second)
		secondAttr = c.SecondAttr
	}
	return fmt.Sprintf(
		"NSLayoutConstraint(item: %s, attribute: .%s, relatedBy: .%s, toItem: %s, attribute: .%s, multiplier: %s, constant: %s)",
		n.Name, c.FirstAttr, relationCase(c.Relation), toItem, secondAttr,
		FormatFloat(c.Multiplier), FormatFloat(c.Constant),
	)
}
