package emit

import (
	"strings"

	"github.com/DeusData/viewcode/internal/model"
)

func init() {
	Register(SnapKit, snapKitRenderer{})
}

// snapKitRenderer writes one makeConstraints block per node:
//
//	name.snp.makeConstraints { (make) -> Void in
//	    make.top.equalTo(other.snp.bottom).offset(8.0)
//	}
type snapKitRenderer struct{}

func (snapKitRenderer) Constraints(e *Emitter, n *model.Node) []string {
	lines := []string{n.Name + ".snp.makeConstraints { (make) -> Void in"}
	for _, c := range n.Constraints {
		line := indent + snapKitLine(e, c)
		if !c.Active {
			line = indent + "// " + strings.TrimPrefix(line, indent)
		}
		lines = append(lines, line)
	}
	return append(lines, "}")
}

func snapKitLine(e *Emitter, c model.Constraint) string {
	var b strings.Builder
	b.WriteString("make.")
	b.WriteString(c.FirstAttr.String())
	b.WriteByte('.')
	b.WriteString(relationVerb(c.Relation))
	b.WriteByte('(')
	if !e.HasSecond(c) {
		b.WriteString(FormatFloat(c.Constant))
		b.WriteByte(')')
		return b.String()
	}
	b.WriteString(e.Ref(c.Second))
	b.WriteString(".snp.")
	b.WriteString(c.SecondAttr.String())
	b.WriteByte(')')
	if c.Multiplier != 1 {
		b.WriteString(".multipliedBy(")
		b.WriteString(FormatFloat(c.Multiplier))
		b.WriteByte(')')
	}
	if c.Constant != 0 {
		b.WriteString(".offset(")
		b.WriteString(FormatFloat(c.Constant))
		b.WriteByte(')')
	}
	return b.String()
}
