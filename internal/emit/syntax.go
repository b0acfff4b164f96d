package emit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DeusData/viewcode/internal/model"
	"github.com/DeusData/viewcode/internal/widget"
)

// Syntax names a constraint output style.
type Syntax string

const (
	SnapKit  Syntax = "snapkit"
	Anchors  Syntax = "anchors"
	NSLayout Syntax = "nslayoutconstraint"
)

// DefaultSyntax is used when no syntax is configured.
const DefaultSyntax = NSLayout

// Renderer writes the owned constraints of one node. Lines are returned
// without trailing newlines.
type Renderer interface {
	Constraints(e *Emitter, n *model.Node) []string
}

// registry maps syntax names to renderers.
var registry = map[Syntax]Renderer{}

// Register adds a renderer under a syntax name.
func Register(s Syntax, r Renderer) {
	registry[s] = r
}

// Lookup returns the renderer for s.
func Lookup(s Syntax) (Renderer, error) {
	r, ok := registry[s]
	if !ok {
		return nil, fmt.Errorf("unknown output syntax %q (want one of %s)", s, strings.Join(SyntaxNames(), ", "))
	}
	return r, nil
}

// ParseSyntax accepts a syntax name, case-insensitively. The empty string
// means DefaultSyntax.
func ParseSyntax(s string) (Syntax, error) {
	if s == "" {
		return DefaultSyntax, nil
	}
	for name := range registry {
		if strings.EqualFold(string(name), s) {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown output syntax %q (want one of %s)", s, strings.Join(SyntaxNames(), ", "))
}

// SyntaxNames lists the registered syntaxes in sorted order.
func SyntaxNames() []string {
	names := make([]string, 0, len(registry))
	for s := range registry {
		names = append(names, string(s))
	}
	sort.Strings(names)
	return names
}

// relationVerb is the builder-style verb ("equalTo").
func relationVerb(r widget.Relation) string {
	switch r {
	case widget.GreaterThanOrEqual:
		return "greaterThanOrEqualTo"
	case widget.LessThanOrEqual:
		return "lessThanOrEqualTo"
	default:
		return "equalTo"
	}
}

// relationCase is the enum-style relation ("equal").
func relationCase(r widget.Relation) string {
	switch r {
	case widget.GreaterThanOrEqual:
		return "greaterThanOrEqual"
	case widget.LessThanOrEqual:
		return "lessThanOrEqual"
	default:
		return "equal"
	}
}

// anchorBase maps margin attributes to the anchor of the plain edge or axis.
var anchorBase = map[widget.Attribute]widget.Attribute{
	widget.LeftMargin:           widget.Left,
	widget.RightMargin:          widget.Right,
	widget.TopMargin:            widget.Top,
	widget.BottomMargin:         widget.Bottom,
	widget.LeadingMargin:        widget.Leading,
	widget.TrailingMargin:       widget.Trailing,
	widget.CenterXWithinMargins: widget.CenterX,
	widget.CenterYWithinMargins: widget.CenterY,
}

// anchorName is the anchor property for an attribute ("topAnchor").
func anchorName(a widget.Attribute) string {
	if base, ok := anchorBase[a]; ok {
		a = base
	}
	return a.String() + "Anchor"
}

// bindingSuffix capitalizes an attribute for a constraint binding name.
func bindingSuffix(a widget.Attribute) string {
	s := a.String()
	return strings.ToUpper(s[:1]) + s[1:]
}
