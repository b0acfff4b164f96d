package widget

import "strings"

// Point is a position in the host's coordinate space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Source is one live widget instance as seen by the generator. Constraint
// operands name instances by Identity. Tree walks tell instances apart by
// the Source value itself, so implementations must be comparable; pointer
// receivers are.
type Source interface {
	Identity() string
	TypeName() string
	Subviews() []Source
	Superview() Source
	Center() Point
	Constraints() []RawConstraint
	Tag() int
	Attr(key string) (any, bool)
}

// Host is the presentation host owning the root view. Its guides are
// compared by identity against constraint operands.
type Host struct {
	Ref         string `json:"ref,omitempty" yaml:"ref,omitempty"`
	TopGuide    string `json:"top_guide,omitempty" yaml:"top_guide,omitempty"`
	BottomGuide string `json:"bottom_guide,omitempty" yaml:"bottom_guide,omitempty"`
}

// guideTypes are runtime classes of layout-guide pseudo widgets.
var guideTypes = map[string]bool{
	"UILayoutGuide":    true,
	"_UILayoutGuide":   true,
	"UILayoutSupport":  true,
	"_UILayoutSupport": true,
	"_UILayoutSpacer":  true,
}

// IsGuide reports whether s is a layout-guide pseudo widget. Guides never
// become nodes; they only appear as constraint operands.
func IsGuide(s Source) bool {
	if s == nil {
		return false
	}
	return guideTypes[s.TypeName()] || strings.HasSuffix(s.TypeName(), "LayoutGuide")
}

// Widget is a decoded widget from a dump file. It implements Source.
type Widget struct {
	ID         string          `json:"id" yaml:"id"`
	Class      string          `json:"type" yaml:"type"`
	Position   Point           `json:"center" yaml:"center"`
	TagValue   int             `json:"tag,omitempty" yaml:"tag,omitempty"`
	Attributes map[string]any  `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Anchors    []RawConstraint `json:"constraints,omitempty" yaml:"constraints,omitempty"`
	Children   []*Widget       `json:"subviews,omitempty" yaml:"subviews,omitempty"`

	parent *Widget
}

func (w *Widget) Identity() string { return w.ID }

func (w *Widget) TypeName() string {
	if w.Class == "" {
		return "UIView"
	}
	return w.Class
}

func (w *Widget) Subviews() []Source {
	out := make([]Source, 0, len(w.Children))
	for _, c := range w.Children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Superview returns nil (an untyped nil interface) for the root.
func (w *Widget) Superview() Source {
	if w.parent == nil {
		return nil
	}
	return w.parent
}

func (w *Widget) Center() Point                { return w.Position }
func (w *Widget) Constraints() []RawConstraint { return w.Anchors }
func (w *Widget) Tag() int                     { return w.TagValue }

func (w *Widget) Attr(key string) (any, bool) {
	v, ok := w.Attributes[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// link sets parent back-references below w. It walks with an explicit stack
// and stops at widgets it has already linked.
func (w *Widget) link() {
	seen := map[*Widget]bool{w: true}
	stack := []*Widget{w}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range cur.Children {
			if c == nil || seen[c] {
				continue
			}
			seen[c] = true
			c.parent = cur
			stack = append(stack, c)
		}
	}
}
