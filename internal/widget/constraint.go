package widget

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// BasicKind is the runtime class of a plain, user-authored layout constraint.
// Constraints of any other kind are synthesized by the layout engine
// (autoresizing masks, content size, layout support) and are never emitted.
const BasicKind = "NSLayoutConstraint"

// IsBasic reports whether kind denotes a plain constraint. An empty kind is
// treated as basic so hand-written dumps don't need to spell it out.
func IsBasic(kind string) bool {
	return kind == "" || kind == BasicKind
}

// Attribute is a geometric anchor of a widget.
type Attribute int

const (
	NotAnAttribute Attribute = iota
	Left
	Right
	Top
	Bottom
	Leading
	Trailing
	Width
	Height
	CenterX
	CenterY
	LastBaseline
	FirstBaseline
	LeftMargin
	RightMargin
	TopMargin
	BottomMargin
	LeadingMargin
	TrailingMargin
	CenterXWithinMargins
	CenterYWithinMargins
)

var attributeNames = map[Attribute]string{
	NotAnAttribute:       "notAnAttribute",
	Left:                 "left",
	Right:                "right",
	Top:                  "top",
	Bottom:               "bottom",
	Leading:              "leading",
	Trailing:             "trailing",
	Width:                "width",
	Height:               "height",
	CenterX:              "centerX",
	CenterY:              "centerY",
	LastBaseline:         "lastBaseline",
	FirstBaseline:        "firstBaseline",
	LeftMargin:           "leftMargin",
	RightMargin:          "rightMargin",
	TopMargin:            "topMargin",
	BottomMargin:         "bottomMargin",
	LeadingMargin:        "leadingMargin",
	TrailingMargin:       "trailingMargin",
	CenterXWithinMargins: "centerXWithinMargins",
	CenterYWithinMargins: "centerYWithinMargins",
}

func (a Attribute) String() string {
	if s, ok := attributeNames[a]; ok {
		return s
	}
	return "notAnAttribute"
}

// IsSize reports whether a is an intrinsic dimension (width or height).
func (a Attribute) IsSize() bool {
	return a == Width || a == Height
}

// ParseAttribute maps an anchor name ("top", "centerX", "baseline") to its
// Attribute. Matching is case-insensitive.
func ParseAttribute(s string) (Attribute, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "notanattribute", "none":
		return NotAnAttribute, nil
	case "baseline":
		return LastBaseline, nil
	}
	for a, name := range attributeNames {
		if strings.EqualFold(name, s) {
			return a, nil
		}
	}
	return NotAnAttribute, fmt.Errorf("unknown layout attribute %q", s)
}

func (a Attribute) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Attribute) UnmarshalText(b []byte) error {
	v, err := ParseAttribute(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Relation is the comparison of a constraint.
type Relation int

const (
	LessThanOrEqual    Relation = -1
	Equal              Relation = 0
	GreaterThanOrEqual Relation = 1
)

func (r Relation) String() string {
	switch r {
	case LessThanOrEqual:
		return "lessThanOrEqual"
	case GreaterThanOrEqual:
		return "greaterThanOrEqual"
	default:
		return "equal"
	}
}

// Inverse swaps the sense of an inequality; Equal maps to itself.
func (r Relation) Inverse() Relation {
	return -r
}

// ParseRelation accepts the symbolic forms ("==", ">=", "<=") and the names
// ("equal", "greaterThanOrEqual", "lessThanOrEqual").
func ParseRelation(s string) (Relation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "=", "==", "equal":
		return Equal, nil
	case ">=", "greaterthanorequal":
		return GreaterThanOrEqual, nil
	case "<=", "lessthanorequal":
		return LessThanOrEqual, nil
	}
	return Equal, fmt.Errorf("unknown layout relation %q", s)
}

func (r Relation) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Relation) UnmarshalText(b []byte) error {
	v, err := ParseRelation(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// RawConstraint is a constraint as reported by the widget source. Operands
// are widget identities; Second may name a layout guide or be empty for a
// constant constraint.
type RawConstraint struct {
	First      string    `json:"first" yaml:"first"`
	FirstAttr  Attribute `json:"first_attribute" yaml:"first_attribute"`
	Second     string    `json:"second,omitempty" yaml:"second,omitempty"`
	SecondAttr Attribute `json:"second_attribute,omitempty" yaml:"second_attribute,omitempty"`
	Relation   Relation  `json:"relation" yaml:"relation"`
	Multiplier float64   `json:"multiplier" yaml:"multiplier"`
	Constant   float64   `json:"constant" yaml:"constant"`
	Active     bool      `json:"active" yaml:"active"`
	Kind       string    `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// rawConstraintDefaults is what a dump entry means when it omits a field.
func rawConstraintDefaults() RawConstraint {
	return RawConstraint{Multiplier: 1, Active: true}
}

func (c *RawConstraint) UnmarshalJSON(b []byte) error {
	type plain RawConstraint
	p := plain(rawConstraintDefaults())
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*c = RawConstraint(p)
	return nil
}

func (c *RawConstraint) UnmarshalYAML(n *yaml.Node) error {
	type plain RawConstraint
	p := plain(rawConstraintDefaults())
	if err := n.Decode(&p); err != nil {
		return err
	}
	*c = RawConstraint(p)
	return nil
}
