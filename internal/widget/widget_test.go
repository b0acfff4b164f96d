package widget

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleJSON = `{
  "host": {"ref": "self", "top_guide": "tlg", "bottom_guide": "blg"},
  "root": {
    "id": "root", "type": "UIView", "center": {"x": 160, "y": 240},
    "constraints": [
      {"first": "title", "first_attribute": "top", "second": "tlg", "second_attribute": "bottom", "relation": "==", "constant": 20},
      {"first": "title", "first_attribute": "width", "relation": ">=", "constant": 44, "active": false},
      {"first": "title", "first_attribute": "height", "kind": "NSContentSizeLayoutConstraint"}
    ],
    "subviews": [
      {"id": "title", "type": "UILabel", "center": {"x": 160, "y": 40}, "tag": 7,
       "attrs": {"text": "Hello", "numberOfLines": 2}}
    ]
  }
}`

func TestParseJSON(t *testing.T) {
	d, err := Parse([]byte(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Host.TopGuide != "tlg" || d.Host.Ref != "self" {
		t.Errorf("unexpected host: %+v", d.Host)
	}
	root := d.Root
	if root.Superview() != nil {
		t.Error("root should have no superview")
	}
	if len(root.Subviews()) != 1 {
		t.Fatalf("expected 1 subview, got %d", len(root.Subviews()))
	}
	title := root.Subviews()[0]
	if title.Superview() == nil || title.Superview().Identity() != "root" {
		t.Errorf("title superview not linked")
	}
	if title.Tag() != 7 {
		t.Errorf("expected tag 7, got %d", title.Tag())
	}
	if v, ok := title.Attr("text"); !ok || v != "Hello" {
		t.Errorf("unexpected text attr: %v %v", v, ok)
	}
	if _, ok := title.Attr("font"); ok {
		t.Error("absent attribute reported present")
	}

	cs := root.Constraints()
	if len(cs) != 3 {
		t.Fatalf("expected 3 constraints, got %d", len(cs))
	}
	if cs[0].FirstAttr != Top || cs[0].SecondAttr != Bottom || cs[0].Relation != Equal {
		t.Errorf("unexpected first constraint: %+v", cs[0])
	}
	if cs[0].Multiplier != 1 || !cs[0].Active {
		t.Errorf("defaults not applied: %+v", cs[0])
	}
	if cs[1].Relation != GreaterThanOrEqual || cs[1].Active {
		t.Errorf("unexpected second constraint: %+v", cs[1])
	}
	if IsBasic(cs[2].Kind) {
		t.Errorf("content size constraint should not be basic")
	}
}

func TestParseYAML(t *testing.T) {
	src := `
host:
  ref: self
root:
  id: r
  type: UIStackView
  constraints:
    - first: a
      first_attribute: leading
      second: r
      second_attribute: leadingMargin
      relation: lessThanOrEqual
      multiplier: 0.5
  subviews:
    - id: a
      type: UIButton
      attrs:
        titleLabel:
          text: Go
`
	d, err := Parse([]byte(src), FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := d.Root.Constraints()[0]
	if c.SecondAttr != LeadingMargin || c.Relation != LessThanOrEqual || c.Multiplier != 0.5 || !c.Active {
		t.Errorf("unexpected constraint: %+v", c)
	}
	v, ok := d.Root.Children[0].Attr("titleLabel")
	if !ok {
		t.Fatal("titleLabel missing")
	}
	m, ok := v.(map[string]any)
	if !ok || m["text"] != "Go" {
		t.Errorf("unexpected titleLabel: %#v", v)
	}
}

func TestParseRejectsUnknownAttribute(t *testing.T) {
	src := `{"root": {"id": "r", "constraints": [{"first": "r", "first_attribute": "diagonal"}]}}`
	if _, err := Parse([]byte(src), FormatJSON); err == nil {
		t.Fatal("expected error for unknown attribute")
	}
}

func TestParseRejectsMissingOrDuplicateID(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{
			"missing",
			`{"root": {"id": "r", "subviews": [{"id": "a"}, {"type": "UILabel"}]}}`,
			"root.subviews[1] (UILabel) has no id",
		},
		{
			"missing root",
			`{"root": {"type": "UIView"}}`,
			"root (UIView) has no id",
		},
		{
			"duplicate",
			`{"root": {"id": "r", "subviews": [{"id": "a"}, {"id": "b", "subviews": [{"id": "a"}]}]}}`,
			`duplicate id "a" at root.subviews[0] and root.subviews[1].subviews[0]`,
		},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.src), FormatJSON)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q should mention %q", tt.name, err, tt.want)
		}
	}

	yamlSrc := "root:\n  id: r\n  subviews:\n    - type: UIButton\n"
	if _, err := Parse([]byte(yamlSrc), FormatYAML); err == nil {
		t.Error("yaml: expected error for a widget without id")
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screen.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := Load(filepath.Join(dir, "screen.txt")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestTarget(t *testing.T) {
	d, err := Parse([]byte(sampleJSON), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Target(""); got == nil || got.Identity() != "root" {
		t.Errorf("empty id should target the root")
	}
	if got := d.Target("title"); got == nil || got.TypeName() != "UILabel" {
		t.Errorf("expected title label")
	}
	if got := d.Target("missing"); got != nil {
		t.Errorf("unknown id should return nil, got %v", got.Identity())
	}
	var empty *Dump
	if empty.Target("") != nil {
		t.Error("nil dump should have no target")
	}
}

func TestRelationInverse(t *testing.T) {
	tests := []struct {
		in, want Relation
	}{
		{Equal, Equal},
		{GreaterThanOrEqual, LessThanOrEqual},
		{LessThanOrEqual, GreaterThanOrEqual},
	}
	for _, tt := range tests {
		if got := tt.in.Inverse(); got != tt.want {
			t.Errorf("%s.Inverse() = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestIsGuide(t *testing.T) {
	if !IsGuide(&Widget{Class: "_UILayoutGuide"}) {
		t.Error("_UILayoutGuide should be a guide")
	}
	if !IsGuide(&Widget{Class: "UILayoutGuide"}) {
		t.Error("UILayoutGuide should be a guide")
	}
	if IsGuide(&Widget{Class: "UIView"}) {
		t.Error("UIView is not a guide")
	}
	if IsGuide(nil) {
		t.Error("nil is not a guide")
	}
}
