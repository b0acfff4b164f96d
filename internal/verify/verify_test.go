package verify

import (
	"strings"
	"testing"

	"github.com/DeusData/viewcode/internal/emit"
	"github.com/DeusData/viewcode/internal/hierarchy"
	"github.com/DeusData/viewcode/internal/props"
	"github.com/DeusData/viewcode/internal/resolve"
	"github.com/DeusData/viewcode/internal/widget"
)

func TestCheckClean(t *testing.T) {
	code := `let rootView = view
let label_0 = UILabel()
rootView.addSubview(label_0)
label_0.text = "Hello"
label_0.translatesAutoresizingMaskIntoConstraints = false
label_0.widthAnchor.constraint(equalToConstant: 44.0).isActive = true
`
	r, err := Check(code)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !r.OK() {
		t.Fatalf("unexpected issues: %v", r.Issues)
	}
	if r.Declarations != 2 {
		t.Errorf("expected 2 declarations, got %d", r.Declarations)
	}
	if r.Calls == 0 {
		t.Error("expected calls to be counted")
	}
}

func TestCheckReportsBrokenCode(t *testing.T) {
	r, err := Check("let a = UIView(\nlet b = ]\n")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if r.OK() {
		t.Fatal("expected issues for broken code")
	}
	for _, is := range r.Issues {
		if is.Line < 1 || is.Column < 1 {
			t.Errorf("issue position must be 1-based: %+v", is)
		}
		if len(is.Text) > maxIssueText {
			t.Errorf("issue text not bounded: %q", is.Text)
		}
	}
}

func TestCheckEmpty(t *testing.T) {
	r, err := Check("")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !r.OK() || r.Declarations != 0 {
		t.Errorf("empty input should be clean: %+v", r)
	}
}

func TestIssueString(t *testing.T) {
	is := Issue{Kind: KindMissing, Line: 3, Column: 7}
	if got := is.String(); got != "3:7: missing" {
		t.Errorf("String = %q", got)
	}
	is.Text = "]"
	if got := is.String(); !strings.Contains(got, `near "]"`) {
		t.Errorf("String = %q", got)
	}
}

func TestGeneratedCodeParses(t *testing.T) {
	dump, err := widget.Parse([]byte(`{
  "host": {"ref": "self", "top_guide": "tg"},
  "root": {"id": "root", "type": "UIView", "center": {"x": 160, "y": 240},
    "subviews": [
      {"id": "tg", "type": "_UILayoutGuide"},
      {"id": "a", "type": "UILabel", "center": {"x": 160, "y": 40},
       "attrs": {"text": "Title", "textAlignment": 1}},
      {"id": "b", "type": "UIButton", "center": {"x": 160, "y": 120},
       "attrs": {"titleLabel": {"text": "Go", "textColor": "blue"}}}
    ],
    "constraints": [
      {"first": "a", "first_attribute": "top", "second": "tg", "second_attribute": "bottom", "constant": 8},
      {"first": "b", "first_attribute": "top", "second": "a", "second_attribute": "bottom", "constant": 12},
      {"first": "b", "first_attribute": "width", "constant": 44},
      {"first": "a", "first_attribute": "centerX", "second": "root", "second_attribute": "centerX", "active": false}
    ]}
}`), widget.FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, syntax := range []emit.Syntax{emit.SnapKit, emit.Anchors, emit.NSLayout} {
		tree := hierarchy.Build(dump.Root, hierarchy.Options{})
		resolve.New(dump.Host).Resolve(tree)
		props.ExtractAll(tree)
		_, code, err := emit.Emit(tree, emit.Options{Syntax: syntax, SkipConstraintless: true, Host: dump.Host})
		if err != nil {
			t.Fatalf("%s: Emit: %v", syntax, err)
		}
		r, err := Check(code)
		if err != nil {
			t.Fatalf("%s: Check: %v", syntax, err)
		}
		if !r.OK() {
			t.Errorf("%s: generated code has issues %v\n%s", syntax, r.Issues, code)
		}
	}
}
