// Package verify parses generated Swift with tree-sitter and reports syntax
// problems. A report never blocks output; callers log or return it.
package verify

import (
	"fmt"
	"log/slog"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/viewcode/internal/lang"
	"github.com/DeusData/viewcode/internal/parser"
)

// IssueKind classifies a syntax problem.
type IssueKind string

const (
	// KindError is an ERROR node: text the grammar could not place.
	KindError IssueKind = "error"
	// KindMissing is a token the parser inserted to recover.
	KindMissing IssueKind = "missing"
)

// Issue is one syntax problem, 1-based line and column.
type Issue struct {
	Kind   IssueKind `json:"kind"`
	Line   int       `json:"line"`
	Column int       `json:"column"`
	Text   string    `json:"text,omitempty"`
}

func (i Issue) String() string {
	if i.Text == "" {
		return fmt.Sprintf("%d:%d: %s", i.Line, i.Column, i.Kind)
	}
	return fmt.Sprintf("%d:%d: %s near %q", i.Line, i.Column, i.Kind, i.Text)
}

// Report summarizes a parse of generated code.
type Report struct {
	Issues       []Issue `json:"issues,omitempty"`
	Declarations int     `json:"declarations"`
	Calls        int     `json:"calls"`
	Assignments  int     `json:"assignments"`
	Closures     int     `json:"closures"`
}

// OK reports whether no issues were found.
func (r *Report) OK() bool { return len(r.Issues) == 0 }

// maxIssueText bounds the snippet attached to an issue.
const maxIssueText = 40

// Check parses code as Swift. The returned error covers parser setup only;
// syntax problems are in the report.
func Check(code string) (*Report, error) {
	spec := lang.ForLanguage(lang.Swift)
	if spec == nil {
		return nil, fmt.Errorf("verify: no grammar table for %s", lang.Swift)
	}
	source := []byte(code)
	tree, err := parser.Parse(lang.Swift, source)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	defer tree.Close()

	report := &Report{}
	root := tree.RootNode()
	if !lang.Has(spec.ModuleNodeTypes, root.Kind()) {
		report.Issues = append(report.Issues, issueAt(KindError, root, source))
	}
	parser.Walk(root, func(n *tree_sitter.Node) bool {
		switch {
		case n.IsMissing():
			report.Issues = append(report.Issues, issueAt(KindMissing, n, source))
			return false
		case n.IsError():
			report.Issues = append(report.Issues, issueAt(KindError, n, source))
			return false
		}
		kind := n.Kind()
		switch {
		case lang.Has(spec.DeclarationNodeTypes, kind):
			report.Declarations++
		case lang.Has(spec.CallNodeTypes, kind):
			report.Calls++
		case lang.Has(spec.AssignmentNodeTypes, kind):
			report.Assignments++
		case lang.Has(spec.LambdaNodeTypes, kind):
			report.Closures++
		}
		// A subtree without errors has nothing left to report but counts.
		return true
	})

	for _, is := range report.Issues {
		slog.Warn("verify.issue", "kind", is.Kind, "line", is.Line, "col", is.Column, "text", is.Text)
	}
	slog.Debug("verify.done", "issues", len(report.Issues), "decls", report.Declarations, "calls", report.Calls)
	return report, nil
}

func issueAt(kind IssueKind, n *tree_sitter.Node, source []byte) Issue {
	pos := n.StartPosition()
	text := parser.NodeText(n, source)
	if len(text) > maxIssueText {
		text = text[:maxIssueText]
	}
	return Issue{
		Kind:   kind,
		Line:   int(pos.Row) + 1,
		Column: int(pos.Column) + 1,
		Text:   text,
	}
}
