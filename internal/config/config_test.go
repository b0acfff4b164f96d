package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DeusData/viewcode/internal/emit"
	"github.com/DeusData/viewcode/internal/hierarchy"
	"github.com/DeusData/viewcode/internal/widget"
)

func TestLoadDirDefault(t *testing.T) {
	cfg, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if cfg.EffectiveSyntax() != emit.NSLayout {
		t.Errorf("expected default syntax, got %s", cfg.EffectiveSyntax())
	}
	if cfg.EffectiveSortPolicy() != hierarchy.SortNone {
		t.Errorf("expected no sorting, got %s", cfg.EffectiveSortPolicy())
	}
	if !cfg.EffectiveSkipConstraintless() || !cfg.EffectiveEmitHierarchySummary() {
		t.Error("expected skip and summary on by default")
	}
	if cfg.EffectiveVerify() {
		t.Error("expected verify off by default")
	}
	if cfg.EffectiveContainerName() != "view" || cfg.EffectiveMaxDepth() != hierarchy.DefaultMaxDepth {
		t.Errorf("unexpected defaults: %s %d", cfg.EffectiveContainerName(), cfg.EffectiveMaxDepth())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
sort_policy: top-to-bottom
output_syntax: snapkit
skip_constraintless_nodes: false
emit_hierarchy_summary: false
container_name: contentView
view_controller_ref: controller
root_id: card
max_depth: 8
container_types: [UIView, CardView]
verify: true
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if cfg.EffectiveSortPolicy() != hierarchy.SortTopToBottom || cfg.EffectiveSyntax() != emit.SnapKit {
		t.Errorf("unexpected policy/syntax: %s %s", cfg.EffectiveSortPolicy(), cfg.EffectiveSyntax())
	}
	if cfg.EffectiveSkipConstraintless() || cfg.EffectiveEmitHierarchySummary() || !cfg.EffectiveVerify() {
		t.Error("boolean overrides not applied")
	}
	if cfg.RootID != "card" || cfg.EffectiveMaxDepth() != 8 {
		t.Errorf("unexpected root/max depth: %s %d", cfg.RootID, cfg.EffectiveMaxDepth())
	}

	ho := cfg.HierarchyOptions()
	if len(ho.ContainerTypes) != 2 || ho.MaxDepth != 8 {
		t.Errorf("unexpected hierarchy options: %+v", ho)
	}
	eo := cfg.EmitOptions(widget.Host{Ref: "self", TopGuide: "g"})
	if eo.Host.Ref != "controller" || eo.Host.TopGuide != "g" || eo.Container != "contentView" {
		t.Errorf("unexpected emit options: %+v", eo)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name, content, want string
	}{
		{"syntax", "output_syntax: xib\n", "OutputSyntax"},
		{"sort", "sort_policy: spiral\n", "SortPolicy"},
		{"depth", "max_depth: 0\n", "MaxDepth"},
		{"container", "container_name: \"my view\"\n", "ContainerName"},
		{"types", "container_types: [\"\"]\n", "ContainerTypes"},
		{"yaml", "not: [valid: yaml", "parse config"},
	}
	for _, tt := range tests {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte(tt.content), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := LoadDir(dir)
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error %q should mention %q", tt.name, err, tt.want)
		}
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for a missing explicit config")
	}
}

func TestClone(t *testing.T) {
	on := true
	cfg := &Config{Verify: &on, ContainerTypes: []string{"UIView"}}
	c := cfg.Clone()
	*c.Verify = false
	c.ContainerTypes[0] = "X"
	if !*cfg.Verify || cfg.ContainerTypes[0] != "UIView" {
		t.Error("clone shares state with the original")
	}
}

func TestWithOverrides(t *testing.T) {
	off := false
	base := &Config{OutputSyntax: "anchors", ContainerName: "contentView"}
	cfg, err := base.With(Overrides{OutputSyntax: "snapkit", RootID: "card", EmitHierarchySummary: &off})
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if cfg.EffectiveSyntax() != emit.SnapKit || cfg.RootID != "card" || cfg.EffectiveEmitHierarchySummary() {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.ContainerName != "contentView" {
		t.Error("unset override should keep the base value")
	}
	if base.OutputSyntax != "anchors" || base.RootID != "" {
		t.Error("base config mutated")
	}

	off = true
	if cfg.EffectiveEmitHierarchySummary() {
		t.Error("override pointer must be copied")
	}

	if _, err := base.With(Overrides{SortPolicy: "spiral"}); err == nil {
		t.Error("expected validation error for a bad override")
	}
}
